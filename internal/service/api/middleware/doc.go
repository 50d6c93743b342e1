// Package middleware Echo 서버에 등록되는 HTTP 미들웨어를 제공합니다.
//
// 등록 순서는 api.NewHTTPServer에서 결정됩니다.
//
//	PanicRecovery -> RequestID -> HTTPLogger -> RateLimiting -> BodyLimit -> ContextTimeout -> CORS -> Secure
//
// PanicRecovery가 가장 바깥에 위치해야 이후 미들웨어와 핸들러의 panic을 모두 복구할 수 있고,
// RequestID가 HTTPLogger보다 먼저 실행되어야 접근 로그에 요청 ID가 기록됩니다.
package middleware
