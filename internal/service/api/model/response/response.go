// Package response API 응답 본문의 형식을 정의합니다.
package response

// Envelope 모든 JSON 응답에 사용되는 공통 형식입니다.
type Envelope struct {
	// 에러 여부
	Error bool `json:"error" example:"false"`
	// 결과 메시지
	Message string `json:"message" example:"Nueva versión disponible"`
	// 응답 데이터 (에러인 경우 null)
	Data any `json:"data"`
}

// AppVersionData 버전 확인 응답의 data 필드입니다.
type AppVersionData struct {
	// 스토리지에 저장된 파일 이름
	AppName string `json:"appName" example:"myapp-3.apk"`
	// 저장된 파일의 버전
	CodeVersion string `json:"codeVersion" example:"3"`
}

// VersionCheckResponse Swagger 문서용 버전 확인 성공 응답
type VersionCheckResponse struct {
	Error   bool           `json:"error" example:"false"`
	Message string         `json:"message" example:"Nueva versión disponible"`
	Data    AppVersionData `json:"data"`
}

// ErrorResponse Swagger 문서용 에러 응답
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"No hay nueva versión disponible"`
	Data    any    `json:"data" swaggertype:"object"`
}

// Fail 에러 응답 Envelope를 생성합니다.
func Fail(message string) Envelope {
	return Envelope{Error: true, Message: message}
}

// OK 성공 응답 Envelope를 생성합니다.
func OK(message string, data any) Envelope {
	return Envelope{Message: message, Data: data}
}
