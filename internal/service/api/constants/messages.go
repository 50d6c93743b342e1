package constants

// 클라이언트에게 전달되는 응답 메시지입니다.
// 배포된 모바일 클라이언트가 메시지 문자열을 비교하므로 기존 서비스와 동일한 스페인어 문구를 유지합니다.
const (
	// ErrMsgAppNotFound 앱 식별자가 없거나 일치하는 파일이 없는 경우
	ErrMsgAppNotFound = "No se ha encontrado la aplicación solicitada"

	// ErrMsgNoNewVersion 요청한 버전이 이미 최신인 경우
	ErrMsgNoNewVersion = "No hay nueva versión disponible"

	// ErrMsgDownloadFailed 스토리지에서 파일을 가져오지 못한 경우
	ErrMsgDownloadFailed = "No se pudo obtener el archivo APK"

	// ErrMsgUnknown 분류되지 않은 에러
	ErrMsgUnknown = "Error desconocido"

	// MsgNewVersionAvailable 새 버전이 있는 경우의 버전 확인 응답
	MsgNewVersionAvailable = "Nueva versión disponible"

	// MsgHelloWorld 루트 경로 응답
	MsgHelloWorld = "Hello World"
)

// 프레임워크 수준 에러(라우팅 실패, 요청 수 제한 등)의 응답 메시지입니다.
const (
	ErrMsgRouteNotFound       = "Recurso no encontrado"
	ErrMsgMethodNotAllowed    = "Método no permitido"
	ErrMsgTooManyRequests     = "Demasiadas solicitudes, inténtelo de nuevo más tarde"
	ErrMsgRequestTooLarge     = "La solicitud es demasiado grande"
	ErrMsgServiceUnavailable  = "Servicio no disponible temporalmente"
	ErrMsgBadRequest          = "Solicitud no válida"
	ErrMsgInternalServerError = "Error interno del servidor"
)
