/*
Package validation 설정 파일과 환경 변수로 전달되는 값의 형식을 검증합니다.

  - CORS Origin (Scheme://Host[:Port] 또는 '*')
  - 호스트명 (RFC 1123), 포트 번호
  - Cron 표현식 (초 단위를 포함하는 6필드 형식)
  - HTTP(S) 엔드포인트 URL (스토리지 서버 주소 등)

모든 함수는 유효하지 않은 입력에 대해 원인을 설명하는 error를 반환합니다.
*/
package validation
