// Package log logrus 기반의 전역 로거와 lumberjack 기반의 로그 파일 로테이션을 제공합니다.
//
// 모든 로그는 component 필드를 포함하도록 WithComponent 계열 함수를 통해 기록합니다.
//
//	applog.WithComponentAndFields("storage.supabase", applog.Fields{
//	    "bucket": bucket,
//	}).Info("목록 조회 완료")
package log

import "github.com/sirupsen/logrus"

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
// fields에 component 키가 있더라도 인자로 전달된 component가 우선합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component

	return logrus.WithFields(merged)
}

// WithFields logrus.WithFields의 별칭입니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// SetDebugMode Debug 모드에 따라 전역 로그 레벨을 설정합니다.
//   - true: Trace 레벨 (모든 로그 출력)
//   - false: Info 레벨
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}
