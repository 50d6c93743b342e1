package cronx

import (
	"github.com/robfig/cron/v3"

	applog "github.com/darkkaiser/apk-update-server/pkg/log"
)

// logger cron.Logger 인터페이스를 logrus Entry 위에 구현합니다.
// cron 내부의 Info 로그는 스케줄링 세부사항이므로 Debug 레벨로 기록합니다.
type logger struct {
	entry *applog.Entry
}

// NewLogger component 필드를 포함하는 cron.Logger를 생성합니다.
func NewLogger(component string) cron.Logger {
	return &logger{entry: applog.WithComponent(component)}
}

func (l *logger) Info(msg string, keysAndValues ...any) {
	l.entry.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l *logger) Error(err error, msg string, keysAndValues ...any) {
	l.entry.WithFields(toFields(keysAndValues)).WithError(err).Error(msg)
}

func toFields(keysAndValues []any) applog.Fields {
	fields := make(applog.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}

// New StandardParser와 패닉 복구, 중복 실행 방지 래퍼가 적용된 스케줄러를 생성합니다.
func New(component string) *cron.Cron {
	l := NewLogger(component)
	return cron.New(
		cron.WithParser(StandardParser()),
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
}
