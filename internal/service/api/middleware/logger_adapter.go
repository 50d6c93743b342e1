package middleware

import (
	"fmt"
	"io"

	applog "github.com/darkkaiser/apk-update-server/pkg/log"
	"github.com/labstack/gommon/log"
)

// echoComponent Echo 내부에서 기록하는 로그의 컴포넌트 이름
const echoComponent = "api.echo"

// Logger Echo의 Logger 인터페이스(gommon/log)를 logrus 로거 위에 구현합니다.
// Echo가 기록하는 모든 로그에 component 필드가 추가됩니다.
type Logger struct {
	logger *applog.Logger
}

// NewLogger logger를 사용하는 Echo Logger를 생성합니다.
func NewLogger(logger *applog.Logger) Logger {
	return Logger{logger: logger}
}

func (l Logger) entry() *applog.Entry {
	return l.logger.WithField("component", echoComponent)
}

func (l Logger) Output() io.Writer   { return l.logger.Out }
func (l Logger) SetOutput(io.Writer) {}
func (l Logger) Prefix() string      { return "" }
func (l Logger) SetPrefix(string)    {}
func (l Logger) SetHeader(string)    {}

// Level logrus 로그 레벨을 gommon 로그 레벨로 변환합니다. 대응하는 레벨이 없으면 OFF를 반환합니다.
func (l Logger) Level() log.Lvl {
	switch l.logger.GetLevel() {
	case applog.TraceLevel, applog.DebugLevel:
		return log.DEBUG
	case applog.InfoLevel:
		return log.INFO
	case applog.WarnLevel:
		return log.WARN
	case applog.ErrorLevel:
		return log.ERROR
	default:
		return log.OFF
	}
}

// SetLevel 전역 로그 레벨은 SetDebugMode로만 변경하므로 Echo의 레벨 변경 요청은 무시합니다.
func (l Logger) SetLevel(log.Lvl) {}

func (l Logger) Print(i ...any)                 { l.entry().Info(i...) }
func (l Logger) Printf(format string, a ...any) { l.entry().Infof(format, a...) }
func (l Logger) Printj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Info() }

func (l Logger) Debug(i ...any)                 { l.entry().Debug(i...) }
func (l Logger) Debugf(format string, a ...any) { l.entry().Debugf(format, a...) }
func (l Logger) Debugj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Debug() }

func (l Logger) Info(i ...any)                 { l.entry().Info(i...) }
func (l Logger) Infof(format string, a ...any) { l.entry().Infof(format, a...) }
func (l Logger) Infoj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Info() }

func (l Logger) Warn(i ...any)                 { l.entry().Warn(i...) }
func (l Logger) Warnf(format string, a ...any) { l.entry().Warnf(format, a...) }
func (l Logger) Warnj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Warn() }

func (l Logger) Error(i ...any)                 { l.entry().Error(i...) }
func (l Logger) Errorf(format string, a ...any) { l.entry().Errorf(format, a...) }
func (l Logger) Errorj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Error() }

// Fatal 계열은 프로세스를 종료하지 않고 Error 레벨로 기록합니다.
// 서버 종료 여부는 api.Service가 결정합니다.

func (l Logger) Fatal(i ...any)                 { l.entry().Error(i...) }
func (l Logger) Fatalf(format string, a ...any) { l.entry().Errorf(format, a...) }
func (l Logger) Fatalj(j log.JSON)              { l.entry().WithFields(applog.Fields(j)).Error() }

func (l Logger) Panic(i ...any) {
	l.entry().Error(i...)
	panic(fmt.Sprint(i...))
}

func (l Logger) Panicf(format string, a ...any) {
	l.entry().Errorf(format, a...)
	panic(fmt.Sprintf(format, a...))
}

func (l Logger) Panicj(j log.JSON) {
	l.entry().WithFields(applog.Fields(j)).Error()
	panic(fmt.Sprint(j))
}
