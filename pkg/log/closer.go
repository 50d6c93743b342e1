package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer Setup이 생성한 로그 파일들의 해제를 통합 관리합니다.
// Hook을 먼저 비활성화한 뒤 파일을 닫으며, 여러 번 호출해도 안전합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, rc := range c.closers {
		if rc == nil {
			continue
		}
		if s, ok := rc.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := rc.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
