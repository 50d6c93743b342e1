package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{"정상", Options{Name: "app"}, ""},
		{"Name 누락", Options{}, "Name"},
		{"Dir가 파일", Options{Name: "app", Dir: file}, "이미 파일로 존재"},
		{"형식 오류", Options{Name: "app", Format: "xml"}, "지원하지 않는 로그 형식"},
		{"MaxAge 음수", Options{Name: "app", MaxAge: -1}, "MaxAge"},
		{"MaxSizeMB 음수", Options{Name: "app", MaxSizeMB: -1}, "MaxSizeMB"},
		{"MaxBackups 음수", Options{Name: "app", MaxBackups: -1}, "MaxBackups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetup_CreatesRotatingFiles(t *testing.T) {
	dir := t.TempDir()
	l := logrus.New()

	opts := NewProductionOptions("apk-test")
	opts.Dir = dir

	c, err := setup(l, opts)
	require.NoError(t, err)

	l.Info("info message")
	l.Error("error message")
	l.SetLevel(TraceLevel)
	l.Debug("debug message")

	require.NoError(t, c.Close())
	// 두 번째 Close는 아무 동작도 하지 않는다.
	require.NoError(t, c.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "apk-test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "info message")
	assert.Contains(t, string(mainLog), "error message")
	assert.NotContains(t, string(mainLog), "debug message")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "apk-test.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "error message")
	assert.NotContains(t, string(criticalLog), "info message")

	verboseLog, err := os.ReadFile(filepath.Join(dir, "apk-test.verbose.log"))
	require.NoError(t, err)
	assert.Contains(t, string(verboseLog), "debug message")
}

func TestSetup_InvalidOptions(t *testing.T) {
	c, err := setup(logrus.New(), Options{})
	assert.Nil(t, c)
	assert.ErrorContains(t, err, "유효하지 않은 로그 설정")
}

func TestProfiles(t *testing.T) {
	prod := NewProductionOptions("svc")
	assert.Equal(t, InfoLevel, prod.Level)
	assert.Equal(t, FormatJSON, prod.Format)
	assert.True(t, prod.EnableCriticalLog)
	assert.False(t, prod.EnableConsoleLog)
	assert.NoError(t, prod.Validate())

	dev := NewDevelopmentOptions("svc")
	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)
	assert.NoError(t, dev.Validate())
}

type errCloser struct{ closed bool }

func (c *errCloser) Close() error {
	c.closed = true
	return errors.New("close failed")
}

func TestCloser_ClosesAllAndJoinsErrors(t *testing.T) {
	first, second := &errCloser{}, &errCloser{}
	h := &hook{}
	c := &closer{closers: []io.Closer{first, nil, second}, hook: h}

	err := c.Close()
	require.Error(t, err)
	assert.True(t, first.closed)
	assert.True(t, second.closed)
	assert.True(t, h.closed)
}
