package cronx

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		spec          string
		errorContains string
	}{
		{"6필드", "0 */5 * * * *", ""},
		{"요일 범위", "0 0-30/5 9-17 * * MON-FRI", ""},
		{"@every", "@every 30s", ""},
		{"@hourly", "@hourly", ""},
		{"5필드는 지원하지 않음", "*/5 * * * *", "expected exactly 6 fields"},
		{"빈 문자열", "", "empty spec string"},
		{"범위 초과", "70 * * * * *", "Cron 표현식 파싱 실패"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.spec)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestStandardParser_Next(t *testing.T) {
	t.Parallel()

	sched, err := StandardParser().Parse("30 * * * * *")
	require.NoError(t, err)

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, base.Add(30*time.Second), sched.Next(base))
}

func TestToFields(t *testing.T) {
	t.Parallel()

	fields := toFields([]any{"entry", 1, 2, "ignored", "odd"})
	assert.Equal(t, 1, fields["entry"])
	assert.Len(t, fields, 1)
}

func TestNew_RecoversPanics(t *testing.T) {
	c := New("cronx.test")

	var once sync.Once
	done := make(chan struct{})
	_, err := c.AddFunc("@every 1s", func() {
		defer once.Do(func() { close(done) })
		panic(errors.New("boom"))
	})
	require.NoError(t, err)

	c.Start()
	defer c.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job was not executed")
	}
}
