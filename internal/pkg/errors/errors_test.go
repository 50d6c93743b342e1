package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		errType ErrorType
		message string
		want    string
	}{
		{"NotFound", NotFound, "앱을 찾을 수 없습니다", "[NotFound] 앱을 찾을 수 없습니다"},
		{"InvalidInput", InvalidInput, "잘못된 요청", "[InvalidInput] 잘못된 요청"},
		{"Empty message", Internal, "", "[Internal] "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := New(tt.errType, tt.message)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var appErr *AppError
			require.True(t, As(err, &appErr))
			assert.Equal(t, tt.errType, appErr.Type())
			assert.Equal(t, tt.message, appErr.Message())
			assert.NotEmpty(t, appErr.Stack())
		})
	}
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(Unavailable, "스토리지 응답 코드: %d", 503)
	assert.Equal(t, "[Unavailable] 스토리지 응답 코드: 503", err.Error())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil 에러는 nil을 반환한다", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, Internal, "msg"))
		assert.NoError(t, Wrapf(nil, Internal, "msg %d", 1))
	})

	t.Run("원인 에러를 보존한다", func(t *testing.T) {
		err := Wrap(errStd, System, "목록 조회 실패")
		assert.Equal(t, "[System] 목록 조회 실패: standard error", err.Error())
		assert.ErrorIs(t, err, errStd)
		assert.Equal(t, errStd, errors.Unwrap(err))
	})

	t.Run("Wrapf", func(t *testing.T) {
		err := Wrapf(errStd, ParsingFailed, "응답 파싱 실패 (%s)", "list")
		assert.Equal(t, "[ParsingFailed] 응답 파싱 실패 (list): standard error", err.Error())
	})
}

func TestIs(t *testing.T) {
	t.Parallel()

	base := New(NotFound, "없음")
	wrapped := Wrap(fmt.Errorf("ctx: %w", base), Unavailable, "외부")

	assert.True(t, Is(wrapped, NotFound))
	assert.True(t, Is(wrapped, Unavailable))
	assert.False(t, Is(wrapped, Conflict))
	assert.False(t, Is(nil, NotFound))
	assert.False(t, Is(errStd, Unknown))
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, Unknown},
		{"표준 에러", errStd, Unknown},
		{"단일", New(Timeout, "t"), Timeout},
		{"가장 안쪽의 타입", Wrap(New(NotFound, "n"), Unavailable, "u"), NotFound},
		{"표준 에러를 감싼 경우", Wrap(errStd, Unavailable, "u"), Unavailable},
		{"fmt 래핑 경계", Wrap(fmt.Errorf("w: %w", New(Conflict, "c")), Internal, "i"), Conflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, UnderlyingType(tt.err))
		})
	}
}

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(errStd, System, "outer")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.True(t, strings.HasPrefix(detailed, "[System] outer"))
	assert.Contains(t, detailed, "Stack trace:")
	assert.Contains(t, detailed, "errors_test.go")
	assert.Contains(t, detailed, "Caused by:\n\tstandard error")

	// 체인 중간의 AppError는 스택을 생략하고 가장 안쪽의 스택만 출력한다.
	chained := fmt.Sprintf("%+v", Wrap(New(NotFound, "inner"), Internal, "outer"))
	assert.Equal(t, 1, strings.Count(chained, "Stack trace:"))
	assert.Contains(t, chained, "[NotFound] inner")
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "Conflict", Conflict.String())
	assert.Equal(t, "Unavailable", Unavailable.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
}

func TestCaptureStack(t *testing.T) {
	t.Parallel()

	frames := captureStack(1)
	require.NotEmpty(t, frames)
	assert.LessOrEqual(t, len(frames), maxStackFrames)
	assert.Equal(t, "stack.go", frames[0].File)
	assert.Contains(t, frames[1].Function, "TestCaptureStack")

	err := New(Internal, "here").(*AppError)
	assert.Equal(t, "errors_test.go", err.Stack()[0].File)
	assert.Contains(t, err.Stack()[0].Function, "TestCaptureStack")
}

func BenchmarkWrap(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Wrap(errStd, Internal, "wrapped message")
	}
}
