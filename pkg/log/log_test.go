package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithComponent(t *testing.T) {
	entry := WithComponent("api")
	assert.Equal(t, "api", entry.Data["component"])
}

func TestWithComponentAndFields(t *testing.T) {
	fields := Fields{"bucket": "apps", "component": "ignored"}

	entry := WithComponentAndFields("storage", fields)
	assert.Equal(t, "storage", entry.Data["component"])
	assert.Equal(t, "apps", entry.Data["bucket"])

	// 원본 Fields는 변경되지 않는다.
	assert.Equal(t, "ignored", fields["component"])
}

func TestSetDebugMode(t *testing.T) {
	prev := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(prev) })

	SetDebugMode(true)
	assert.Equal(t, TraceLevel, StandardLogger().GetLevel())

	SetDebugMode(false)
	assert.Equal(t, InfoLevel, StandardLogger().GetLevel())
}
