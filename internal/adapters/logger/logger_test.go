package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pict/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	l := logger.New()

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info("loading manifest")
	l.Warn("cache directory unusable, caching disabled")
	l.Error(zerr.New("boom"))

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=INFO"))
	assert.True(t, strings.Contains(out, "level=WARN"))
	assert.True(t, strings.Contains(out, "caching disabled"))
	assert.True(t, strings.Contains(out, "level=ERROR"))
	assert.True(t, strings.Contains(out, "boom"))
}
