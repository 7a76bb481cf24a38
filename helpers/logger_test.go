package helpers

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false)

	log.Info("Installing packages")
	log.Warn("Untested version", zap.String("os", "ubuntu 18.04"))
	log.Error("Step failed")
	log.Success("Done")
	log.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	prefix := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] `)
	for _, line := range lines {
		assert.Regexp(t, prefix, line)
	}
	assert.Contains(t, lines[0], "[INFO] Installing packages")
	assert.Contains(t, lines[1], "[WARNING] Untested version")
	assert.Contains(t, lines[1], `"os": "ubuntu 18.04"`)
	assert.Contains(t, lines[2], "[ERROR] Step failed")
	assert.Contains(t, lines[3], "[SUCCESS] Done")
}

func TestLoggerColors(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, true).Success("Done")
	assert.Contains(t, buf.String(), "\x1b[32m[SUCCESS]")
}
