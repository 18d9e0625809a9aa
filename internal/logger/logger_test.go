package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel(os.Getenv("LOG_LEVEL")) })

	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			SetLevel(tt.in)
			assert.Equal(t, tt.want, Logger.GetLevel())
		})
	}
}

func TestStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("debug")
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(os.Getenv("LOG_LEVEL"))
	})

	Debug("global advertised", "interface", "wl_seat")
	Warn("closing child before its parent", "parent", "wl_display")

	out := buf.String()
	assert.Contains(t, out, "wlhandle")
	assert.Contains(t, out, "global advertised")
	assert.Contains(t, out, "interface=wl_seat")
	assert.Contains(t, out, "closing child before its parent")
	assert.Contains(t, out, "parent=wl_display")
}
