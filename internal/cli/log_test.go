package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coursefinder/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		log   func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("msg") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("msg") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("msg") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("msg") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Found 10 courses")

	out := buf.String()
	if !strings.Contains(out, "Found 10 courses (") {
		t.Errorf("progress output %q should carry the message and elapsed time", out)
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should return log.Default()")
	}

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)
	registerLogHooks(logger)

	ctx := context.Background()
	observability.Search().OnSearchStart(ctx, "department", "CMSC")
	observability.Search().OnCourseDegraded(ctx, "CMSC131", "sections", errors.New("boom"))
	observability.Cache().OnCacheHit(ctx, "umdio:")
	observability.HTTP().OnResponse(ctx, "GET", "api.umd.io", "/v1/courses", 200, time.Second)

	out := buf.String()
	for _, want := range []string{"search start", "CMSC", "course degraded", "CMSC131", "cache hit", "response"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestVerboseRegistersHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	_, srv := newFakeAPI(t, cmscRoutes)
	cfg := writeConfig(t, srv.URL, "")

	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfg, "--verbose", "semesters"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !strings.Contains(logs.String(), "request") {
		t.Errorf("verbose logs should trace catalog requests:\n%s", logs.String())
	}
}
