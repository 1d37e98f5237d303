package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"INFO":  LevelInfo,
		"":      LevelInfo,
		"Error": LevelError,
		"off":   LevelNone,
		"bogus": LevelInfo,
	}
	for in, want := range tests {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q)=%v want %v", in, got, want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo).Plain()
	l.Debugf("[VIEW] hidden %d", 1)
	l.Infof("[VIEW] zoom=%.1f", 2.0)
	l.Warnf("[CONFIG] reload failed")
	l.Errorf("[EDITOR] boom")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level:\n%s", out)
	}
	for _, want := range []string{"INFO: [VIEW] zoom=2.0", "WARN: [CONFIG] reload failed", "ERROR: [EDITOR] boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	l.SetLevel(LevelError)
	l.Infof("quiet")
	l.Warnf("quiet")
	if buf.Len() != 0 || l.Level() != LevelError {
		t.Fatalf("unexpected output at error level: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Errorf("nothing to see")
	if l.Level() != LevelNone {
		t.Fatalf("level=%v want NONE", l.Level())
	}
}
