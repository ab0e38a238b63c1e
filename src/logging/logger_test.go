package logging

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	saved := GetLogLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		level.SetLevel(saved)
	})
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := capture(t)
	SetLogLevel("info")

	msg := "exported py_plot_L_baa_aaa_spread (100.0% of 2 files) in 41ms"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% of 2 files)") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!f(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLogLevel("warn")

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below warn leaked: %s", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "warn 3") {
		t.Fatalf("missing warn line: %s", out)
	}
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "error 4") {
		t.Fatalf("missing error line: %s", out)
	}
}

func TestSetLogLevelIgnoresUnknown(t *testing.T) {
	capture(t)
	SetLogLevel("error")
	SetLogLevel("chatty")
	if got := GetLogLevel(); got != LevelError {
		t.Fatalf("level changed to %v on unknown name", got)
	}
	SetLogLevel("  Warning ")
	if got := GetLogLevel(); got != LevelWarn {
		t.Fatalf("expected warn, got %v", got)
	}
	if ValidLevel("chatty") || !ValidLevel("DEBUG") {
		t.Fatalf("ValidLevel disagrees with SetLogLevel")
	}
}

func TestChartLoggerDemotesInfo(t *testing.T) {
	buf := capture(t)
	SetLogLevel("info")

	l := ChartLogger()
	l.Infof("canvas box: %v", "layout")
	if buf.Len() != 0 {
		t.Fatalf("go-chart info should log at debug: %s", buf.String())
	}
	l.Err(errors.New("range broken"))
	if !strings.Contains(buf.String(), "range broken") {
		t.Fatalf("chart errors must be logged: %s", buf.String())
	}

	buf.Reset()
	SetLogLevel("debug")
	ChartLogger().Infof("canvas box: %v", "layout")
	if !strings.Contains(buf.String(), "chart") || !strings.Contains(buf.String(), "canvas box: layout") {
		t.Fatalf("expected named debug line: %s", buf.String())
	}
}
