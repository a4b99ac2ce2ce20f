package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level got=%s", log.GetLevel())
	}
	log.WithField("report", "r-1").Info("报告已生成")
	out := buf.String()
	if !strings.Contains(out, "报告已生成") || !strings.Contains(out, "report=r-1") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", &buf)
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level got=%s", log.GetLevel())
	}
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output should be filtered, got %q", buf.String())
	}
}
