package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func TestZapAdapterForwardsEntries(t *testing.T) {
	var buf bytes.Buffer
	base := New(InfoLevel, &buf)

	zl := NewZapLogger(base)
	zl.Info("rule computed", zap.String("family", "legendre"), zap.Int64("order", 7))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["message"] != "rule computed" {
		t.Errorf("message: got %v", entry["message"])
	}
	if entry["family"] != "legendre" {
		t.Errorf("family field: got %v", entry["family"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level: got %v", entry["level"])
	}
}

func TestZapAdapterHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	base := New(WarnLevel, &buf)

	zl := NewZapLogger(base)
	zl.Debug("noise")
	zl.Info("still noise")

	if buf.Len() != 0 {
		t.Errorf("entries below the configured level were written: %s", buf.String())
	}

	zl.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn entry was dropped")
	}
}
