package utils

import (
	"os"
	"path/filepath"
	"restrict_ip/internal/dataType"
	"strings"
	"testing"
)

func TestLogDirName(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"example.com", "example.com"},
		{"", defaultLogHost},
		{"  ", defaultLogHost},
		{"../../etc", "etc"},
		{"/", defaultLogHost},
		{"a/b", "b"},
	}
	for _, tt := range tests {
		if got := logDirName(tt.host); got != tt.want {
			t.Errorf("logDirName(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func TestLogxManagerWritesPerHost(t *testing.T) {
	base := t.TempDir()
	m := NewManager(base)

	req := dataType.RequestContext{ClientIP: "10.0.0.9", Host: "example.com", Path: "/admin"}
	m.LogInfo(req, "BLOCKED", "no_exemption")
	m.LogError(req, "template failed", "CheckMain")
	m.Sync()

	info, err := os.ReadFile(filepath.Join(base, "example.com", "info.log"))
	if err != nil {
		t.Fatalf("read info.log: %v", err)
	}
	line := string(info)
	for _, want := range []string{"10.0.0.9", "BLOCKED", "example.com", "/admin", "no_exemption"} {
		if !strings.Contains(line, want) {
			t.Errorf("info.log %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "template failed") {
		t.Errorf("error line leaked into info.log")
	}

	errLog, err := os.ReadFile(filepath.Join(base, "example.com", "error.log"))
	if err != nil {
		t.Fatalf("read error.log: %v", err)
	}
	if !strings.Contains(string(errLog), "template failed") {
		t.Errorf("error.log %q missing error line", string(errLog))
	}
}

func TestDescribeUserAgentEmpty(t *testing.T) {
	if got := DescribeUserAgent(""); got != "-" {
		t.Errorf("DescribeUserAgent(\"\") = %q, want \"-\"", got)
	}
}
