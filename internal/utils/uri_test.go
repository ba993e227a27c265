package utils

import (
	"reflect"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/path", "/path"},
		{"/Path/Upper", "/path/upper"},
		{"/path?query=1", "/path"},
		{"/path?q=1&b=2", "/path"},
		{"/path#fragment", "/path"},
		{"/path//double", "/path/double"},
		{"/path/../parent", "/parent"},
		{"./relative", "/relative"},
		{"/user/", "/user"},
		{"/user/reset/AbC123", "/user/reset/abc123"},
		{"?only=query", "/"},
		{"", "/"},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.input); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePaths(t *testing.T) {
	got := NormalizePaths([]string{" /Some/Path ", "", "/other", "/some/path", "node/1"})
	want := []string{"/some/path", "/other", "/node/1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizePaths() = %q, want %q", got, want)
	}
}
