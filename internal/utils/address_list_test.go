package utils

import (
	"reflect"
	"testing"
)

func TestParseAddressList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"new lines", "111.111.111.111\n\t\t\t111.111.111.112", []string{"111.111.111.111", "111.111.111.112"}},
		{"slash comment", "// This is a comment\n\t\t\t111.111.111.111", []string{"111.111.111.111"}},
		{"hash comment", "# This is a comment\n\t\t\t111.111.111.111", []string{"111.111.111.111"}},
		{"block comment", "/**\n\t\t\t *This is a comment\n\t\t\t */\n\t\t\t111.111.111.111", []string{"111.111.111.111"}},
		{"short block comment", "/* multi\nline */\n1.2.3.4", []string{"1.2.3.4"}},
		{"trailing comment", "10.0.0.1 # office\n10.0.0.2 // vpn", []string{"10.0.0.1", "10.0.0.2"}},
		{"blank lines", "\n\n   \n1.2.3.4\n\t\n", []string{"1.2.3.4"}},
		{"crlf", "1.2.3.4\r\n5.6.7.8\r\n", []string{"1.2.3.4", "5.6.7.8"}},
		{"order kept", "9.9.9.9\n1.1.1.1\n::1\n10.0.0.5-20", []string{"9.9.9.9", "1.1.1.1", "::1", "10.0.0.5-20"}},
		{"not validated", "not-an-ip", []string{"not-an-ip"}},
		{"two block comments", "/* a */1.1.1.1\n/* b */2.2.2.2", []string{"1.1.1.1", "2.2.2.2"}},
		{"empty", "", []string{}},
		{"only comments", "# a\n// b\n/* c */", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAddressList(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAddressList(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
