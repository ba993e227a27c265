package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPolicy = `enable: true
allow_role_bypass: true
white_black_list: 0
mail_address: admin[at]example.com
address_list: |
  # office
  10.0.0.5-10.0.0.20
`

func writeRules(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "restrict_ip.yml"), []byte(testPolicy), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IP_Whitelist.conf"), []byte("127.0.0.1 // loopback\n"), 0644))
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	rules := writeRules(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"in range", []string{"--ip", "10.0.0.7"}, "allowed reason=ip_whitelist"},
		{"static list", []string{"--ip", "127.0.0.1"}, "allowed reason=ip_whitelist"},
		{"outside", []string{"--ip", "10.0.0.21"}, "blocked reason=no_exemption"},
		{"bypass", []string{"--ip", "8.8.8.8", "--bypass"}, "allowed reason=bypass"},
		{"account path", []string{"--ip", "8.8.8.8", "--path", "/User/Login"}, "allowed reason=bypass"},
		{"cli", []string{"--ip", "8.8.8.8", "--cli"}, "allowed reason=cli"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"check", "--rules", rules}, tt.args...)
			out, err := execute(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestCheckCommandMissingPolicy(t *testing.T) {
	_, err := execute(t, "", "check", "--rules", t.TempDir(), "--ip", "10.0.0.7")
	assert.Error(t, err)
}

func TestParseCommandStdin(t *testing.T) {
	out, err := execute(t, "10.0.0.1 # a\n/* gone\n10.0.0.2 */\n\n 10.0.0.3-5 \n", "parse", "-")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.3-5"}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestParseCommandFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "list.conf")
	require.NoError(t, os.WriteFile(file, []byte("::1\n192.168.0.1 // router\n"), 0644))

	out, err := execute(t, "", "parse", file)
	require.NoError(t, err)
	assert.Equal(t, []string{"::1", "192.168.0.1"}, strings.Split(strings.TrimSpace(out), "\n"))
}

func TestValidateCommand(t *testing.T) {
	prefix := t.TempDir()
	rules := writeRules(t)
	require.NoError(t, os.MkdirAll(filepath.Join(prefix, "config"), 0755))
	mainCfg := "rule_path: " + rules + "\nlog_path: " + t.TempDir() + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(prefix, "config", "restrict_ip.yml"), []byte(mainCfg), 0644))

	out, err := execute(t, "", "--prefix", prefix, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid (mode disabled, 2 address entries)")
}

func TestValidateCommandMissingConfig(t *testing.T) {
	_, err := execute(t, "", "--prefix", t.TempDir(), "validate")
	assert.Error(t, err)
}
