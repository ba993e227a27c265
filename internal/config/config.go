package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"restrict_ip/internal/dataType"
	"restrict_ip/internal/utils"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	PolicyFileName          = "restrict_ip.yml"
	StaticWhitelistFileName = "IP_Whitelist.conf"
)

var (
	ErrPolicyNotFound = errors.New("policy file does not exist")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type MainConfig struct {
	Port                    string        `yaml:"port" validate:"required,numeric"`
	WebPath                 string        `yaml:"web_path" validate:"required,startswith=/"`
	RulePath                string        `yaml:"rule_path" validate:"required"`
	ErrorPage               string        `yaml:"error_page" validate:"required"`
	LogPath                 string        `yaml:"log_path"`
	LogLevel                string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	NodeName                string        `yaml:"node_name"`
	SessionCookie           string        `yaml:"session_cookie" validate:"required"`
	SessionTTL              time.Duration `yaml:"session_ttl" validate:"gt=0"`
	ConnectingHostHeaders   []string      `yaml:"connecting_host_headers"`
	ConnectingIPHeaders     []string      `yaml:"connecting_ip_headers"`
	ConnectingURIHeaders    []string      `yaml:"connecting_uri_headers"`
	ConnectingBypassHeaders []string      `yaml:"connecting_bypass_headers"`
}

func DefaultMainConfig() MainConfig {
	return MainConfig{
		Port:                    "25556",
		WebPath:                 "/restrict_ip",
		RulePath:                "/www/restrict_ip/config/rules",
		ErrorPage:               "/www/restrict_ip/config/error_page",
		LogPath:                 "/www/restrict_ip/log/",
		LogLevel:                "info",
		NodeName:                "Restrict IP",
		SessionCookie:           "__restrict_ip_session",
		SessionTTL:              10 * time.Minute,
		ConnectingHostHeaders:   []string{"Restrict-IP-Real-Host"},
		ConnectingIPHeaders:     []string{"Restrict-IP-Real-IP"},
		ConnectingURIHeaders:    []string{"Restrict-IP-Original-URI"},
		ConnectingBypassHeaders: []string{"Restrict-IP-Bypass"},
	}
}

// LoadMainConfig Read the configuration file and return the configuration object.
// Missing keys keep their default values.
func LoadMainConfig(basePath string) (*MainConfig, error) {
	if basePath == "" {
		exePath, err := os.Executable()
		if err != nil {
			return nil, err
		}
		basePath = filepath.Dir(exePath)
	}
	configPath := filepath.Join(basePath, "config", "restrict_ip.yml")

	return LoadMainConfigFile(configPath)
}

func LoadMainConfigFile(configPath string) (*MainConfig, error) {
	cfg := DefaultMainConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return &cfg, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return &cfg, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := validateStruct(&cfg); err != nil {
		return &cfg, fmt.Errorf("config file %s: %w", configPath, err)
	}

	return &cfg, nil
}

// policyFile is the on-disk shape of the policy; the address list is kept as
// free text so administrators can annotate it with comments.
type policyFile struct {
	dataType.PolicyConfig `yaml:",inline"`
	AddressList           string `yaml:"address_list"`
}

// LoadPolicy reads <rulePath>/restrict_ip.yml and the optional static whitelist
// file next to it, and returns a validated snapshot.
func LoadPolicy(rulePath string) (*dataType.PolicyConfig, error) {
	policyPath := filepath.Join(rulePath, PolicyFileName)
	data, err := os.ReadFile(policyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPolicyNotFound, policyPath)
		}
		return nil, fmt.Errorf("failed to read policy file %s: %w", policyPath, err)
	}

	policy, err := ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("policy file %s: %w", policyPath, err)
	}

	static, err := loadStaticWhitelist(filepath.Join(rulePath, StaticWhitelistFileName))
	if err != nil {
		return nil, err
	}
	policy.StaticAddressWhitelist = static

	return policy, nil
}

// ParsePolicy decodes and validates policy YAML. The static whitelist is left empty.
func ParsePolicy(data []byte) (*dataType.PolicyConfig, error) {
	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	policy := file.PolicyConfig
	policy.PathWhitelist = utils.NormalizePaths(policy.PathWhitelist)
	policy.PathBlacklist = utils.NormalizePaths(policy.PathBlacklist)
	policy.AddressList = utils.ParseAddressList(file.AddressList)
	policy.MailAddress = strings.TrimSpace(policy.MailAddress)

	if err := validateStruct(&policy); err != nil {
		return nil, err
	}

	return &policy, nil
}

// loadStaticWhitelist reads the deploy-time trusted list; a missing file is an empty list
func loadStaticWhitelist(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read static whitelist %s: %w", filePath, err)
	}
	return utils.ParseAddressList(string(data)), nil
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
}
