package dataType

const RestrictIPVersion = "1.0.0"

// ListMode selects which path list is consulted
type ListMode int

const (
	ListDisabled  ListMode = iota // 0：no path list
	ListWhitelist                 // 1：listed paths are exempt
	ListBlacklist                 // 2：only listed paths are restricted
)

func (m ListMode) String() string {
	switch m {
	case ListDisabled:
		return "disabled"
	case ListWhitelist:
		return "whitelist"
	case ListBlacklist:
		return "blacklist"
	default:
		return "unknown"
	}
}

// RequestContext is what the engine knows about the current request
type RequestContext struct {
	ClientIP            string
	Path                string
	HasBypassCapability bool
	IsCLI               bool

	// only used for logging
	Host      string
	UserAgent string
	SessionID string
}

// PolicyConfig is an immutable snapshot of the restriction settings.
// A snapshot must not be modified after it has been handed to the engine.
type PolicyConfig struct {
	Enabled                bool     `yaml:"enable"`
	AllowRoleBypass        bool     `yaml:"allow_role_bypass"`
	ListMode               ListMode `yaml:"white_black_list" validate:"oneof=0 1 2"`
	PathWhitelist          []string `yaml:"page_whitelist"`
	PathBlacklist          []string `yaml:"page_blacklist"`
	MailAddress            string   `yaml:"mail_address"`
	AddressList            []string `yaml:"-"`
	StaticAddressWhitelist []string `yaml:"-"`
}

// MergedAddresses returns the admin list followed by the static list
func (p *PolicyConfig) MergedAddresses() []string {
	merged := make([]string, 0, len(p.AddressList)+len(p.StaticAddressWhitelist))
	merged = append(merged, p.AddressList...)
	merged = append(merged, p.StaticAddressWhitelist...)
	return merged
}

// HasPath reports whether path is a member of list
func HasPath(list []string, path string) bool {
	for _, p := range list {
		if p == path {
			return true
		}
	}
	return false
}
