package action

type Verdict int

const (
	NotApplicable Verdict = iota // 0：rule inactive for this policy
	Grant                        // 1：rule exempts the request
	Deny                         // 2：rule applied but did not exempt
)

func (v Verdict) String() string {
	switch v {
	case NotApplicable:
		return "not_applicable"
	case Grant:
		return "grant"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Reason names the step that settled a decision
type Reason string

const (
	ReasonDisabled      Reason = "disabled"
	ReasonCLI           Reason = "cli"
	ReasonBypass        Reason = "bypass"
	ReasonPathWhitelist Reason = "path_whitelist"
	ReasonPathBlacklist Reason = "path_blacklist"
	ReasonIPWhitelist   Reason = "ip_whitelist"
	ReasonNoExemption   Reason = "no_exemption"
)

// Decision saves the result of the decision
type Decision struct {
	Blocked bool
	Reason  Reason
}

func Allowed(reason Reason) Decision {
	return Decision{Blocked: false, Reason: reason}
}

func Blocked() Decision {
	return Decision{Blocked: true, Reason: ReasonNoExemption}
}

func (d Decision) Result() string {
	if d.Blocked {
		return "blocked"
	}
	return "allowed"
}
