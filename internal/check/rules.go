package check

import (
	"restrict_ip/internal/action"
	"restrict_ip/internal/dataType"
)

type CheckFunc func(dataType.RequestContext, *dataType.PolicyConfig) action.Verdict

// Rule pairs an exemption check with the reason reported when it grants
type Rule struct {
	Reason action.Reason
	Check  CheckFunc
}

// DefaultRules returns the exemption checks in evaluation order
func DefaultRules() []Rule {
	rules := make([]Rule, 0, 3)
	rules = append(rules, Rule{Reason: action.ReasonPathWhitelist, Check: PathWhitelist})
	rules = append(rules, Rule{Reason: action.ReasonPathBlacklist, Check: PathBlacklist})
	rules = append(rules, Rule{Reason: action.ReasonIPWhitelist, Check: IPWhitelist})
	return rules
}
