package check

import (
	"restrict_ip/internal/action"
	"restrict_ip/internal/dataType"
)

// PathWhitelist exempts listed paths while whitelist mode is active
func PathWhitelist(reqData dataType.RequestContext, policy *dataType.PolicyConfig) action.Verdict {
	if policy.ListMode != dataType.ListWhitelist {
		return action.NotApplicable
	}
	if dataType.HasPath(policy.PathWhitelist, reqData.Path) {
		return action.Grant
	}
	return action.Deny
}
