package check

import (
	"restrict_ip/internal/action"
	"restrict_ip/internal/dataType"
)

// PathBlacklist exempts every path that is not listed while blacklist mode is active.
// An empty blacklist therefore exempts all paths.
func PathBlacklist(reqData dataType.RequestContext, policy *dataType.PolicyConfig) action.Verdict {
	if policy.ListMode != dataType.ListBlacklist {
		return action.NotApplicable
	}
	if dataType.HasPath(policy.PathBlacklist, reqData.Path) {
		return action.Deny
	}
	return action.Grant
}
