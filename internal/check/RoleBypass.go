package check

import (
	"restrict_ip/internal/dataType"
	"strings"
)

// paths that stay reachable so a bypass-capable user can still sign in
var accountPaths = []string{"/user", "/user/login", "/user/password", "/user/logout"}

const accountResetPrefix = "/user/reset/"

// AllowByPermission reports whether the request skips restriction entirely
func AllowByPermission(reqData dataType.RequestContext, policy *dataType.PolicyConfig) bool {
	if !policy.AllowRoleBypass {
		return false
	}
	if reqData.HasBypassCapability {
		return true
	}
	return IsAccountPath(reqData.Path)
}

func IsAccountPath(path string) bool {
	path = strings.ToLower(path)
	if dataType.HasPath(accountPaths, path) {
		return true
	}
	return strings.HasPrefix(path, accountResetPrefix)
}
