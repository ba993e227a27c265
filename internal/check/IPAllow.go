package check

import (
	"restrict_ip/internal/action"
	"restrict_ip/internal/dataType"
	"strconv"
	"strings"
)

// IPWhitelist grants when the client IP matches any admin or static address token.
// It applies regardless of the list mode.
func IPWhitelist(reqData dataType.RequestContext, policy *dataType.PolicyConfig) action.Verdict {
	for _, token := range policy.MergedAddresses() {
		if MatchAddress(token, reqData.ClientIP) {
			return action.Grant
		}
	}
	return action.Deny
}

// MatchAddress reports whether clientIP is covered by token. A token is either an
// address compared literally or an IPv4 range written as a.b.c.d-a.b.c.e or a.b.c.d-e.
// Anything that cannot be decomposed simply does not match.
func MatchAddress(token, clientIP string) bool {
	if token == clientIP {
		return true
	}

	pieces := strings.Split(token, "-")
	if len(pieces) != 2 {
		return false
	}

	startPieces := strings.Split(pieces[0], ".")
	// dashed ranges are IPv4 only
	if len(startPieces) != 4 {
		return false
	}
	userPieces := strings.Split(clientIP, ".")
	if len(userPieces) != 4 {
		return false
	}

	for i := 0; i < 3; i++ {
		u, ok := octet(userPieces[i])
		if !ok {
			return false
		}
		s, ok := octet(startPieces[i])
		if !ok || u != s {
			return false
		}
	}

	// the end bound is the last segment, whether written as a full address or a bare octet
	endPieces := strings.Split(pieces[1], ".")
	start, ok := octet(startPieces[3])
	if !ok {
		return false
	}
	end, ok := octet(endPieces[len(endPieces)-1])
	if !ok {
		return false
	}
	user, ok := octet(userPieces[3])
	if !ok {
		return false
	}

	return user >= start && user <= end
}

func octet(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
