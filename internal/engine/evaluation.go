package engine

import (
	"restrict_ip/internal/check"
	"restrict_ip/internal/dataType"
)

// Evaluation is the state of one decision. The permission bypass is computed
// at most once per Evaluation and never shared with another request.
type Evaluation struct {
	policy *dataType.PolicyConfig
	req    dataType.RequestContext

	bypassKnown bool
	bypass      bool
}

func NewEvaluation(policy *dataType.PolicyConfig, req dataType.RequestContext) *Evaluation {
	return &Evaluation{policy: policy, req: req}
}

// Bypass reports whether role bypass lets the request through
func (ev *Evaluation) Bypass() bool {
	if !ev.bypassKnown {
		ev.bypass = ev.policy != nil && check.AllowByPermission(ev.req, ev.policy)
		ev.bypassKnown = true
	}
	return ev.bypass
}
