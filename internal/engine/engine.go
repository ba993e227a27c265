// Package engine decides whether a request is blocked by the IP restriction policy.
package engine

import (
	"restrict_ip/internal/action"
	"restrict_ip/internal/check"
	"restrict_ip/internal/dataType"
	"restrict_ip/internal/metrics"

	"go.uber.org/zap"
)

// SessionMarker records that the current session was blocked
type SessionMarker interface {
	MarkBlocked()
}

// Engine runs the exemption rules against a policy snapshot.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	rules   []check.Rule
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(logger *zap.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		rules:   check.DefaultRules(),
		logger:  logger,
		metrics: m,
	}
}

// Evaluate decides on one request. marker is called exactly once when the
// request is blocked and never otherwise; it may be nil.
func (e *Engine) Evaluate(policy *dataType.PolicyConfig, req dataType.RequestContext, marker SessionMarker) action.Decision {
	ev := NewEvaluation(policy, req)
	decision := e.decide(ev)

	if decision.Blocked && marker != nil {
		marker.MarkBlocked()
	}
	e.metrics.RecordDecision(decision)

	fields := []zap.Field{
		zap.String("ip", req.ClientIP),
		zap.String("path", req.Path),
		zap.String("reason", string(decision.Reason)),
	}
	if decision.Blocked {
		e.logger.Info("request blocked", fields...)
	} else {
		e.logger.Debug("request allowed", fields...)
	}

	return decision
}

func (e *Engine) decide(ev *Evaluation) action.Decision {
	// no policy loaded is the same as restriction switched off
	if ev.policy == nil || !ev.policy.Enabled {
		return action.Allowed(action.ReasonDisabled)
	}

	// background and command line runs are never IP checked
	if ev.req.IsCLI {
		return action.Allowed(action.ReasonCLI)
	}

	if ev.Bypass() {
		return action.Allowed(action.ReasonBypass)
	}

	for _, rule := range e.rules {
		if rule.Check(ev.req, ev.policy) == action.Grant {
			return action.Allowed(rule.Reason)
		}
	}

	return action.Blocked()
}
