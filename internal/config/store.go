package config

import (
	"restrict_ip/internal/dataType"
	"sync/atomic"
)

// PolicyStore hands out immutable policy snapshots. Reload swaps in a new
// snapshot; requests already holding the old one keep a consistent view.
type PolicyStore struct {
	rulePath string
	current  atomic.Pointer[dataType.PolicyConfig]
	onReload func(err error, policy *dataType.PolicyConfig)
}

func NewPolicyStore(rulePath string) (*PolicyStore, error) {
	s := &PolicyStore{rulePath: rulePath}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticPolicyStore wraps a fixed snapshot, for callers that build the policy themselves
func NewStaticPolicyStore(policy *dataType.PolicyConfig) *PolicyStore {
	s := &PolicyStore{}
	s.current.Store(policy)
	return s
}

// OnReload registers fn to run after every reload attempt
func (s *PolicyStore) OnReload(fn func(err error, policy *dataType.PolicyConfig)) {
	s.onReload = fn
}

// Load returns the current snapshot; callers must not modify it
func (s *PolicyStore) Load() *dataType.PolicyConfig {
	return s.current.Load()
}

// Reload re-reads the policy files. On error the previous snapshot stays active.
func (s *PolicyStore) Reload() error {
	policy, err := LoadPolicy(s.rulePath)
	if err == nil {
		s.current.Store(policy)
	}
	if s.onReload != nil {
		s.onReload(err, policy)
	}
	return err
}
