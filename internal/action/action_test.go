package action

import "testing"

func TestDecisionResult(t *testing.T) {
	tests := []struct {
		d    Decision
		want string
	}{
		{Allowed(ReasonDisabled), "allowed"},
		{Allowed(ReasonIPWhitelist), "allowed"},
		{Blocked(), "blocked"},
	}
	for _, tt := range tests {
		if got := tt.d.Result(); got != tt.want {
			t.Errorf("Decision{%v, %s}.Result() = %s, want %s", tt.d.Blocked, tt.d.Reason, got, tt.want)
		}
	}
	if Blocked().Reason != ReasonNoExemption {
		t.Errorf("Blocked().Reason = %s, want %s", Blocked().Reason, ReasonNoExemption)
	}
}

func TestVerdictString(t *testing.T) {
	tests := map[Verdict]string{
		NotApplicable: "not_applicable",
		Grant:         "grant",
		Deny:          "deny",
		Verdict(9):    "unknown",
	}
	for v, want := range tests {
		if got := v.String(); got != want {
			t.Errorf("Verdict(%d).String() = %s, want %s", int(v), got, want)
		}
	}
}
