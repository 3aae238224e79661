package model

import "testing"

func TestNormalizeSeverity(t *testing.T) {
	cases := []struct {
		in   string
		want Severity
	}{
		{"High", SeverityHigh},
		{"high", SeverityHigh},
		{" HIGH ", SeverityHigh},
		{"Medium", SeverityMedium},
		{"low", SeverityLow},
		{"critical", SeverityLow},
		{"", SeverityLow},
	}
	for _, c := range cases {
		if got := NormalizeSeverity(c.in); got != c.want {
			t.Errorf("NormalizeSeverity(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTriggersAnalysis(t *testing.T) {
	for _, action := range []PullRequestAction{ActionOpened, ActionSynchronize, ActionReopened} {
		if !action.TriggersAnalysis() {
			t.Errorf("%q should trigger analysis", action)
		}
	}
	for _, action := range []PullRequestAction{"closed", "edited", "labeled", ""} {
		if PullRequestAction(action).TriggersAnalysis() {
			t.Errorf("%q should not trigger analysis", action)
		}
	}
}

func TestPullRequestRefString(t *testing.T) {
	ref := PullRequestRef{Owner: "octo", Repo: "demo", Number: 42}
	if ref.String() != "octo/demo#42" {
		t.Errorf("unexpected String(): %q", ref.String())
	}
	if ref.FullName() != "octo/demo" {
		t.Errorf("unexpected FullName(): %q", ref.FullName())
	}
}
