package analysis

import "testing"

func statusPtr(s Status) *Status { return &s }

func TestShouldNotify_FirstRun(t *testing.T) {
	if !ShouldNotify(StatusUp, nil, false) {
		t.Fatalf("first run must notify")
	}
}

func TestShouldNotify_NoChange(t *testing.T) {
	if ShouldNotify(StatusUp, statusPtr(StatusUp), false) {
		t.Fatalf("unchanged UP must not notify")
	}
	if ShouldNotify(StatusDegraded, statusPtr(StatusDegraded), false) {
		t.Fatalf("unchanged DEGRADED must not notify")
	}
}

func TestShouldNotify_StatusChange(t *testing.T) {
	if !ShouldNotify(StatusDown, statusPtr(StatusUp), false) {
		t.Fatalf("UP→DOWN must notify")
	}
	if !ShouldNotify(StatusUp, statusPtr(StatusDown), false) {
		t.Fatalf("DOWN→UP must notify")
	}
}

func TestShouldNotify_CriticalAlwaysNotifies(t *testing.T) {
	if !ShouldNotify(StatusDown, statusPtr(StatusDown), false) {
		t.Fatalf("repeated DOWN must notify")
	}
	if !ShouldNotify(StatusAPIError, statusPtr(StatusAPIError), false) {
		t.Fatalf("repeated API_ERROR must notify")
	}
}

func TestShouldNotify_ForceOverride(t *testing.T) {
	if !ShouldNotify(StatusUp, statusPtr(StatusUp), true) {
		t.Fatalf("force flag must notify even without change")
	}
}
