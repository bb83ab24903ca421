package analysis

// ShouldNotify decides whether the current run warrants a notification:
// first run ever, a status transition, a critical status, or an explicit
// force override. Each branch is independent.
func ShouldNotify(current Status, last *Status, force bool) bool {
	if force {
		return true
	}
	if last == nil {
		return true
	}
	if current != *last {
		return true
	}
	return Critical(current)
}
