package analysis

// Status is the classified health of the server fleet. The wire strings match
// what gets persisted in the last-status file.
type Status string

const (
	StatusUp       Status = "UP"
	StatusDegraded Status = "DEGRADED"
	StatusDown     Status = "DOWN"
	StatusUnknown  Status = "UNKNOWN"
	StatusAPIError Status = "API_ERROR"
)

// Critical reports whether a status always warrants a notification regardless
// of what the previous run saw.
func Critical(s Status) bool {
	return s == StatusDown || s == StatusAPIError
}

// Issue identifies one condition contributing to a status downgrade.
type Issue string

const (
	IssuePingMissing Issue = "ping_null"
	IssuePingHigh    Issue = "ping_high"
	IssueServersLow  Issue = "servers_low"
	IssueDataOld     Issue = "data_old"
	IssueFetchFailed Issue = "fetch_failed"
)
