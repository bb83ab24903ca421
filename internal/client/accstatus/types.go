package accstatus

import (
	"fmt"
	"time"
)

// API status codes as reported by the upstream feed.
const (
	APIStatusUp      = 1
	APIStatusDown    = 0
	APIStatusUnknown = -1
)

type statusPayload struct {
	Status    int    `json:"status"`
	Ping      *int   `json:"ping"`
	Servers   int    `json:"servers"`
	Players   int    `json:"players"`
	Date      string `json:"date"`
	DownSince string `json:"down_since"`
}

// Reading is one raw observation from the status API. It carries no
// interpretation; classification happens downstream.
type Reading struct {
	Status      int
	Ping        *int
	Servers     int
	Players     int
	Date        string
	DownSince   string
	FetchedAt   time.Time
	RequestTime time.Duration
}

type FailureKind string

const (
	FailTimeout     FailureKind = "timeout"
	FailConnection  FailureKind = "connection_error"
	FailBadResponse FailureKind = "bad_response"
	FailMalformed   FailureKind = "malformed_json"
	FailUnexpected  FailureKind = "unexpected"
)

// FetchError wraps any failure that prevented a valid reading.
type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
