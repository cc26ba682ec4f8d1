package service

import "time"

// Login outcomes reported to a LoginRecorder.
const (
	LoginOutcomeCreated  = "created"
	LoginOutcomeUpdated  = "updated"
	LoginOutcomeConflict = "conflict"
	LoginOutcomeInvalid  = "invalid"
	LoginOutcomeError    = "error"
)

// LoginRecorder receives login and token issuance events for monitoring.
type LoginRecorder interface {
	RecordLogin(outcome string, duration time.Duration)
	RecordTokenIssued()
}
