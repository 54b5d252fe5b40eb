package model

import "time"

// Status is the terminal outcome of executing (or deciding not to execute) a
// single block or hook.
type Status string

const (
	StatusPassed   Status = "passed"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
	StatusTimedOut Status = "timedOut"
)

// Reason codes attached to results that did not run to a normal exit.
const (
	ReasonNoDoctest       = "no-doctest"
	ReasonMissingLanguage = "missing language"
	ReasonUnknownLanguage = "unknown language"
	ReasonSpawnFailed     = "spawn failed"
	ReasonTimeout         = "timeout"
)

// Hook identifies which lifecycle command a synthetic hook result belongs to.
type Hook string

const (
	HookSetup    Hook = "setup"
	HookTeardown Hook = "teardown"
)

// ExecutionResult records the outcome of one block or one hook invocation.
// Exactly one result is produced per block and per hook run; results are
// immutable once produced.
//
// Exactly one of Block and Hook is set: Block for block results, Hook for the
// synthetic setup/teardown results.
type ExecutionResult struct {
	Block *CodeBlock `json:"block,omitempty"`
	Hook  Hook       `json:"hook,omitempty"`

	Status Status `json:"status"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	// ExitCode is nil when no process exited: skipped blocks, spawn
	// failures, and timeouts.
	ExitCode *int   `json:"exitCode"`
	Reason   string `json:"reason,omitempty"`

	Duration time.Duration `json:"duration"`
}

// OK reports whether the result counts toward overall success. Skipped blocks
// do not fail a run; failed and timed-out ones do.
func (r ExecutionResult) OK() bool {
	return r.Status != StatusFailed && r.Status != StatusTimedOut
}

// Success is the overall verdict over a result sequence: the logical AND of
// every result not being failed or timed out.
func Success(results []ExecutionResult) bool {
	for _, r := range results {
		if !r.OK() {
			return false
		}
	}
	return true
}
