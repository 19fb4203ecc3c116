// Package errs provides standardized error types for the kitchen service.
// Every type follows the same shape so callers can classify failures with
// errors.Is against a sentinel and inspect details with errors.As:
//
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value breaks a domain rule
//   - ObjectNotFoundError: an aggregate has no history
//   - VersionIsInvalidError: an append lost an optimistic concurrency race
//   - IllegalStateTransitionError: a command is not allowed in the current state
//   - ReplayIsInconsistentError: stored history cannot be folded into an aggregate
//
// Each type has a sentinel (e.g. ErrValueIsRequired), constructors with and
// without cause, and an Unwrap method returning the sentinel.
package errs
