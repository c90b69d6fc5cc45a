// Package services holds the error taxonomy and context plumbing shared by
// the pipeline stages.
//
// Stage code wraps failures with one of the sentinel markers so callers can
// distinguish an unreachable source from a validation problem or a failed
// write without parsing message text. A candidate that simply fails to match
// is never an error and never passes through this package.
package services
