// Package delivery hands generated collateral to the requester through
// an ordered list of channels: a hosted cloud document first, email as
// the degraded fallback, and an inline text preview as the terminal
// channel that cannot fail.
//
// The orchestrator folds over the channel list and stops at the first
// success. Attempts are independent: a failure never prevents the next
// channel from being tried, nothing is retried, and partial side effects
// of a failed attempt are not rolled back; delivery is at-most-once per
// channel, never exactly-once overall.
package delivery
