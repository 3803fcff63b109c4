// Package gmail provides a client for the Gmail API scoped to sending
// mail. It is the second rung of the delivery fallback chain: when the
// hosted-document channel fails, generated collateral is emailed to the
// requester or to the configured fallback address.
package gmail
