// Package broadcast gates and dispatches newsletter issues to confirmed
// subscribers.
//
// Publish validates administrator credentials from a raw Authorization header
// before anything else: with invalid credentials no email is ever attempted.
// Dispatch is sequential in list order; whether one failed recipient aborts
// the rest is isolated behind DeliveryPolicy, with abort-on-first-failure as
// the default and a best-effort mode that continues and reports each failed
// recipient instead.
package broadcast
