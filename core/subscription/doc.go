// Package subscription implements the two-state subscription lifecycle on top
// of the shared PostgreSQL connection.
//
// Store owns persistence: a subscriber and its confirmation token are created
// in one transaction (they exist together or not at all), confirmation flips
// a pending subscriber to confirmed through its still-pending token, and the
// confirmed listing feeds the broadcast flow. Store also holds the
// administrator credential check used to gate publishing.
//
// Service wraps Store with the subscription intake flow: it validates the
// inbound name and email, generates a fresh confirmation token, persists the
// pair, and sends the confirmation email carrying the redeem link.
//
// Confirming an unknown, already-confirmed, or otherwise mismatched token is
// deliberately a silent no-op: the store does not reveal whether a token ever
// existed.
package subscription
