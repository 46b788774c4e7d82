// Package subscriber defines the validated domain types of the subscription
// lifecycle: subscriber names, email addresses, and the two-state status.
//
// Validation happens at construction, so downstream layers (the store, the
// broadcaster) can assume well-formed values. A Subscriber is created in the
// pending state and moves to confirmed exactly once, through a matching
// confirmation token; the transition itself is owned by the store.
package subscriber
