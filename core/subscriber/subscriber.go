package subscriber

// Status is the lifecycle state of a subscriber. A subscriber starts pending
// and becomes confirmed exactly once, through a valid confirmation token.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Subscriber is a validated name/email pair ready to be persisted.
type Subscriber struct {
	Name  Name
	Email Email
}

// New validates both fields and returns a Subscriber. It returns the first
// validation error encountered, which is a client-input failure.
func New(name, email string) (Subscriber, error) {
	n, err := NewName(name)
	if err != nil {
		return Subscriber{}, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return Subscriber{}, err
	}
	return Subscriber{Name: n, Email: e}, nil
}

// Confirmed is a subscriber entry in confirmed status, as returned by the
// store's confirmed listing. Only the email is needed for broadcasting.
type Confirmed struct {
	Email Email
}
