package order

import "github.com/go-faster/errors"

// Status enumerates the order fulfilment workflow states.
type Status string

const (
	// StatusPending is the initial state of a placed order awaiting packing.
	StatusPending Status = "pending"
	// StatusPacked indicates the order has been packed and awaits dispatch.
	StatusPacked Status = "packed"
	// StatusShipped indicates the order has been handed to the carrier.
	StatusShipped Status = "shipped"
	// StatusDelivered is the terminal state with no further transitions.
	StatusDelivered Status = "delivered"
)

// ErrTerminalStatus is returned when a transition is requested for an order
// already in its terminal state.
var ErrTerminalStatus = errors.New("order is already delivered")

// next holds the single allowed successor for each status. The workflow is
// strictly forward-moving: pending -> packed -> shipped -> delivered.
var next = map[Status]Status{
	StatusPending: StatusPacked,
	StatusPacked:  StatusShipped,
	StatusShipped: StatusDelivered,
}

// Statuses lists all workflow states in chain order.
func Statuses() []Status {
	return []Status{StatusPending, StatusPacked, StatusShipped, StatusDelivered}
}

// Valid reports whether s is one of the four workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPacked, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Next returns the single allowed successor status. The second return value
// is false for the terminal StatusDelivered and for unknown statuses.
func (s Status) Next() (Status, bool) {
	n, ok := next[s]
	return n, ok
}

// Terminal reports whether no further transition exists from s.
func (s Status) Terminal() bool {
	_, ok := next[s]
	return !ok
}

// Label returns the display form of the status: the raw value with its first
// letter capitalized ("pending" -> "Pending").
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
