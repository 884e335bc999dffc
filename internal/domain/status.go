package domain

// DeliveryStatus represents the state of a delivery.
type DeliveryStatus string

// List of possible delivery statuses
const (
	DeliveryScheduled      DeliveryStatus = "scheduled"
	DeliveryPickedUp       DeliveryStatus = "picked-up"
	DeliveryInTransit      DeliveryStatus = "in-transit"
	DeliveryOutForDelivery DeliveryStatus = "out-for-delivery"
	DeliveryDelivered      DeliveryStatus = "delivered"
	DeliveryException      DeliveryStatus = "exception"
	DeliveryFailed         DeliveryStatus = "failed"
)

// progression is the forward path of a delivery, in order.
var progression = [...]DeliveryStatus{
	DeliveryScheduled,
	DeliveryPickedUp,
	DeliveryInTransit,
	DeliveryOutForDelivery,
	DeliveryDelivered,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	return s.step() >= 0 || s == DeliveryException || s == DeliveryFailed
}

// Terminal reports whether no transition may leave the status.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryFailed
}

func (s DeliveryStatus) step() int {
	for i, v := range progression {
		if v == s {
			return i
		}
	}
	return -1
}

// next returns the status following s on the forward path.
func (s DeliveryStatus) next() (DeliveryStatus, bool) {
	i := s.step()
	if i < 0 || i+1 >= len(progression) {
		return "", false
	}
	return progression[i+1], true
}

// Transition checks the move from -> to and returns the held status to store.
// held is the progress status a delivery had before entering exception; it is
// empty for deliveries that are not in exception.
func Transition(from, held, to DeliveryStatus) (DeliveryStatus, bool) {
	if from.Terminal() || !to.Valid() || from == to {
		return "", false
	}
	switch to {
	case DeliveryFailed:
		return "", true
	case DeliveryException:
		return from, true
	}

	base := from
	if from == DeliveryException {
		base = held
	}
	next, ok := base.next()
	if !ok || next != to {
		return "", false
	}
	return "", true
}
