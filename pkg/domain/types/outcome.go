package types

import "fmt"

// DeliveryOutcome represents the result of one delivery attempt
type DeliveryOutcome string

const (
	DeliverySent   DeliveryOutcome = "sent"
	DeliveryFailed DeliveryOutcome = "failed"
)

// AllDeliveryOutcomes returns all valid delivery outcomes
func AllDeliveryOutcomes() []DeliveryOutcome {
	return []DeliveryOutcome{
		DeliverySent,
		DeliveryFailed,
	}
}

// IsValid checks if the delivery outcome is valid
func (o DeliveryOutcome) IsValid() bool {
	switch o {
	case DeliverySent,
		DeliveryFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the delivery outcome
func (o DeliveryOutcome) String() string {
	return string(o)
}

// ParseDeliveryOutcome parses a string into a DeliveryOutcome
func ParseDeliveryOutcome(s string) (DeliveryOutcome, error) {
	o := DeliveryOutcome(s)
	if !o.IsValid() {
		return "", fmt.Errorf("invalid delivery outcome: %s", s)
	}
	return o, nil
}
