package order

import (
	"fmt"

	"resale/internal/pkg/errs"
)

// Status represents the lifecycle state of a resale order.
// It implements a state machine with defined transitions to ensure orders
// follow the correct business workflow.
//
// State transitions:
//
//	PENDING ──> PROCESSING ──> COMPLETED ──> CONFIRMED
//	    │            │             │
//	    └────────────┴─────────────┴──────> CANCELLED
//
// CONFIRMED and CANCELLED are terminal: no outgoing transitions. PENDING is
// never a transition target; orders are born in it.
//
// Status is a value object that validates state transitions and provides the
// wire representations used at the API boundary and in persistence.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: payment is done and the seller has not
	// yet started ticketing.
	Pending

	// Processing indicates the seller has started ticketing.
	Processing

	// Completed indicates ticketing is done and the order awaits the
	// buyer's confirmation.
	Completed

	// Confirmed indicates the buyer accepted the completed order. Terminal.
	Confirmed

	// Cancelled indicates either party withdrew from the order. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire strings.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
		Confirmed:  "CONFIRMED",
		Cancelled:  "CANCELLED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Completed:  "COMPLETED",
		Confirmed:  "CONFIRMED",
		Cancelled:  "CANCELLED",
	}
}

// transitionTargets defines reachability between statuses. A requested target
// outside the current status's set is an invalid transition regardless of the
// requester's role; the engine never coerces or skips states.
func transitionTargets() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Processing, Cancelled},
		Processing: {Completed, Cancelled},
		Completed:  {Confirmed, Cancelled},
		Confirmed:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses a wire-format status value. Any value outside the
// enum is rejected before role checks run.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined enum values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// It implements fmt.Stringer and is safe on any value, including invalid
// ones, for which it returns "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Confirmed || s == Cancelled
}

// CanTransitionTo checks reachability of target from the current status.
//
// Returns:
//   - nil if the transition is defined in the state machine
//   - InvalidTransitionError otherwise, including any request against a
//     terminal status
func (s Status) CanTransitionTo(target Status) error {
	for _, t := range transitionTargets()[s] {
		if t == target {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(s.String(), target.String())
}

// RequestableBy checks the role half of the permission matrix: whether the
// given role may request a transition INTO this status, independent of the
// current status.
//
//	target      | buyer | seller
//	PENDING     |  no   |  yes
//	PROCESSING  |  no   |  yes
//	COMPLETED   |  no   |  yes
//	CONFIRMED   |  yes  |  no
//	CANCELLED   |  yes  |  yes
//
// PENDING keeps the seller's legacy permission even though reachability
// rejects it afterwards: permission errors must win over transition errors.
func (s Status) RequestableBy(role Role) error {
	allowed := false
	switch s {
	case Pending, Processing, Completed:
		allowed = role == RoleSeller
	case Confirmed:
		allowed = role == RoleBuyer
	case Cancelled:
		allowed = role == RoleBuyer || role == RoleSeller
	case Unknown:
		allowed = false
	}

	if !allowed {
		return errs.NewAccessDeniedErrorWithCause(
			fmt.Sprintf("status change to %s", s.String()),
			fmt.Errorf("role %s may not request %s", role.String(), s.String()),
		)
	}
	return nil
}
