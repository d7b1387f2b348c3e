// Package notification defines the user-facing alerts produced by order
// events.
//
// Three kinds exist: TICKET_REQUEST (a purchase created an order against the
// seller's listing), PURCHASE_STATUS (the counterpart changed the order
// status), and MESSAGE (the counterpart sent a chat message). Every kind
// carries a relative deep link to the order's detail screen.
//
// Notifications are an effect of committed state changes, never part of the
// transaction itself: the emitting use case writes state first, commits, and
// only then composes and delivers notifications. A delivery failure degrades
// the response but never rolls back the state change.
package notification
