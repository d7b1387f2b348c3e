// Package order implements the order aggregate for the ticket resale
// lifecycle engine.
//
// The aggregate root is Order: one buyer-seller agreement over a ticket
// listing, carrying a snapshot of the listing at purchase time and a status
// in the lifecycle state machine.
//
// # Lifecycle
//
//	PENDING ──> PROCESSING ──> COMPLETED ──> CONFIRMED
//	    │            │             │
//	    └────────────┴─────────────┴──────> CANCELLED
//
// CONFIRMED and CANCELLED are terminal. PENDING is never a transition
// target; orders are created in it.
//
// # Access control
//
// There is no global role store. A principal's role is resolved per order
// from the recorded buyer and seller identities (Order.ResolveRole). Status
// changes pass through Order.ChangeStatus, which checks the target value,
// order membership, the role-permission matrix, and transition reachability,
// in that order, so a forbidden request is always reported as access denied
// even when the transition would also be unreachable.
//
// # Usage Example
//
//	ticket, _ := order.NewTicketSnapshot("Hamilton", "Richard Rodgers Theatre",
//		eventAt, decimal.NewFromInt(120), 2)
//	o, _ := order.NewOrder(id, orderNumber, buyerID, sellerID, listingID, ticket)
//
//	// Seller starts ticketing.
//	err := o.ChangeStatus(sellerID, order.Processing)
package order
