// Package chat implements the per-order conversation thread.
//
// Each order carries a private message channel between its buyer and seller.
// There are no standalone conversations: a message always references an
// order, and access control is inherited from that order's party set.
//
// Delivery is pull-based. Clients poll the conversation endpoint; fetching
// marks the caller's unread messages as read. Message bodies are immutable
// and messages are never deleted.
package chat
