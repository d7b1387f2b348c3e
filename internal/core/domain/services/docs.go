// Package services contains stateless domain services: logic that spans
// multiple aggregates and therefore does not belong to any single one.
//
// NotificationComposer maps order events (purchase, status change, chat
// message) to notifications addressed to the correct party. It encodes the
// counterpart rule: the party who caused an event is never the one notified
// about it.
package services
