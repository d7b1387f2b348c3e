// Package kernel provides core domain primitives for the resale system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for record identifiers with validation and comparison capabilities
//   - UserID: The identity of an authenticated user, serialized as a decimal string
//   - OrderNumber: The opaque external identity of an order
//   - ListingID: The legacy listing-scoped identifier, kept as a distinct type
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
