package kernel

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"resale/internal/pkg/errs"
)

// UserID identifies an authenticated user (the principal of a request, or a
// buyer/seller recorded on an order). User identities are issued by the
// external identity provider; the engine only compares them.
//
// User ids are 64-bit integers that may exceed the safe-integer range of
// JavaScript clients, so UserID always serializes to JSON as a decimal
// string. Unmarshalling accepts both the string form and a bare number for
// legacy payloads.
type UserID int64

// NewUserID creates a UserID. Ids must be positive.
func NewUserID(id int64) (UserID, error) {
	if id <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not a positive id", id))
	}
	return UserID(id), nil
}

// UserIDFromString parses a decimal-string user id, the form used on the
// wire and in JWT subject claims.
func UserIDFromString(s string) (UserID, error) {
	if s == "" {
		return 0, errs.NewValueIsRequiredError("userId")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("userId", err)
	}
	return NewUserID(id)
}

// Validate returns an error for the zero value and negative ids.
func (id UserID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("userId")
	}
	return nil
}

// Int64 returns the raw id for persistence mapping.
func (id UserID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation.
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsEqual reports whether two user ids refer to the same user.
func (id UserID) IsEqual(other UserID) bool {
	return id == other
}

// MarshalJSON encodes the id as a decimal string so clients with
// double-precision number runtimes never lose id precision.
func (id UserID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON accepts either "123" or 123.
func (id *UserID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := UserIDFromString(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

const (
	orderNumberPrefix = "ORD-"
	orderNumberDigits = 12
)

// OrderNumber is the external identity of an order: an opaque, non-sequential
// string generated at purchase time. Uniqueness is enforced by the order
// store's unique constraint.
//
// OrderNumber and ListingID are distinct types on purpose: legacy routes are
// listing-scoped, and the only sanctioned translation between the two id
// spaces is the by-listing order lookup.
type OrderNumber string

// NewOrderNumber generates a fresh order number of the form "ORD-" followed
// by twelve random digits.
func NewOrderNumber() OrderNumber {
	buf := make([]byte, orderNumberDigits)
	// rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)

	var sb strings.Builder
	sb.WriteString(orderNumberPrefix)
	for _, b := range buf {
		sb.WriteByte('0' + b%10)
	}
	return OrderNumber(sb.String())
}

// OrderNumberFromString validates an externally supplied order number.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if s == "" {
		return "", errs.NewValueIsRequiredError("orderNumber")
	}
	if len(s) > 64 {
		return "", errs.NewValueIsOutOfRangeError("orderNumber length", len(s), 1, 64)
	}
	return OrderNumber(s), nil
}

// Validate returns an error for the empty value.
func (n OrderNumber) Validate() error {
	if n == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}

// String returns the raw order number.
func (n OrderNumber) String() string {
	return string(n)
}

// IsEqual reports whether two order numbers identify the same order.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n == other
}

// ListingID identifies the original ticket listing an order was created
// against. Listing ids are numeric strings (twelve random digits for
// listings created after the id migration).
type ListingID string

// ListingIDFromString validates an externally supplied listing id.
func ListingIDFromString(s string) (ListingID, error) {
	if s == "" {
		return "", errs.NewValueIsRequiredError("listingId")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", errs.NewValueIsInvalidErrorWithCause("listingId", fmt.Errorf("%q is not a numeric id", s))
		}
	}
	return ListingID(s), nil
}

// Validate returns an error for the empty value.
func (l ListingID) Validate() error {
	if l == "" {
		return errs.NewValueIsRequiredError("listingId")
	}
	return nil
}

// String returns the raw listing id.
func (l ListingID) String() string {
	return string(l)
}
