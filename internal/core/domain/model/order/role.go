package order

// Role is a principal's relationship to one specific order. It is always
// derived from the order's recorded buyer and seller identities, never
// carried on the principal itself: the same user is a buyer on one order and
// a seller on another.
type Role int

const (
	// RoleNone means the principal is neither buyer nor seller. Every
	// dependent operation on the order must fail with access denied; there
	// is no partial-visibility mode.
	RoleNone Role = iota

	// RoleBuyer is the purchasing party of the order.
	RoleBuyer

	// RoleSeller is the listing party of the order.
	RoleSeller
)

// String returns the lowercase wire form used in API responses.
func (r Role) String() string {
	switch r {
	case RoleBuyer:
		return "buyer"
	case RoleSeller:
		return "seller"
	default:
		return "none"
	}
}
