// Package security provides the closed role set and pure authorization
// predicates. Predicates return decisions only; callers at the API boundary
// must check them and reject before mutating state.
package security

// Role is one of the three back-office roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePurchase Role = "purchase"
	RoleSales    Role = "sales"
)

// ParseRole validates a stored role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RolePurchase, RoleSales:
		return Role(s), true
	}
	return "", false
}

// CanPostAccounting reports whether the role may post cash vouchers.
func CanPostAccounting(role Role) bool {
	return role == RoleAdmin || role == RolePurchase
}

// CanCloseDay reports whether the role may close an accounts day.
func CanCloseDay(role Role) bool {
	return role == RoleAdmin
}

// CanManageLedgerMapping reports whether the role may edit ledger mappings.
func CanManageLedgerMapping(role Role) bool {
	return role == RoleAdmin
}

// CanPostForUser reports whether the actor may post entries on behalf of the
// target user. Admins may post for anyone; purchase users only for
// themselves, and only when both ids are present.
func CanPostForUser(role Role, actorUserID, targetUserID string) bool {
	if role == RoleAdmin {
		return true
	}
	if role == RolePurchase {
		return actorUserID != "" && targetUserID != "" && actorUserID == targetUserID
	}
	return false
}
