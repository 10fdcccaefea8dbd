package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "purchase", "sales"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, Role(valid), role)
	}

	_, ok := ParseRole("superadmin")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestRolePredicates(t *testing.T) {
	assert.True(t, CanPostAccounting(RoleAdmin))
	assert.True(t, CanPostAccounting(RolePurchase))
	assert.False(t, CanPostAccounting(RoleSales))

	assert.True(t, CanCloseDay(RoleAdmin))
	assert.False(t, CanCloseDay(RolePurchase))
	assert.False(t, CanCloseDay(RoleSales))

	assert.True(t, CanManageLedgerMapping(RoleAdmin))
	assert.False(t, CanManageLedgerMapping(RolePurchase))
	assert.False(t, CanManageLedgerMapping(RoleSales))
}

func TestCanPostForUser(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		actor  string
		target string
		want   bool
	}{
		{"admin posts for anyone", RoleAdmin, "u1", "u2", true},
		{"admin with empty ids", RoleAdmin, "", "", true},
		{"purchase posts for self", RolePurchase, "u1", "u1", true},
		{"purchase cannot post for other", RolePurchase, "u1", "u2", false},
		{"purchase with missing actor id", RolePurchase, "", "u1", false},
		{"purchase with missing target id", RolePurchase, "u1", "", false},
		{"sales never posts", RoleSales, "u1", "u1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPostForUser(tt.role, tt.actor, tt.target))
		})
	}
}
