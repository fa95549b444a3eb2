package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tandemhr/ess-backend-go/internal/domain/user"
)

func TestIsAdmin(t *testing.T) {
	assert.False(t, Principal{Role: user.RoleEmployee}.IsAdmin())
	assert.True(t, Principal{Role: user.RoleAdmin}.IsAdmin())
	assert.True(t, Principal{Role: user.RoleSuperAdmin}.IsAdmin())
}

func TestEffectiveCompanyID(t *testing.T) {
	override := "co-2"

	// Only super-admin accounts may switch company.
	p := Principal{CompanyID: "co-1", Role: user.RoleAdmin, CompanyOverride: &override}
	assert.Equal(t, "co-1", p.EffectiveCompanyID())

	p.Role = user.RoleSuperAdmin
	assert.Equal(t, "co-2", p.EffectiveCompanyID())

	p.CompanyOverride = nil
	assert.Equal(t, "co-1", p.EffectiveCompanyID())
}

func TestScopeCovers(t *testing.T) {
	sc := Scope{Kind: GroupOutlets, ManagedOutlets: []string{"out-1", "out-2"}}
	assert.True(t, sc.Covers("out-2"))
	assert.False(t, sc.Covers("out-3"))

	sc.WholeCompany = true
	assert.True(t, sc.Covers("out-3"))

	dept := Scope{Kind: GroupDepartments, ManagedDepartments: []string{"dep-1"}}
	assert.True(t, dept.Covers("dep-1"))
	assert.False(t, dept.Covers("out-1"))
}
