package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgErrors "crm-service/pkg/errors"
)

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		parsed, ok := ParseRole(string(role))
		assert.True(t, ok)
		assert.Equal(t, role, parsed)
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
	_, ok = ParseRole("Admin")
	assert.False(t, ok)
}

func TestRankOrdering(t *testing.T) {
	viewer, _ := Rank(RoleViewer)
	member, _ := Rank(RoleMember)
	manager, _ := Rank(RoleManager)
	admin, _ := Rank(RoleAdmin)

	assert.Less(t, viewer, member)
	assert.Less(t, member, manager)
	assert.Less(t, manager, admin)

	_, ok := Rank(Role("root"))
	assert.False(t, ok)
}

func TestHasAtLeast(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		minimum Role
		want    bool
	}{
		{"admin高于member", RoleAdmin, RoleMember, true},
		{"manager达到manager", RoleManager, RoleManager, true},
		{"member低于manager", RoleMember, RoleManager, false},
		{"viewer低于member", RoleViewer, RoleMember, false},
		{"viewer达到viewer", RoleViewer, RoleViewer, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{UserID: 1, Role: tt.role}
			assert.Equal(t, tt.want, HasAtLeast(session, tt.minimum))
		})
	}
}

func TestHasAtLeastFailClosed(t *testing.T) {
	// 空会话
	assert.False(t, HasAtLeast(nil, RoleViewer))

	// 未知角色不授予任何权限, 即使是最低等级
	session := &Session{UserID: 1, Role: Role("superuser")}
	assert.False(t, HasAtLeast(session, RoleViewer))

	// 未知的minimum同样拒绝
	admin := &Session{UserID: 1, Role: RoleAdmin}
	assert.False(t, HasAtLeast(admin, Role("root")))
}

func TestRoleIn(t *testing.T) {
	manager := &Session{UserID: 1, Role: RoleManager}
	assert.True(t, RoleIn(manager, RoleAdmin, RoleManager))
	assert.False(t, RoleIn(manager, RoleAdmin))

	// admin不在 {manager} 集合内: 集合判断不做等级比较
	admin := &Session{UserID: 2, Role: RoleAdmin}
	assert.False(t, RoleIn(admin, RoleManager))

	assert.False(t, RoleIn(nil, RoleAdmin, RoleManager))
	unknown := &Session{UserID: 3, Role: Role("superuser")}
	assert.False(t, RoleIn(unknown, RoleAdmin, RoleManager))
}

func TestAssertRole(t *testing.T) {
	assert.Equal(t, pkgErrors.ErrUnauthorized, AssertRole(nil, RoleAdmin))

	member := &Session{UserID: 1, Role: RoleMember}
	assert.Equal(t, pkgErrors.ErrForbidden, AssertRole(member, RoleAdmin, RoleManager))

	manager := &Session{UserID: 2, Role: RoleManager}
	assert.NoError(t, AssertRole(manager, RoleAdmin, RoleManager))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(&Session{UserID: 1, Role: RoleAdmin}))
	assert.False(t, IsAdmin(&Session{UserID: 1, Role: RoleManager}))
	assert.False(t, IsAdmin(nil))
}
