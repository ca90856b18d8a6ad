package auth

import (
	pkgErrors "crm-service/pkg/errors"
)

// Role 系统角色, 四个取值构成全序: viewer < member < manager < admin
// 高等级角色的能力严格包含低等级角色, 不存在不可比较的角色
type Role string

const (
	RoleViewer  Role = "viewer"
	RoleMember  Role = "member"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// roleRank 角色等级表, 未收录的角色视为无授权(fail-closed)
var roleRank = map[Role]int{
	RoleViewer:  0,
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Roles 返回全部合法角色, 按等级从低到高
func Roles() []Role {
	return []Role{RoleViewer, RoleMember, RoleManager, RoleAdmin}
}

// ParseRole 解析角色字符串, 未知取值返回 ok=false, 绝不默认为任何有权限的角色
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleRank[r]
	return r, ok
}

// Rank 返回角色等级, 未知角色返回 ok=false
func Rank(r Role) (int, bool) {
	rank, ok := roleRank[r]
	return rank, ok
}

// Session 已解析的会话, 显式传入每个鉴权函数, 不做任何全局查找
// Role 为签发Token时的角色快照, 刷新Token时重新读取(接受窗口期内的陈旧)
type Session struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// HasAtLeast 等级比较: 会话角色等级 >= minimum 时为真
// 会话为空或角色不合法时恒为假
func HasAtLeast(s *Session, minimum Role) bool {
	if s == nil {
		return false
	}
	have, ok := roleRank[s.Role]
	if !ok {
		return false
	}
	need, ok := roleRank[minimum]
	if !ok {
		return false
	}
	return have >= need
}

// IsAdmin 等价于 HasAtLeast(s, RoleAdmin)
func IsAdmin(s *Session) bool {
	return HasAtLeast(s, RoleAdmin)
}

// RoleIn 集合判断: 会话角色恰好属于给定集合
// 与 HasAtLeast 是两个不同原语, 调用方需要刻意选择, 不可混用
func RoleIn(s *Session, allowed ...Role) bool {
	if s == nil {
		return false
	}
	if _, ok := roleRank[s.Role]; !ok {
		return false
	}
	for _, r := range allowed {
		if s.Role == r {
			return true
		}
	}
	return false
}

// AssertRole 守卫式集合判断, 用于写操作入口: 不满足时返回错误
// 会话为空返回未授权, 角色不在集合内返回禁止访问
func AssertRole(s *Session, allowed ...Role) error {
	if s == nil {
		return pkgErrors.ErrUnauthorized
	}
	if !RoleIn(s, allowed...) {
		return pkgErrors.ErrForbidden
	}
	return nil
}
