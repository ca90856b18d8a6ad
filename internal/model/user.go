package model

import "time"

const UserTableName = "users"

// User 用户模型
// Role 为系统角色(viewer/member/manager/admin), IsActive 仅拦截登录, 不影响已签发的会话
type User struct {
	BaseModelWithSoftDelete
	Email        string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Name         *string    `gorm:"size:100" json:"name,omitempty"`
	PasswordHash string     `gorm:"size:255" json:"-"` // 不返回到前端；LDAP 用户可为空字符串
	Role         string     `gorm:"size:20;not null;default:member;index" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	AuthProvider string     `gorm:"size:20;not null;default:local" json:"auth_provider"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return UserTableName
}
