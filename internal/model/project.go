package model

import "gorm.io/datatypes"

const ProjectTableName = "projects"
const ProjectMemberTableName = "project_members"

// Project 项目模型
// 可见性由成员关系与归属决定, 与项目自身字段无关
type Project struct {
	BaseModelWithSoftDelete
	Key         string          `gorm:"size:20;not null;uniqueIndex" json:"key"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	OwnerID     *int64          `gorm:"index" json:"owner_id,omitempty"`
	AccountID   *int64          `gorm:"index" json:"account_id,omitempty"`
	StartDate   *datatypes.Date `json:"start_date,omitempty"`
	EndDate     *datatypes.Date `json:"end_date,omitempty"`

	Owner   *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Account *Account        `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Sprints []Sprint        `gorm:"foreignKey:ProjectID" json:"sprints,omitempty"`
}

func (Project) TableName() string {
	return ProjectTableName
}

// ProjectMember 项目成员, 显式可见性授权
// Role 为项目内角色(manager/member), 与系统角色无关
type ProjectMember struct {
	BaseModel
	ProjectID int64  `gorm:"column:project_id;not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID    int64  `gorm:"column:user_id;not null;uniqueIndex:idx_project_user" json:"user_id"`
	Role      string `gorm:"size:20;not null;default:member" json:"role"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return ProjectMemberTableName
}
