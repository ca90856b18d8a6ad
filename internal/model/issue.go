package model

import "time"

const IssueTableName = "issues"
const IssueAssigneeTableName = "issue_assignees"

// Issue 事项模型, 可见性完全继承所属项目
type Issue struct {
	BaseModelWithSoftDelete
	ProjectID   int64      `gorm:"not null;index" json:"project_id"`
	EpicID      *int64     `gorm:"index" json:"epic_id,omitempty"`
	SprintID    *int64     `gorm:"index" json:"sprint_id,omitempty"`
	ReporterID  *int64     `gorm:"index" json:"reporter_id,omitempty"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Status      string     `gorm:"size:20;not null;default:TO_DO;index" json:"status"`
	Priority    string     `gorm:"size:20;not null;default:MEDIUM" json:"priority"`
	Type        string     `gorm:"size:20;not null;default:TASK" json:"type"`
	DueDate     *time.Time `json:"due_date,omitempty"`

	Project   *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Epic      *Epic           `gorm:"foreignKey:EpicID" json:"epic,omitempty"`
	Sprint    *Sprint         `gorm:"foreignKey:SprintID" json:"sprint,omitempty"`
	Reporter  *User           `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Assignees []IssueAssignee `gorm:"foreignKey:IssueID" json:"assignees,omitempty"`
}

func (Issue) TableName() string {
	return IssueTableName
}

// IssueAssignee 事项负责人
type IssueAssignee struct {
	BaseModel
	IssueID int64 `gorm:"column:issue_id;not null;uniqueIndex:idx_issue_user" json:"issue_id"`
	UserID  int64 `gorm:"column:user_id;not null;uniqueIndex:idx_issue_user" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (IssueAssignee) TableName() string {
	return IssueAssigneeTableName
}
