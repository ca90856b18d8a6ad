package model

import "gorm.io/datatypes"

const SprintTableName = "sprints"

// Sprint 迭代模型, 可见性完全继承所属项目
type Sprint struct {
	BaseModelWithSoftDelete
	ProjectID int64           `gorm:"not null;index" json:"project_id"`
	Name      string          `gorm:"size:200;not null" json:"name"`
	Goal      *string         `gorm:"type:text" json:"goal,omitempty"`
	Status    string          `gorm:"size:20;not null;default:PLANNED;index" json:"status"`
	StartDate *datatypes.Date `json:"start_date,omitempty"`
	EndDate   *datatypes.Date `json:"end_date,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Issues  []Issue  `gorm:"foreignKey:SprintID" json:"issues,omitempty"`
}

func (Sprint) TableName() string {
	return SprintTableName
}
