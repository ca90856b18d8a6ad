package model

const EpicTableName = "epics"

// Epic 史诗模型, 可见性完全继承所属项目
type Epic struct {
	BaseModelWithSoftDelete
	ProjectID   int64   `gorm:"not null;index" json:"project_id"`
	Name        string  `gorm:"size:200;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Issues  []Issue  `gorm:"foreignKey:EpicID" json:"issues,omitempty"`
}

func (Epic) TableName() string {
	return EpicTableName
}
