package model

const CaseTableName = "cases"

// Case 商机模型
// ProjectID 为空表示未转换; 转换时置入项目ID并强制阶段为WON, 此后不可再次转换
// ProjectID 上的唯一索引保证一个项目至多来自一个商机
type Case struct {
	BaseModelWithSoftDelete
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Stage       string  `gorm:"size:20;not null;default:LEAD;index" json:"stage"`
	AccountID   *int64  `gorm:"index" json:"account_id,omitempty"`
	ContactID   *int64  `gorm:"index" json:"contact_id,omitempty"`
	OwnerID     *int64  `gorm:"index" json:"owner_id,omitempty"`
	ProjectID   *int64  `gorm:"uniqueIndex" json:"project_id,omitempty"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Owner   *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Case) TableName() string {
	return CaseTableName
}
