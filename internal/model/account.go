package model

const AccountTableName = "accounts"

// Account 客户模型
type Account struct {
	BaseModelWithSoftDelete
	Name     string  `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Industry *string `gorm:"size:100" json:"industry,omitempty"`
	Website  *string `gorm:"size:200" json:"website,omitempty"`
	Phone    *string `gorm:"size:32" json:"phone,omitempty"`
	OwnerID  *int64  `gorm:"index" json:"owner_id,omitempty"`

	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Contacts []Contact `gorm:"foreignKey:AccountID" json:"contacts,omitempty"`
	Cases    []Case    `gorm:"foreignKey:AccountID" json:"cases,omitempty"`
	Projects []Project `gorm:"foreignKey:AccountID" json:"projects,omitempty"`
}

func (Account) TableName() string {
	return AccountTableName
}

// AccountRelationCounts 客户关联对象数量
type AccountRelationCounts struct {
	Contacts int64 `json:"contacts"`
	Cases    int64 `json:"cases"`
	Projects int64 `json:"projects"`
}
