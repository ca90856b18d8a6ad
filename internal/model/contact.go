package model

const ContactTableName = "contacts"

// Contact 联系人模型
type Contact struct {
	BaseModelWithSoftDelete
	AccountID *int64  `gorm:"index" json:"account_id,omitempty"`
	OwnerID   *int64  `gorm:"index" json:"owner_id,omitempty"`
	FirstName string  `gorm:"size:100;not null" json:"first_name"`
	LastName  string  `gorm:"size:100;not null" json:"last_name"`
	Email     *string `gorm:"size:100" json:"email,omitempty"`
	Phone     *string `gorm:"size:32" json:"phone,omitempty"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Owner   *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Contact) TableName() string {
	return ContactTableName
}
