package dto

// ContactCreateRequest 创建联系人请求
type ContactCreateRequest struct {
	AccountID *int64  `json:"account_id"`
	OwnerID   *int64  `json:"owner_id"` // 不传默认为当前用户
	FirstName string  `json:"first_name" binding:"required,max=100"`
	LastName  string  `json:"last_name" binding:"required,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

// ContactUpdateRequest 更新联系人请求, 仅更新出现的字段
type ContactUpdateRequest struct {
	AccountID *int64  `json:"account_id"`
	OwnerID   *int64  `json:"owner_id"`
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=32"`
}

// ContactListQuery 联系人列表请求
type ContactListQuery struct {
	PageQuery
	AccountID *int64 `form:"account_id"`
}

// ContactResponse 联系人响应
type ContactResponse struct {
	ID        int64               `json:"id"`
	FirstName string              `json:"first_name"`
	LastName  string              `json:"last_name"`
	Email     *string             `json:"email"`
	Phone     *string             `json:"phone"`
	Account   *AccountRef         `json:"account"`
	Owner     *UserSimpleResponse `json:"owner"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// AccountRef 客户引用
type AccountRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
