package dto

// AccountCreateRequest 创建客户请求
type AccountCreateRequest struct {
	Name     string  `json:"name" binding:"required,max=200"`
	Industry *string `json:"industry" binding:"omitempty,max=100"`
	Website  *string `json:"website" binding:"omitempty,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	OwnerID  *int64  `json:"owner_id"` // 不传默认为当前用户
}

// AccountUpdateRequest 更新客户请求, 仅更新出现的字段
type AccountUpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Industry *string `json:"industry" binding:"omitempty,max=100"`
	Website  *string `json:"website" binding:"omitempty,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	OwnerID  *int64  `json:"owner_id"`
}

// AccountListQuery 客户列表请求
type AccountListQuery struct {
	PageQuery
}

// AccountCounts 客户关联数量
type AccountCounts struct {
	Contacts int64 `json:"contacts"`
	Cases    int64 `json:"cases"`
	Projects int64 `json:"projects"`
}

// AccountResponse 客户响应
type AccountResponse struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Industry  *string             `json:"industry"`
	Website   *string             `json:"website"`
	Phone     *string             `json:"phone"`
	Owner     *UserSimpleResponse `json:"owner"`
	Counts    *AccountCounts      `json:"counts,omitempty"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}
