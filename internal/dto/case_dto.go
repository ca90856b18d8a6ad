package dto

// CaseCreateRequest 创建商机请求
type CaseCreateRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	Stage       *string `json:"stage" binding:"omitempty,oneof=LEAD QUALIFIED PROPOSAL NEGOTIATION WON LOST"`
	AccountID   *int64  `json:"account_id"`
	ContactID   *int64  `json:"contact_id"`
	OwnerID     *int64  `json:"owner_id"` // 不传默认为当前用户
}

// CaseUpdateRequest 更新商机请求, 仅更新出现的字段
// 阶段可自由设置, 服务端不强制管道顺序
type CaseUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Stage       *string `json:"stage" binding:"omitempty,oneof=LEAD QUALIFIED PROPOSAL NEGOTIATION WON LOST"`
	AccountID   *int64  `json:"account_id"`
	ContactID   *int64  `json:"contact_id"`
	OwnerID     *int64  `json:"owner_id"`
}

// CaseListQuery 商机列表请求
type CaseListQuery struct {
	PageQuery
	Stage *string `form:"stage" binding:"omitempty,oneof=LEAD QUALIFIED PROPOSAL NEGOTIATION WON LOST"`
}

// CaseResponse 商机响应
type CaseResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Stage       string      `json:"stage"`
	Account     *AccountRef `json:"account"`
	Contact     *ContactRef `json:"contact"`
	ProjectID   *int64      `json:"project_id"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// ContactRef 联系人引用
type ContactRef struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
}

// CaseConvertResponse 商机转换响应
type CaseConvertResponse struct {
	Project *ProjectSimpleResponse `json:"project"`
}
