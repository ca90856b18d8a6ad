package dto

// ProjectCreateRequest 创建项目请求
type ProjectCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Key         string  `json:"key" binding:"required,max=20,alphanum|containsany=-"`
	Description *string `json:"description"`
	AccountID   *int64  `json:"account_id"`
	StartDate   *string `json:"start_date"` // YYYY-MM-DD
	EndDate     *string `json:"end_date"`   // YYYY-MM-DD
}

// ProjectUpdateRequest 更新项目请求, 仅更新出现的字段
type ProjectUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	AccountID   *int64  `json:"account_id"`
	StartDate   *string `json:"start_date"` // YYYY-MM-DD
	EndDate     *string `json:"end_date"`   // YYYY-MM-DD
}

// ProjectSimpleResponse 项目精简响应
type ProjectSimpleResponse struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ProjectResponse 项目详情响应
type ProjectResponse struct {
	ID          int64               `json:"id"`
	Key         string              `json:"key"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	StartDate   *string             `json:"start_date"`
	EndDate     *string             `json:"end_date"`
	Owner       *UserSimpleResponse `json:"owner"`
	Account     *AccountRef         `json:"account"`
	Sprints     []*SprintResponse   `json:"sprints,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}
