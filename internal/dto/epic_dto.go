package dto

// EpicCreateRequest 创建史诗请求
type EpicCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description"`
}

// EpicUpdateRequest 更新史诗请求, 仅更新出现的字段
type EpicUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Description *string `json:"description"`
}

// EpicResponse 史诗响应
type EpicResponse struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IssueCount  int64   `json:"issue_count"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
