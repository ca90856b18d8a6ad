package dto

// SprintCreateRequest 创建迭代请求
type SprintCreateRequest struct {
	Name      string  `json:"name" binding:"required,max=200"`
	Goal      *string `json:"goal"`
	Status    *string `json:"status" binding:"omitempty,oneof=PLANNED ACTIVE COMPLETED"`
	StartDate *string `json:"start_date"` // YYYY-MM-DD
	EndDate   *string `json:"end_date"`   // YYYY-MM-DD
}

// SprintUpdateStatusRequest 更新迭代状态
type SprintUpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PLANNED ACTIVE COMPLETED"`
}

// SprintResponse 迭代响应
type SprintResponse struct {
	ID         int64   `json:"id"`
	ProjectID  int64   `json:"project_id"`
	Name       string  `json:"name"`
	Goal       *string `json:"goal"`
	Status     string  `json:"status"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	IssueCount int64   `json:"issue_count"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
