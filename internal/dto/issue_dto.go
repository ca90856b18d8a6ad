package dto

// IssueCreateRequest 创建事项请求
type IssueCreateRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Type        *string `json:"type" binding:"omitempty,oneof=FEATURE TASK BUG CHORE"`
	EpicID      *int64  `json:"epic_id"`
	SprintID    *int64  `json:"sprint_id"`
	DueDate     *string `json:"due_date"` // RFC3339 或 YYYY-MM-DD
	AssigneeIDs []int64 `json:"assignee_ids"`
}

// IssueUpdateStatusRequest 更新事项状态
type IssueUpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=TO_DO IN_PROGRESS IN_REVIEW BLOCKED DONE"`
}

// IssueResponse 事项响应
type IssueResponse struct {
	ID          int64                 `json:"id"`
	ProjectID   int64                 `json:"project_id"`
	EpicID      *int64                `json:"epic_id,omitempty"`
	SprintID    *int64                `json:"sprint_id,omitempty"`
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	Status      string                `json:"status"`
	Priority    string                `json:"priority"`
	Type        string                `json:"type"`
	DueDate     *string               `json:"due_date"`
	Assignees   []*UserSimpleResponse `json:"assignees"`
	CreatedAt   string                `json:"created_at"`
	UpdatedAt   string                `json:"updated_at"`
}
