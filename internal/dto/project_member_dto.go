package dto

// ProjectMemberAddRequest 添加项目成员请求
type ProjectMemberAddRequest struct {
	UserID int64   `json:"user_id" binding:"required"`
	Role   *string `json:"role" binding:"omitempty,oneof=manager member"`
}

// ProjectMemberUpdateRoleRequest 更新项目成员角色
type ProjectMemberUpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=manager member"`
}

// ProjectMemberResponse 项目成员响应
type ProjectMemberResponse struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	UserID    int64   `json:"user_id"`
	Role      string  `json:"role"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
