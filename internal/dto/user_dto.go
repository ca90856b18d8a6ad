package dto

// UserCreateRequest 创建用户请求(管理端)
type UserCreateRequest struct {
	Name     string `json:"name" binding:"omitempty,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserListQuery 用户列表请求
type UserListQuery struct {
	PageQuery
	Role *string `form:"role" binding:"omitempty,oneof=viewer member manager admin"`
}

// UserUpdateRoleRequest 更新用户角色
type UserUpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=viewer member manager admin"`
}

// UserUpdateActiveRequest 启用/禁用用户
type UserUpdateActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UserDeleteRequest 按邮箱删除用户
type UserDeleteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UserUpdateProfileRequest 更新个人资料
type UserUpdateProfileRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UserUpdatePasswordRequest 修改密码
type UserUpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Name        *string `json:"name"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// UserSimpleResponse 用户精简信息
type UserSimpleResponse struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}
