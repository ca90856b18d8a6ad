package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/crypto"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

type UserService interface {
	Create(session *auth.Session, req *dto.UserCreateRequest) (*dto.UserResponse, error)
	List(session *auth.Session, query *dto.UserListQuery) ([]*dto.UserResponse, int64, error)
	UpdateRole(session *auth.Session, userID int64, req *dto.UserUpdateRoleRequest) (*dto.UserResponse, error)
	UpdateActive(session *auth.Session, userID int64, req *dto.UserUpdateActiveRequest) (*dto.UserResponse, error)
	DeleteByEmail(session *auth.Session, req *dto.UserDeleteRequest) error
	UpdateProfile(session *auth.Session, req *dto.UserUpdateProfileRequest) (*dto.UserResponse, error)
	UpdatePassword(session *auth.Session, req *dto.UserUpdatePasswordRequest) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// adminRoles 管理端用户接口的准入集合, 集合判断而非等级比较
var adminRoles = []auth.Role{auth.RoleAdmin, auth.RoleManager}

// Create 创建用户(管理端), 默认member角色
func (s *userService) Create(session *auth.Session, req *dto.UserCreateRequest) (*dto.UserResponse, error) {
	if err := auth.AssertRole(session, adminRoles...); err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(auth.RoleMember),
		IsActive:     true,
		AuthProvider: constants.AuthTypeLocal,
	}
	if req.Name != "" {
		user.Name = &req.Name
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("创建用户", zap.Int64("user_id", user.ID), zap.String("email", user.Email),
		zap.Int64("operator", session.UserID))
	return toUserResponse(user), nil
}

func (s *userService) List(session *auth.Session, query *dto.UserListQuery) ([]*dto.UserResponse, int64, error) {
	if err := auth.AssertRole(session, adminRoles...); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.List(query.GetPage(), query.GetPageSize(), query.Keyword, query.Role)
	if err != nil {
		return nil, 0, err
	}

	return lo.Map(users, func(u *model.User, _ int) *dto.UserResponse {
		return toUserResponse(u)
	}), total, nil
}

// UpdateRole 更新用户系统角色, 不允许修改自己的角色
func (s *userService) UpdateRole(session *auth.Session, userID int64, req *dto.UserUpdateRoleRequest) (*dto.UserResponse, error) {
	if err := auth.AssertRole(session, adminRoles...); err != nil {
		return nil, err
	}
	if session.UserID == userID {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "不能修改自己的角色")
	}
	if _, ok := auth.ParseRole(req.Role); !ok {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "非法的角色取值")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	user.Role = req.Role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("更新用户角色", zap.Int64("user_id", userID), zap.String("role", req.Role),
		zap.Int64("operator", session.UserID))
	return toUserResponse(user), nil
}

// UpdateActive 启用/禁用用户, 不允许禁用自己
func (s *userService) UpdateActive(session *auth.Session, userID int64, req *dto.UserUpdateActiveRequest) (*dto.UserResponse, error) {
	if err := auth.AssertRole(session, adminRoles...); err != nil {
		return nil, err
	}
	if session.UserID == userID {
		return nil, pkgErrors.New(pkgErrors.CodeForbidden, "不能禁用自己")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = *req.IsActive
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("更新用户状态", zap.Int64("user_id", userID), zap.Bool("is_active", user.IsActive),
		zap.Int64("operator", session.UserID))
	return toUserResponse(user), nil
}

// DeleteByEmail 按邮箱删除用户, 不允许删除自己
func (s *userService) DeleteByEmail(session *auth.Session, req *dto.UserDeleteRequest) error {
	if err := auth.AssertRole(session, adminRoles...); err != nil {
		return err
	}
	if session.Email == req.Email {
		return pkgErrors.New(pkgErrors.CodeForbidden, "不能删除自己")
	}

	if err := s.userRepo.DeleteByEmail(req.Email); err != nil {
		return err
	}

	logger.Info("删除用户", zap.String("email", req.Email), zap.Int64("operator", session.UserID))
	return nil
}

// UpdateProfile 更新个人资料
func (s *userService) UpdateProfile(session *auth.Session, req *dto.UserUpdateProfileRequest) (*dto.UserResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		return nil, err
	}

	user.Name = &req.Name
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

// UpdatePassword 修改密码: 验证当前密码, 新旧密码必须不同
func (s *userService) UpdatePassword(session *auth.Session, req *dto.UserUpdatePasswordRequest) error {
	if session == nil {
		return pkgErrors.ErrUnauthorized
	}
	if req.CurrentPassword == req.NewPassword {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "新密码不能与当前密码相同")
	}
	if len(req.NewPassword) < constants.MinPasswordLength {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "密码长度不能小于8位")
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		return err
	}
	if user.AuthProvider != constants.AuthTypeLocal {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "非本地用户不支持修改密码")
	}
	if !crypto.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return pkgErrors.New(pkgErrors.CodeBadRequest, "当前密码错误")
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	if err := s.userRepo.UpdateFields(user.ID, map[string]interface{}{"password_hash": hash}); err != nil {
		return err
	}

	logger.Info("修改密码", zap.Int64("user_id", user.ID))
	return nil
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: formatTimePtr(u.LastLoginAt),
		CreatedAt:   formatTime(u.CreatedAt),
		UpdatedAt:   formatTime(u.UpdatedAt),
	}
}
