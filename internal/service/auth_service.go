package service

import (
	"go.uber.org/zap"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/config"
	"crm-service/internal/pkg/crypto"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	GetCurrentUser(session *auth.Session) (*dto.UserInfo, error)
}

type authService struct {
	userRepo    repository.UserRepository
	ldapService LDAPService
}

func NewAuthService(userRepo repository.UserRepository, ldapService LDAPService) AuthService {
	return &authService{
		userRepo:    userRepo,
		ldapService: ldapService,
	}
}

// Login 用户登录, auth_type 为空时默认本地认证
func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	authType := req.AuthType
	if authType == "" {
		authType = constants.AuthTypeLocal
	}

	var user *model.User
	var err error
	switch authType {
	case constants.AuthTypeLDAP:
		user, err = s.loginWithLDAP(req.Email, req.Password)
	default:
		user, err = s.loginWithLocal(req.Email, req.Password)
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, pkgErrors.ErrUserDisabled
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		// 登录时间更新失败不阻断登录
		logger.Warn("更新登录时间失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	resp, err := s.buildLoginResponse(user)
	if err != nil {
		return nil, err
	}

	logger.Info("用户登录成功",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("auth_type", authType))
	return resp, nil
}

// loginWithLocal 本地密码认证
// 用户不存在与密码错误返回同一错误, 不暴露账号是否存在
func (s *authService) loginWithLocal(email, password string) (*model.User, error) {
	if !config.GlobalConfig.Auth.Local.Enabled {
		return nil, pkgErrors.New(pkgErrors.CodeAuthError, "本地认证未启用")
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if err == pkgErrors.ErrRecordNotFound {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return user, nil
}

// loginWithLDAP LDAP认证, 首次登录自动建立本地用户(默认member角色)
func (s *authService) loginWithLDAP(email, password string) (*model.User, error) {
	ldapUser, err := s.ldapService.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ldapUser.Email)
	if err == nil {
		return user, nil
	}
	if err != pkgErrors.ErrRecordNotFound {
		return nil, err
	}

	name := ldapUser.DisplayName
	user = &model.User{
		Email:        ldapUser.Email,
		Name:         &name,
		Role:         string(auth.RoleMember),
		IsActive:     true,
		AuthProvider: constants.AuthTypeLDAP,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("LDAP用户首次登录, 已创建本地用户", zap.String("email", user.Email))
	return user, nil
}

// RefreshToken 刷新Token
// 角色从用户表重新读取, 不信任刷新Token内的角色快照
func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if err == pkgErrors.ErrRecordNotFound {
			return nil, pkgErrors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, pkgErrors.ErrUserDisabled
	}

	return s.buildLoginResponse(user)
}

// GetCurrentUser 返回会话对应的用户信息
func (s *authService) GetCurrentUser(session *auth.Session) (*dto.UserInfo, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		return nil, err
	}
	name := ""
	if user.Name != nil {
		name = *user.Name
	}
	return &dto.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  name,
		Role:  user.Role,
	}, nil
}

func (s *authService) buildLoginResponse(user *model.User) (*dto.LoginResponse, error) {
	name := ""
	if user.Name != nil {
		name = *user.Name
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Email, name, user.Role)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成Token失败", err)
	}
	refreshToken, err := jwt.GenerateRefreshToken(user.ID, user.Email, name, user.Role)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成Token失败", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    config.GlobalConfig.Auth.JWT.AccessTokenExpire,
		User: &dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  name,
			Role:  user.Role,
		},
	}, nil
}
