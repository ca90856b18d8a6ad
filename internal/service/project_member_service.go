package service

import (
	"go.uber.org/zap"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

type ProjectMemberService interface {
	List(session *auth.Session, projectID int64) ([]*dto.ProjectMemberResponse, error)
	Add(session *auth.Session, projectID int64, req *dto.ProjectMemberAddRequest) (*dto.ProjectMemberResponse, error)
	UpdateRole(session *auth.Session, memberID int64, req *dto.ProjectMemberUpdateRoleRequest) (*dto.ProjectMemberResponse, error)
	Remove(session *auth.Session, memberID int64) error
}

type projectMemberService struct {
	memberRepo repository.ProjectMemberRepository
	userRepo   repository.UserRepository
	authzSvc   AuthorizationService
}

func NewProjectMemberService(
	memberRepo repository.ProjectMemberRepository,
	userRepo repository.UserRepository,
	authzSvc AuthorizationService,
) ProjectMemberService {
	return &projectMemberService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
		authzSvc:   authzSvc,
	}
}

func (s *projectMemberService) List(session *auth.Session, projectID int64) ([]*dto.ProjectMemberResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ProjectMemberResponse, 0, len(members))
	for _, member := range members {
		items = append(items, toMemberResponse(member))
	}
	return items, nil
}

// Add 添加项目成员, 访问守卫 + manager及以上; 重复添加返回冲突
func (s *projectMemberService) Add(session *auth.Session, projectID int64, req *dto.ProjectMemberAddRequest) (*dto.ProjectMemberResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return nil, pkgErrors.ErrForbidden
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, err
	}

	role := constants.ProjectRoleMember
	if req.Role != nil {
		role = *req.Role
	}

	member := &model.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		Role:      role,
	}
	if err := s.memberRepo.Create(nil, member); err != nil {
		return nil, err
	}

	created, err := s.memberRepo.FindByID(member.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("添加项目成员", zap.Int64("project_id", projectID), zap.Int64("user_id", req.UserID),
		zap.String("role", role), zap.Int64("operator", session.UserID))
	return toMemberResponse(created), nil
}

// UpdateRole 更新成员项目角色, 访问守卫 + manager及以上
func (s *projectMemberService) UpdateRole(session *auth.Session, memberID int64, req *dto.ProjectMemberUpdateRoleRequest) (*dto.ProjectMemberResponse, error) {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authzSvc.AssertProjectAccess(session, member.ProjectID); err != nil {
		return nil, err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return nil, pkgErrors.ErrForbidden
	}

	if err := s.memberRepo.UpdateRole(memberID, req.Role); err != nil {
		return nil, err
	}

	updated, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return nil, err
	}
	return toMemberResponse(updated), nil
}

// Remove 移除项目成员, 访问守卫 + manager及以上
func (s *projectMemberService) Remove(session *auth.Session, memberID int64) error {
	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		return err
	}
	if _, err := s.authzSvc.AssertProjectAccess(session, member.ProjectID); err != nil {
		return err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return pkgErrors.ErrForbidden
	}

	if err := s.memberRepo.Delete(memberID); err != nil {
		return err
	}

	logger.Info("移除项目成员", zap.Int64("member_id", memberID), zap.Int64("project_id", member.ProjectID),
		zap.Int64("operator", session.UserID))
	return nil
}

func toMemberResponse(member *model.ProjectMember) *dto.ProjectMemberResponse {
	resp := &dto.ProjectMemberResponse{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		CreatedAt: formatTime(member.CreatedAt),
		UpdatedAt: formatTime(member.UpdatedAt),
	}
	if member.User != nil {
		resp.Email = member.User.Email
		resp.Name = member.User.Name
	}
	return resp
}
