package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

type ProjectService interface {
	List(session *auth.Session, query *dto.PageQuery) ([]*dto.ProjectResponse, int64, error)
	Get(session *auth.Session, id int64) (*dto.ProjectResponse, error)
	Create(session *auth.Session, req *dto.ProjectCreateRequest) (*dto.ProjectResponse, error)
	Update(session *auth.Session, id int64, req *dto.ProjectUpdateRequest) (*dto.ProjectResponse, error)
	Delete(session *auth.Session, id int64) error
}

type projectService struct {
	db          *gorm.DB
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
	accountRepo repository.AccountRepository
	issueRepo   repository.IssueRepository
	authzSvc    AuthorizationService
}

func NewProjectService(
	db *gorm.DB,
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	accountRepo repository.AccountRepository,
	issueRepo repository.IssueRepository,
	authzSvc AuthorizationService,
) ProjectService {
	return &projectService{
		db:          db,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		accountRepo: accountRepo,
		issueRepo:   issueRepo,
		authzSvc:    authzSvc,
	}
}

// List 仅返回可见项目, 可见集合为空时直接返回空页
func (s *projectService) List(session *auth.Session, query *dto.PageQuery) ([]*dto.ProjectResponse, int64, error) {
	if session == nil {
		return nil, 0, pkgErrors.ErrUnauthorized
	}

	visibleIDs, err := s.authzSvc.VisibleProjectIDs(session.UserID)
	if err != nil {
		return nil, 0, err
	}

	projects, total, err := s.projectRepo.ListByIDs(visibleIDs, query.GetPage(), query.GetPageSize(), query.Keyword)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		items = append(items, s.toResponse(project, nil))
	}
	return items, total, nil
}

func (s *projectService) Get(session *auth.Session, id int64) (*dto.ProjectResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, id); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindDetailByID(id)
	if err != nil {
		return nil, err
	}

	sprintCounts, err := s.issueRepo.CountGroupBySprint(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(project, sprintCounts), nil
}

// Create 创建项目, manager及以上; 操作人成为归属人并写入manager成员
func (s *projectService) Create(session *auth.Session, req *dto.ProjectCreateRequest) (*dto.ProjectResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return nil, pkgErrors.ErrForbidden
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(*req.AccountID); err != nil {
			return nil, err
		}
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	var project *model.Project
	err = s.db.Transaction(func(tx *gorm.DB) error {
		project = &model.Project{
			Key:         req.Key,
			Name:        req.Name,
			Description: req.Description,
			OwnerID:     &session.UserID,
			AccountID:   req.AccountID,
			StartDate:   startDate,
			EndDate:     endDate,
		}
		if err := s.projectRepo.Create(tx, project); err != nil {
			return err
		}
		return s.memberRepo.Create(tx, &model.ProjectMember{
			ProjectID: project.ID,
			UserID:    session.UserID,
			Role:      constants.ProjectRoleManager,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("创建项目", zap.Int64("project_id", project.ID), zap.String("key", project.Key),
		zap.Int64("operator", session.UserID))
	return s.toResponse(project, nil), nil
}

// Update 更新项目, 访问守卫 + manager及以上
func (s *projectService) Update(session *auth.Session, id int64, req *dto.ProjectUpdateRequest) (*dto.ProjectResponse, error) {
	project, err := s.authzSvc.AssertProjectAccess(session, id)
	if err != nil {
		return nil, err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return nil, pkgErrors.ErrForbidden
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = req.Description
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(*req.AccountID); err != nil {
			return nil, err
		}
		project.AccountID = req.AccountID
		project.Account = nil
	}
	if req.StartDate != nil {
		startDate, err := parseDate(req.StartDate)
		if err != nil {
			return nil, err
		}
		project.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		project.EndDate = endDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}

	updated, err := s.projectRepo.FindDetailByID(project.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(updated, nil), nil
}

// Delete 删除项目, 仅admin
func (s *projectService) Delete(session *auth.Session, id int64) error {
	if session == nil {
		return pkgErrors.ErrUnauthorized
	}
	if !auth.IsAdmin(session) {
		return pkgErrors.ErrForbidden
	}

	if err := s.projectRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("删除项目", zap.Int64("project_id", id), zap.Int64("operator", session.UserID))
	return nil
}

func (s *projectService) toResponse(project *model.Project, sprintCounts map[int64]int64) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ID,
		Key:         project.Key,
		Name:        project.Name,
		Description: project.Description,
		StartDate:   formatDate(project.StartDate),
		EndDate:     formatDate(project.EndDate),
		Owner:       toUserSimple(project.Owner),
		Account:     toAccountRef(project.Account),
		CreatedAt:   formatTime(project.CreatedAt),
		UpdatedAt:   formatTime(project.UpdatedAt),
	}

	if len(project.Sprints) > 0 {
		resp.Sprints = make([]*dto.SprintResponse, 0, len(project.Sprints))
		for i := range project.Sprints {
			sprint := &project.Sprints[i]
			resp.Sprints = append(resp.Sprints, &dto.SprintResponse{
				ID:         sprint.ID,
				ProjectID:  sprint.ProjectID,
				Name:       sprint.Name,
				Goal:       sprint.Goal,
				Status:     sprint.Status,
				StartDate:  formatDate(sprint.StartDate),
				EndDate:    formatDate(sprint.EndDate),
				IssueCount: sprintCounts[sprint.ID],
				CreatedAt:  formatTime(sprint.CreatedAt),
				UpdatedAt:  formatTime(sprint.UpdatedAt),
			})
		}
	}

	return resp
}
