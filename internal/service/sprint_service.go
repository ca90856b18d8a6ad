package service

import (
	"time"

	"go.uber.org/zap"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

type SprintService interface {
	ListByProject(session *auth.Session, projectID int64) ([]*dto.SprintResponse, error)
	Create(session *auth.Session, projectID int64, req *dto.SprintCreateRequest) (*dto.SprintResponse, error)
	UpdateStatus(session *auth.Session, sprintID int64, req *dto.SprintUpdateStatusRequest) (*dto.SprintResponse, error)
}

type sprintService struct {
	sprintRepo repository.SprintRepository
	issueRepo  repository.IssueRepository
	authzSvc   AuthorizationService
}

func NewSprintService(
	sprintRepo repository.SprintRepository,
	issueRepo repository.IssueRepository,
	authzSvc AuthorizationService,
) SprintService {
	return &sprintService{
		sprintRepo: sprintRepo,
		issueRepo:  issueRepo,
		authzSvc:   authzSvc,
	}
}

func (s *sprintService) ListByProject(session *auth.Session, projectID int64) ([]*dto.SprintResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}

	sprints, err := s.sprintRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	counts, err := s.issueRepo.CountGroupBySprint(projectID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SprintResponse, 0, len(sprints))
	for _, sprint := range sprints {
		items = append(items, toSprintResponse(sprint, counts[sprint.ID]))
	}
	return items, nil
}

// Create 创建迭代, 访问守卫之上还要求manager等级
func (s *sprintService) Create(session *auth.Session, projectID int64, req *dto.SprintCreateRequest) (*dto.SprintResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return nil, pkgErrors.ErrForbidden
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil && endDate != nil && time.Time(*endDate).Before(time.Time(*startDate)) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "结束日期不能早于开始日期")
	}

	status := constants.SprintStatusPlanned
	if req.Status != nil {
		status = *req.Status
	}

	sprint := &model.Sprint{
		ProjectID: projectID,
		Name:      req.Name,
		Goal:      req.Goal,
		Status:    status,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.sprintRepo.Create(sprint); err != nil {
		return nil, err
	}

	logger.Info("创建迭代", zap.Int64("sprint_id", sprint.ID), zap.Int64("project_id", projectID),
		zap.Int64("operator", session.UserID))
	return toSprintResponse(sprint, 0), nil
}

// UpdateStatus 更新迭代状态, 先按ID解析所属项目; 守卫之上还要求manager等级
func (s *sprintService) UpdateStatus(session *auth.Session, sprintID int64, req *dto.SprintUpdateStatusRequest) (*dto.SprintResponse, error) {
	sprint, err := s.sprintRepo.FindByID(sprintID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authzSvc.AssertProjectAccess(session, sprint.ProjectID); err != nil {
		return nil, err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return nil, pkgErrors.ErrForbidden
	}
	if !constants.IsValidSprintStatus(req.Status) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "非法的迭代状态")
	}

	if err := s.sprintRepo.UpdateStatus(sprintID, req.Status); err != nil {
		return nil, err
	}
	sprint.Status = req.Status

	counts, err := s.issueRepo.CountGroupBySprint(sprint.ProjectID)
	if err != nil {
		return nil, err
	}
	return toSprintResponse(sprint, counts[sprint.ID]), nil
}

func toSprintResponse(sprint *model.Sprint, issueCount int64) *dto.SprintResponse {
	return &dto.SprintResponse{
		ID:         sprint.ID,
		ProjectID:  sprint.ProjectID,
		Name:       sprint.Name,
		Goal:       sprint.Goal,
		Status:     sprint.Status,
		StartDate:  formatDate(sprint.StartDate),
		EndDate:    formatDate(sprint.EndDate),
		IssueCount: issueCount,
		CreatedAt:  formatTime(sprint.CreatedAt),
		UpdatedAt:  formatTime(sprint.UpdatedAt),
	}
}
