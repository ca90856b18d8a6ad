package service

import (
	"go.uber.org/zap"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	pkgErrors "crm-service/pkg/errors"
)

type EpicService interface {
	ListByProject(session *auth.Session, projectID int64) ([]*dto.EpicResponse, error)
	Create(session *auth.Session, projectID int64, req *dto.EpicCreateRequest) (*dto.EpicResponse, error)
	Update(session *auth.Session, epicID int64, req *dto.EpicUpdateRequest) (*dto.EpicResponse, error)
	Delete(session *auth.Session, epicID int64) error
}

type epicService struct {
	epicRepo  repository.EpicRepository
	issueRepo repository.IssueRepository
	authzSvc  AuthorizationService
}

func NewEpicService(
	epicRepo repository.EpicRepository,
	issueRepo repository.IssueRepository,
	authzSvc AuthorizationService,
) EpicService {
	return &epicService{
		epicRepo:  epicRepo,
		issueRepo: issueRepo,
		authzSvc:  authzSvc,
	}
}

// ListByProject 史诗列表, 附带每个史诗的事项数量
func (s *epicService) ListByProject(session *auth.Session, projectID int64) ([]*dto.EpicResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}

	epics, err := s.epicRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	counts, err := s.issueRepo.CountGroupByEpic(projectID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.EpicResponse, 0, len(epics))
	for _, epic := range epics {
		items = append(items, toEpicResponse(epic, counts[epic.ID]))
	}
	return items, nil
}

func (s *epicService) Create(session *auth.Session, projectID int64, req *dto.EpicCreateRequest) (*dto.EpicResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}

	epic := &model.Epic{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.epicRepo.Create(epic); err != nil {
		return nil, err
	}

	logger.Info("创建史诗", zap.Int64("epic_id", epic.ID), zap.Int64("project_id", projectID),
		zap.Int64("operator", session.UserID))
	return toEpicResponse(epic, 0), nil
}

// Update 更新史诗, 先按ID解析所属项目再做访问判定
func (s *epicService) Update(session *auth.Session, epicID int64, req *dto.EpicUpdateRequest) (*dto.EpicResponse, error) {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authzSvc.AssertProjectAccess(session, epic.ProjectID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		epic.Name = *req.Name
	}
	if req.Description != nil {
		epic.Description = req.Description
	}

	if err := s.epicRepo.Update(epic); err != nil {
		return nil, err
	}

	counts, err := s.issueRepo.CountGroupByEpic(epic.ProjectID)
	if err != nil {
		return nil, err
	}
	return toEpicResponse(epic, counts[epic.ID]), nil
}

func (s *epicService) Delete(session *auth.Session, epicID int64) error {
	epic, err := s.epicRepo.FindByID(epicID)
	if err != nil {
		return err
	}
	if _, err := s.authzSvc.AssertProjectAccess(session, epic.ProjectID); err != nil {
		return err
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return pkgErrors.ErrForbidden
	}

	if err := s.epicRepo.Delete(epicID); err != nil {
		return err
	}

	logger.Info("删除史诗", zap.Int64("epic_id", epicID), zap.Int64("operator", session.UserID))
	return nil
}

func toEpicResponse(epic *model.Epic, issueCount int64) *dto.EpicResponse {
	return &dto.EpicResponse{
		ID:          epic.ID,
		ProjectID:   epic.ProjectID,
		Name:        epic.Name,
		Description: epic.Description,
		IssueCount:  issueCount,
		CreatedAt:   formatTime(epic.CreatedAt),
		UpdatedAt:   formatTime(epic.UpdatedAt),
	}
}
