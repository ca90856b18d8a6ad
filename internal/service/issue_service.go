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

// IssueListQuery 事项列表请求
type IssueListQuery struct {
	dto.PageQuery
	Status   *string `form:"status" binding:"omitempty,oneof=TO_DO IN_PROGRESS IN_REVIEW BLOCKED DONE"`
	Priority *string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Type     *string `form:"type" binding:"omitempty,oneof=FEATURE TASK BUG CHORE"`
	EpicID   *int64  `form:"epic_id"`
	SprintID *int64  `form:"sprint_id"`
}

type IssueService interface {
	ListByProject(session *auth.Session, projectID int64, query *IssueListQuery) ([]*dto.IssueResponse, int64, error)
	Create(session *auth.Session, projectID int64, req *dto.IssueCreateRequest) (*dto.IssueResponse, error)
	UpdateStatus(session *auth.Session, issueID int64, req *dto.IssueUpdateStatusRequest) (*dto.IssueResponse, error)
}

type issueService struct {
	issueRepo  repository.IssueRepository
	epicRepo   repository.EpicRepository
	sprintRepo repository.SprintRepository
	authzSvc   AuthorizationService
}

func NewIssueService(
	issueRepo repository.IssueRepository,
	epicRepo repository.EpicRepository,
	sprintRepo repository.SprintRepository,
	authzSvc AuthorizationService,
) IssueService {
	return &issueService{
		issueRepo:  issueRepo,
		epicRepo:   epicRepo,
		sprintRepo: sprintRepo,
		authzSvc:   authzSvc,
	}
}

func (s *issueService) ListByProject(session *auth.Session, projectID int64, query *IssueListQuery) ([]*dto.IssueResponse, int64, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, 0, err
	}

	filter := &repository.IssueListFilter{
		Status:   query.Status,
		Priority: query.Priority,
		Type:     query.Type,
		EpicID:   query.EpicID,
		SprintID: query.SprintID,
		Keyword:  query.Keyword,
	}

	issues, total, err := s.issueRepo.List(projectID, query.GetPage(), query.GetPageSize(), filter)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.IssueResponse, 0, len(issues))
	for _, issue := range issues {
		items = append(items, toIssueResponse(issue))
	}
	return items, total, nil
}

// Create 创建事项, 史诗与迭代必须属于同一项目
func (s *issueService) Create(session *auth.Session, projectID int64, req *dto.IssueCreateRequest) (*dto.IssueResponse, error) {
	if _, err := s.authzSvc.AssertProjectAccess(session, projectID); err != nil {
		return nil, err
	}

	if req.EpicID != nil {
		epic, err := s.epicRepo.FindByID(*req.EpicID)
		if err != nil {
			return nil, err
		}
		if epic.ProjectID != projectID {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "史诗不属于该项目")
		}
	}
	if req.SprintID != nil {
		sprint, err := s.sprintRepo.FindByID(*req.SprintID)
		if err != nil {
			return nil, err
		}
		if sprint.ProjectID != projectID {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "迭代不属于该项目")
		}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	priority := constants.IssuePriorityMedium
	if req.Priority != nil {
		if !constants.IsValidIssuePriority(*req.Priority) {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "非法的事项优先级")
		}
		priority = *req.Priority
	}
	issueType := constants.IssueTypeTask
	if req.Type != nil {
		if !constants.IsValidIssueType(*req.Type) {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "非法的事项类型")
		}
		issueType = *req.Type
	}

	issue := &model.Issue{
		ProjectID:   projectID,
		EpicID:      req.EpicID,
		SprintID:    req.SprintID,
		ReporterID:  &session.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      constants.IssueStatusToDo,
		Priority:    priority,
		Type:        issueType,
		DueDate:     dueDate,
	}
	if err := s.issueRepo.Create(issue); err != nil {
		return nil, err
	}

	if len(req.AssigneeIDs) > 0 {
		if err := s.issueRepo.ReplaceAssignees(issue.ID, req.AssigneeIDs); err != nil {
			return nil, err
		}
	}

	created, err := s.issueRepo.FindByID(issue.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("创建事项", zap.Int64("issue_id", issue.ID), zap.Int64("project_id", projectID),
		zap.Int64("operator", session.UserID))
	return toIssueResponse(created), nil
}

// UpdateStatus 更新事项状态, 先按ID解析所属项目再做访问判定
func (s *issueService) UpdateStatus(session *auth.Session, issueID int64, req *dto.IssueUpdateStatusRequest) (*dto.IssueResponse, error) {
	issue, err := s.issueRepo.FindByID(issueID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authzSvc.AssertProjectAccess(session, issue.ProjectID); err != nil {
		return nil, err
	}
	if !constants.IsValidIssueStatus(req.Status) {
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "非法的事项状态")
	}

	if err := s.issueRepo.UpdateStatus(issueID, req.Status); err != nil {
		return nil, err
	}
	issue.Status = req.Status

	return toIssueResponse(issue), nil
}

func toIssueResponse(issue *model.Issue) *dto.IssueResponse {
	resp := &dto.IssueResponse{
		ID:          issue.ID,
		ProjectID:   issue.ProjectID,
		EpicID:      issue.EpicID,
		SprintID:    issue.SprintID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      issue.Status,
		Priority:    issue.Priority,
		Type:        issue.Type,
		DueDate:     formatTimePtr(issue.DueDate),
		Assignees:   make([]*dto.UserSimpleResponse, 0, len(issue.Assignees)),
		CreatedAt:   formatTime(issue.CreatedAt),
		UpdatedAt:   formatTime(issue.UpdatedAt),
	}
	for i := range issue.Assignees {
		if issue.Assignees[i].User != nil {
			resp.Assignees = append(resp.Assignees, toUserSimple(issue.Assignees[i].User))
		}
	}
	return resp
}
