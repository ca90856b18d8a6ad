package service

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	"crm-service/pkg/constants"
	pkgErrors "crm-service/pkg/errors"
)

const (
	keySlugMaxLen     = 12
	keySuffixLen      = 4
	keyGenMaxAttempts = 5
	keySuffixCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type CaseService interface {
	Create(session *auth.Session, req *dto.CaseCreateRequest) (*dto.CaseResponse, error)
	Get(session *auth.Session, id int64) (*dto.CaseResponse, error)
	Update(session *auth.Session, id int64, req *dto.CaseUpdateRequest) (*dto.CaseResponse, error)
	Delete(session *auth.Session, id int64) error
	List(session *auth.Session, query *dto.CaseListQuery) ([]*dto.CaseResponse, int64, error)
	Convert(session *auth.Session, id int64) (*dto.CaseConvertResponse, error)
}

type caseService struct {
	db          *gorm.DB
	caseRepo    repository.CaseRepository
	accountRepo repository.AccountRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
	authzSvc    AuthorizationService
}

func NewCaseService(
	db *gorm.DB,
	caseRepo repository.CaseRepository,
	accountRepo repository.AccountRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
	authzSvc AuthorizationService,
) CaseService {
	return &caseService{
		db:          db,
		caseRepo:    caseRepo,
		accountRepo: accountRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		authzSvc:    authzSvc,
	}
}

// Create 创建商机, member及以上; 阶段不传默认LEAD
func (s *caseService) Create(session *auth.Session, req *dto.CaseCreateRequest) (*dto.CaseResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleMember) {
		return nil, pkgErrors.ErrForbidden
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(*req.AccountID); err != nil {
			return nil, err
		}
	}

	stage := constants.CaseStageLead
	if req.Stage != nil {
		stage = *req.Stage
	}

	ownerID := session.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	c := &model.Case{
		Title:       req.Title,
		Description: req.Description,
		Stage:       stage,
		AccountID:   req.AccountID,
		ContactID:   req.ContactID,
		OwnerID:     &ownerID,
	}

	if err := s.caseRepo.Create(c); err != nil {
		return nil, err
	}

	logger.Info("创建商机", zap.Int64("case_id", c.ID), zap.Int64("operator", session.UserID))
	return s.toResponse(c), nil
}

func (s *caseService) Get(session *auth.Session, id int64) (*dto.CaseResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}

	c, err := s.caseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	ok, err := s.authzSvc.CanAccessCaseViaAccount(session.UserID, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgErrors.ErrForbidden
	}

	return s.toResponse(c), nil
}

// Update 更新商机, 仅更新出现的字段
// 阶段可自由设置(包括回退与跳级), 服务端不强制管道顺序
func (s *caseService) Update(session *auth.Session, id int64, req *dto.CaseUpdateRequest) (*dto.CaseResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleMember) {
		return nil, pkgErrors.ErrForbidden
	}

	c, err := s.caseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Stage != nil {
		if !constants.IsValidCaseStage(*req.Stage) {
			return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "非法的商机阶段")
		}
		c.Stage = *req.Stage
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(*req.AccountID); err != nil {
			return nil, err
		}
		c.AccountID = req.AccountID
		c.Account = nil
	}
	if req.ContactID != nil {
		c.ContactID = req.ContactID
		c.Contact = nil
	}
	if req.OwnerID != nil {
		c.OwnerID = req.OwnerID
	}

	if err := s.caseRepo.Update(c); err != nil {
		return nil, err
	}

	updated, err := s.caseRepo.FindByID(c.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(updated), nil
}

func (s *caseService) Delete(session *auth.Session, id int64) error {
	if session == nil {
		return pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return pkgErrors.ErrForbidden
	}

	if err := s.caseRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("删除商机", zap.Int64("case_id", id), zap.Int64("operator", session.UserID))
	return nil
}

// List 商机列表
// 已转换商机按链接项目可见性过滤, 未转换商机按客户桥接(客户名下有本人参与的项目)过滤
func (s *caseService) List(session *auth.Session, query *dto.CaseListQuery) ([]*dto.CaseResponse, int64, error) {
	if session == nil {
		return nil, 0, pkgErrors.ErrUnauthorized
	}

	projectIDs, err := s.authzSvc.VisibleProjectIDs(session.UserID)
	if err != nil {
		return nil, 0, err
	}

	filter := &repository.CaseListFilter{
		Stage:   query.Stage,
		Keyword: query.Keyword,
	}
	scope := &repository.CaseAccessScope{
		UserID:     session.UserID,
		ProjectIDs: projectIDs,
	}

	cases, total, err := s.caseRepo.List(query.GetPage(), query.GetPageSize(), filter, scope)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.CaseResponse, 0, len(cases))
	for _, c := range cases {
		items = append(items, s.toResponse(c))
	}
	return items, total, nil
}

// Convert 商机转项目, 整体在一个事务内完成:
// 生成唯一项目Key → 创建项目 → 写入成员(操作人manager, 原负责人member) → 守卫更新商机
// 守卫更新仅在 project_id 仍为空时生效, 并发转换时后到者回滚并收到冲突错误
func (s *caseService) Convert(session *auth.Session, id int64) (*dto.CaseConvertResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}

	c, err := s.caseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	ok, err := s.authzSvc.CanAccessCaseViaAccount(session.UserID, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgErrors.ErrForbidden
	}

	if c.ProjectID != nil {
		return nil, pkgErrors.ErrCaseAlreadyConverted
	}

	// Key 基准优先取客户名称, 缺失时退回商机标题
	base := c.Title
	if c.Account != nil {
		base = c.Account.Name
	}
	key, err := generateProjectKey(base, s.projectRepo.KeyExists)
	if err != nil {
		return nil, err
	}

	var project *model.Project
	err = s.db.Transaction(func(tx *gorm.DB) error {
		today := datatypes.Date(time.Now())
		project = &model.Project{
			Key:         key,
			Name:        c.Title,
			Description: c.Description,
			OwnerID:     &session.UserID,
			AccountID:   c.AccountID,
			StartDate:   &today,
		}
		if err := s.projectRepo.Create(tx, project); err != nil {
			return err
		}

		if err := s.memberRepo.Create(tx, &model.ProjectMember{
			ProjectID: project.ID,
			UserID:    session.UserID,
			Role:      constants.ProjectRoleManager,
		}); err != nil {
			return err
		}
		if c.OwnerID != nil && *c.OwnerID != session.UserID {
			if err := s.memberRepo.Create(tx, &model.ProjectMember{
				ProjectID: project.ID,
				UserID:    *c.OwnerID,
				Role:      constants.ProjectRoleMember,
			}); err != nil {
				return err
			}
		}

		rows, err := s.caseRepo.MarkConverted(tx, c.ID, project.ID, constants.CaseStageWon)
		if err != nil {
			return err
		}
		if rows == 0 {
			return pkgErrors.ErrCaseAlreadyConverted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("商机转换为项目",
		zap.Int64("case_id", c.ID),
		zap.Int64("project_id", project.ID),
		zap.String("key", project.Key),
		zap.Int64("operator", session.UserID))

	return &dto.CaseConvertResponse{
		Project: &dto.ProjectSimpleResponse{
			ID:        project.ID,
			Key:       project.Key,
			Name:      project.Name,
			CreatedAt: formatTime(project.CreatedAt),
			UpdatedAt: formatTime(project.UpdatedAt),
		},
	}, nil
}

func (s *caseService) toResponse(c *model.Case) *dto.CaseResponse {
	return &dto.CaseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Stage:       c.Stage,
		Account:     toAccountRef(c.Account),
		Contact:     toContactRef(c.Contact),
		ProjectID:   c.ProjectID,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

// slugifyKeyBase 提取大写字母数字, 截断到12位
func slugifyKeyBase(base string) string {
	var b strings.Builder
	for _, r := range base {
		if b.Len() >= keySlugMaxLen {
			break
		}
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(unicode.ToUpper(r))
		} else if unicode.IsDigit(r) && r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func randomKeySuffix() string {
	b := make([]byte, keySuffixLen)
	for i := range b {
		b[i] = keySuffixCharset[rand.Intn(len(keySuffixCharset))]
	}
	return string(b)
}

// generateProjectKey 生成唯一项目Key
// 形如 <SLUG>-<4位随机后缀>, 与现有Key碰撞时重试, 5次仍碰撞则退回 PROJ-<UUID前8位>
func generateProjectKey(base string, exists func(string) (bool, error)) (string, error) {
	slug := slugifyKeyBase(base)
	if slug == "" {
		slug = "PROJ"
	}

	for i := 0; i < keyGenMaxAttempts; i++ {
		key := slug + "-" + randomKeySuffix()
		used, err := exists(key)
		if err != nil {
			return "", err
		}
		if !used {
			return key, nil
		}
	}

	fallback := "PROJ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fallback, nil
}
