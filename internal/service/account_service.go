package service

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/pkg/logger"
	"crm-service/internal/repository"
	pkgErrors "crm-service/pkg/errors"
)

type AccountService interface {
	Create(session *auth.Session, req *dto.AccountCreateRequest) (*dto.AccountResponse, error)
	Get(session *auth.Session, id int64) (*dto.AccountResponse, error)
	Update(session *auth.Session, id int64, req *dto.AccountUpdateRequest) (*dto.AccountResponse, error)
	Delete(session *auth.Session, id int64) error
	List(session *auth.Session, query *dto.AccountListQuery) ([]*dto.AccountResponse, int64, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
	userRepo    repository.UserRepository
}

func NewAccountService(accountRepo repository.AccountRepository, userRepo repository.UserRepository) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

// Create 创建客户, member及以上; owner 不传默认为当前用户
func (s *accountService) Create(session *auth.Session, req *dto.AccountCreateRequest) (*dto.AccountResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleMember) {
		return nil, pkgErrors.ErrForbidden
	}

	ownerID := session.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	account := &model.Account{
		Name:     req.Name,
		Industry: req.Industry,
		Website:  req.Website,
		Phone:    req.Phone,
		OwnerID:  &ownerID,
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, err
	}

	logger.Info("创建客户", zap.Int64("account_id", account.ID), zap.String("name", account.Name),
		zap.Int64("operator", session.UserID))
	return s.toResponse(account, false)
}

func (s *accountService) Get(session *auth.Session, id int64) (*dto.AccountResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}

	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(account, true)
}

func (s *accountService) Update(session *auth.Session, id int64, req *dto.AccountUpdateRequest) (*dto.AccountResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleMember) {
		return nil, pkgErrors.ErrForbidden
	}

	account, err := s.accountRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Industry != nil {
		account.Industry = req.Industry
	}
	if req.Website != nil {
		account.Website = req.Website
	}
	if req.Phone != nil {
		account.Phone = req.Phone
	}
	if req.OwnerID != nil {
		account.OwnerID = req.OwnerID
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return s.toResponse(account, false)
}

// Delete 删除客户, manager及以上; 存在关联联系人/商机/项目时拒绝
func (s *accountService) Delete(session *auth.Session, id int64) error {
	if session == nil {
		return pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return pkgErrors.ErrForbidden
	}

	counts, err := s.accountRepo.CountRelations(id)
	if err != nil {
		return err
	}
	if counts.Contacts > 0 || counts.Cases > 0 || counts.Projects > 0 {
		return pkgErrors.ErrAccountHasRelations
	}

	if err := s.accountRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("删除客户", zap.Int64("account_id", id), zap.Int64("operator", session.UserID))
	return nil
}

func (s *accountService) List(session *auth.Session, query *dto.AccountListQuery) ([]*dto.AccountResponse, int64, error) {
	if session == nil {
		return nil, 0, pkgErrors.ErrUnauthorized
	}

	accounts, total, err := s.accountRepo.List(query.GetPage(), query.GetPageSize(), query.Keyword, nil)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp, err := s.toResponse(account, false)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, resp)
	}
	return items, total, nil
}

func (s *accountService) toResponse(account *model.Account, withCounts bool) (*dto.AccountResponse, error) {
	resp := &dto.AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Industry:  account.Industry,
		Website:   account.Website,
		Phone:     account.Phone,
		CreatedAt: formatTime(account.CreatedAt),
		UpdatedAt: formatTime(account.UpdatedAt),
	}

	if account.Owner != nil {
		resp.Owner = toUserSimple(account.Owner)
	} else if account.OwnerID != nil {
		owner, err := s.userRepo.FindByID(*account.OwnerID)
		if err == nil {
			resp.Owner = toUserSimple(owner)
		} else if err != pkgErrors.ErrRecordNotFound {
			return nil, err
		}
	}

	if withCounts {
		counts, err := s.accountRepo.CountRelations(account.ID)
		if err != nil {
			return nil, err
		}
		resp.Counts = lo.ToPtr(dto.AccountCounts{
			Contacts: counts.Contacts,
			Cases:    counts.Cases,
			Projects: counts.Projects,
		})
	}

	return resp, nil
}
