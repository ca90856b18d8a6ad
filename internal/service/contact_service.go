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

type ContactService interface {
	Create(session *auth.Session, req *dto.ContactCreateRequest) (*dto.ContactResponse, error)
	Get(session *auth.Session, id int64) (*dto.ContactResponse, error)
	Update(session *auth.Session, id int64, req *dto.ContactUpdateRequest) (*dto.ContactResponse, error)
	Delete(session *auth.Session, id int64) error
	List(session *auth.Session, query *dto.ContactListQuery) ([]*dto.ContactResponse, int64, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
	accountRepo repository.AccountRepository
}

func NewContactService(contactRepo repository.ContactRepository, accountRepo repository.AccountRepository) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		accountRepo: accountRepo,
	}
}

// Create 创建联系人, member及以上; account_id 必须指向存在的客户
func (s *contactService) Create(session *auth.Session, req *dto.ContactCreateRequest) (*dto.ContactResponse, error) {
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

	ownerID := session.UserID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	contact := &model.Contact{
		AccountID: req.AccountID,
		OwnerID:   &ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	if err := s.contactRepo.Create(contact); err != nil {
		return nil, err
	}

	logger.Info("创建联系人", zap.Int64("contact_id", contact.ID), zap.Int64("operator", session.UserID))
	return s.toResponse(contact), nil
}

func (s *contactService) Get(session *auth.Session, id int64) (*dto.ContactResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}

	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(contact), nil
}

func (s *contactService) Update(session *auth.Session, id int64, req *dto.ContactUpdateRequest) (*dto.ContactResponse, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleMember) {
		return nil, pkgErrors.ErrForbidden
	}

	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByID(*req.AccountID); err != nil {
			return nil, err
		}
		contact.AccountID = req.AccountID
		contact.Account = nil
	}
	if req.OwnerID != nil {
		contact.OwnerID = req.OwnerID
	}
	if req.FirstName != nil {
		contact.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		contact.LastName = *req.LastName
	}
	if req.Email != nil {
		contact.Email = req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}

	if err := s.contactRepo.Update(contact); err != nil {
		return nil, err
	}

	// 重新加载以带出客户信息
	updated, err := s.contactRepo.FindByID(contact.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(updated), nil
}

func (s *contactService) Delete(session *auth.Session, id int64) error {
	if session == nil {
		return pkgErrors.ErrUnauthorized
	}
	if !auth.HasAtLeast(session, auth.RoleManager) {
		return pkgErrors.ErrForbidden
	}

	if err := s.contactRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("删除联系人", zap.Int64("contact_id", id), zap.Int64("operator", session.UserID))
	return nil
}

func (s *contactService) List(session *auth.Session, query *dto.ContactListQuery) ([]*dto.ContactResponse, int64, error) {
	if session == nil {
		return nil, 0, pkgErrors.ErrUnauthorized
	}

	contacts, total, err := s.contactRepo.List(query.GetPage(), query.GetPageSize(), query.Keyword, query.AccountID)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, s.toResponse(contact))
	}
	return items, total, nil
}

func (s *contactService) toResponse(contact *model.Contact) *dto.ContactResponse {
	resp := &dto.ContactResponse{
		ID:        contact.ID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Account:   toAccountRef(contact.Account),
		Owner:     toUserSimple(contact.Owner),
		CreatedAt: formatTime(contact.CreatedAt),
		UpdatedAt: formatTime(contact.UpdatedAt),
	}
	return resp
}
