package service

import (
	"time"

	"gorm.io/datatypes"

	"crm-service/internal/dto"
	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

const dateLayout = "2006-01-02"

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

// parseDate 解析 YYYY-MM-DD 日期
func parseDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "日期格式错误, 期望 YYYY-MM-DD", err)
	}
	d := datatypes.Date(t)
	return &d, nil
}

// parseDueDate 解析截止时间, 兼容 RFC3339 与 YYYY-MM-DD
func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeBadRequest, "日期格式错误", err)
	}
	return &t, nil
}

func toUserSimple(u *model.User) *dto.UserSimpleResponse {
	if u == nil {
		return nil
	}
	return &dto.UserSimpleResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

func toAccountRef(a *model.Account) *dto.AccountRef {
	if a == nil {
		return nil
	}
	return &dto.AccountRef{
		ID:   a.ID,
		Name: a.Name,
	}
}

func toContactRef(c *model.Contact) *dto.ContactRef {
	if c == nil {
		return nil
	}
	return &dto.ContactRef{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
	}
}
