package service

import (
	"crypto/tls"
	"fmt"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"crm-service/internal/pkg/config"
	"crm-service/internal/pkg/logger"
	pkgErrors "crm-service/pkg/errors"
)

// LDAPUser LDAP用户信息
type LDAPUser struct {
	DN          string
	Email       string
	DisplayName string
}

// LDAPService LDAP认证
type LDAPService interface {
	Authenticate(email, password string) (*LDAPUser, error)
}

type ldapService struct{}

func NewLDAPService() LDAPService {
	return &ldapService{}
}

// Authenticate 先以服务账号查询用户DN, 再以用户凭据Bind验证密码
func (s *ldapService) Authenticate(email, password string) (*LDAPUser, error) {
	cfg := config.GlobalConfig.Auth.LDAP
	if !cfg.Enabled {
		return nil, pkgErrors.New(pkgErrors.CodeAuthError, "LDAP认证未启用")
	}

	conn, err := s.connect(&cfg)
	if err != nil {
		logger.Error("LDAP连接失败", zap.Error(err))
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP连接失败", err)
	}
	defer conn.Close()

	if err := conn.Bind(cfg.BindDN, cfg.BindPassword); err != nil {
		logger.Error("LDAP服务账号绑定失败", zap.Error(err))
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP绑定失败", err)
	}

	searchRequest := ldap.NewSearchRequest(
		cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		fmt.Sprintf(cfg.UserFilter, ldap.EscapeFilter(email)),
		[]string{"dn", cfg.Attributes.Email, cfg.Attributes.DisplayName},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP查询失败", err)
	}
	if len(result.Entries) != 1 {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	entry := result.Entries[0]
	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return &LDAPUser{
		DN:          entry.DN,
		Email:       entry.GetAttributeValue(cfg.Attributes.Email),
		DisplayName: entry.GetAttributeValue(cfg.Attributes.DisplayName),
	}, nil
}

func (s *ldapService) connect(cfg *config.LDAPConfig) (*ldap.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	if cfg.UseSSL {
		return ldap.DialTLS("tcp", addr, &tls.Config{ServerName: cfg.Host})
	}
	return ldap.Dial("tcp", addr)
}
