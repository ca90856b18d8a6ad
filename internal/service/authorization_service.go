package service

import (
	"github.com/samber/lo"

	"crm-service/internal/model"
	"crm-service/internal/pkg/auth"
	"crm-service/internal/repository"
	pkgErrors "crm-service/pkg/errors"
)

// AuthorizationService 项目可见性判定
// 可见 = 成员关系 ∪ 项目归属, 系统角色不参与判定, admin 没有隐式旁路
type AuthorizationService interface {
	VisibleProjectIDs(userID int64) ([]int64, error)
	AssertProjectAccess(session *auth.Session, projectID int64) (*model.Project, error)
	CanAccessCaseViaAccount(userID int64, c *model.Case) (bool, error)
}

type authorizationService struct {
	projectRepo repository.ProjectRepository
	memberRepo  repository.ProjectMemberRepository
}

func NewAuthorizationService(
	projectRepo repository.ProjectRepository,
	memberRepo repository.ProjectMemberRepository,
) AuthorizationService {
	return &authorizationService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
	}
}

// VisibleProjectIDs 成员项目与归属项目的并集, 去重
func (s *authorizationService) VisibleProjectIDs(userID int64) ([]int64, error) {
	memberIDs, err := s.memberRepo.ListProjectIDsByUser(userID)
	if err != nil {
		return nil, err
	}
	ownedIDs, err := s.projectRepo.ListOwnedIDs(userID)
	if err != nil {
		return nil, err
	}
	return lo.Uniq(append(memberIDs, ownedIDs...)), nil
}

// AssertProjectAccess 项目访问守卫
// 无会话返回401; 项目不存在返回404; 存在但不可见返回403
func (s *authorizationService) AssertProjectAccess(session *auth.Session, projectID int64) (*model.Project, error) {
	if session == nil {
		return nil, pkgErrors.ErrUnauthorized
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	if project.OwnerID != nil && *project.OwnerID == session.UserID {
		return project, nil
	}

	_, err = s.memberRepo.FindByProjectAndUser(projectID, session.UserID)
	if err != nil {
		if err == pkgErrors.ErrRecordNotFound {
			return nil, pkgErrors.ErrForbidden
		}
		return nil, err
	}

	return project, nil
}

// CanAccessCaseViaAccount 商机访问判定: 已链接项目可见, 或为其客户名下任一项目的成员
// 商机负责人身份本身不构成授权; 桥接仅用于商机读取/转换入口, 不扩散到其它资源
func (s *authorizationService) CanAccessCaseViaAccount(userID int64, c *model.Case) (bool, error) {
	if c == nil {
		return false, nil
	}
	if c.ProjectID != nil {
		project, err := s.projectRepo.FindByID(*c.ProjectID)
		if err == nil {
			if project.OwnerID != nil && *project.OwnerID == userID {
				return true, nil
			}
			if _, err := s.memberRepo.FindByProjectAndUser(project.ID, userID); err == nil {
				return true, nil
			}
		} else if err != pkgErrors.ErrRecordNotFound {
			return false, err
		}
	}
	if c.AccountID != nil {
		ok, err := s.memberRepo.ExistsByUserAndAccount(userID, *c.AccountID)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
