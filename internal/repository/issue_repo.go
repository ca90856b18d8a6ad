package repository

import (
	"gorm.io/gorm"

	"crm-service/internal/model"
	pkgErrors "crm-service/pkg/errors"
)

type IssueListFilter struct {
	Status   *string
	Priority *string
	Type     *string
	EpicID   *int64
	SprintID *int64
	Keyword  string
}

type IssueRepository interface {
	Create(issue *model.Issue) error
	FindByID(id int64) (*model.Issue, error)
	Update(issue *model.Issue) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	List(projectID int64, page, pageSize int, filter *IssueListFilter) ([]*model.Issue, int64, error)
	ReplaceAssignees(issueID int64, userIDs []int64) error
	CountGroupByEpic(projectID int64) (map[int64]int64, error)
	CountGroupBySprint(projectID int64) (map[int64]int64, error)
}

type issueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

func (r *issueRepository) Create(issue *model.Issue) error {
	if err := r.db.Create(issue).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "创建事项失败", err)
	}
	return nil
}

func (r *issueRepository) FindByID(id int64) (*model.Issue, error) {
	var issue model.Issue
	err := r.db.Preload("Assignees").Preload("Assignees.User").First(&issue, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgErrors.ErrRecordNotFound
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询事项失败", err)
	}
	return &issue, nil
}

func (r *issueRepository) Update(issue *model.Issue) error {
	if err := r.db.Save(issue).Error; err != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新事项失败", err)
	}
	return nil
}

func (r *issueRepository) UpdateStatus(id int64, status string) error {
	result := r.db.Model(&model.Issue{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新事项状态失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *issueRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Issue{}, id)
	if result.Error != nil {
		return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "删除事项失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgErrors.ErrRecordNotFound
	}
	return nil
}

func (r *issueRepository) List(projectID int64, page, pageSize int, filter *IssueListFilter) ([]*model.Issue, int64, error) {
	var issues []*model.Issue
	var total int64

	query := r.db.Model(&model.Issue{}).Where("project_id = ?", projectID)
	if filter != nil {
		if filter.Keyword != "" {
			query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.Priority != nil {
			query = query.Where("priority = ?", *filter.Priority)
		}
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
		if filter.EpicID != nil {
			query = query.Where("epic_id = ?", *filter.EpicID)
		}
		if filter.SprintID != nil {
			query = query.Where("sprint_id = ?", *filter.SprintID)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计事项失败", err)
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Assignees").Preload("Assignees.User").
		Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&issues).Error; err != nil {
		return nil, 0, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "查询事项失败", err)
	}

	return issues, total, nil
}

// ReplaceAssignees 全量替换经办人
func (r *issueRepository) ReplaceAssignees(issueID int64, userIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", issueID).Delete(&model.IssueAssignee{}).Error; err != nil {
			return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新经办人失败", err)
		}
		for _, userID := range userIDs {
			assignee := &model.IssueAssignee{IssueID: issueID, UserID: userID}
			if err := tx.Create(assignee).Error; err != nil {
				if isDuplicateKeyError(err) {
					continue
				}
				return pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "更新经办人失败", err)
			}
		}
		return nil
	})
}

type groupCount struct {
	GroupID int64 `gorm:"column:group_id"`
	Total   int64 `gorm:"column:total"`
}

func (r *issueRepository) CountGroupByEpic(projectID int64) (map[int64]int64, error) {
	var rows []groupCount
	err := r.db.Model(&model.Issue{}).
		Select("epic_id AS group_id, COUNT(*) AS total").
		Where("project_id = ? AND epic_id IS NOT NULL", projectID).
		Group("epic_id").Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计史诗事项失败", err)
	}
	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupID] = row.Total
	}
	return counts, nil
}

func (r *issueRepository) CountGroupBySprint(projectID int64) (map[int64]int64, error) {
	var rows []groupCount
	err := r.db.Model(&model.Issue{}).
		Select("sprint_id AS group_id, COUNT(*) AS total").
		Where("project_id = ? AND sprint_id IS NOT NULL", projectID).
		Group("sprint_id").Scan(&rows).Error
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeDatabaseError, "统计迭代事项失败", err)
	}
	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupID] = row.Total
	}
	return counts, nil
}
