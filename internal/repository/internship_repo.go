package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Hari-r31/internship-platform/internal/model"
)

// InternshipFilter 岗位列表过滤条件
type InternshipFilter struct {
	Location         string           // 精确匹配
	LocationContains string           // 包含匹配（忽略大小写）
	StipendGTE       *decimal.Decimal // 闭区间下界；stipend 为 NULL 的记录不参与区间过滤
	StipendLTE       *decimal.Decimal // 闭区间上界
	InternshipType   string
	PostedAfter      *time.Time
	PostedBefore     *time.Time
	Search           string // 标题/描述/地点/公司/类型 全文模糊
	Ordering         string // posted_on | -posted_on | stipend | -stipend，默认 -posted_on
}

// InternshipRepository 实习岗位数据访问接口
// 变更方法同时接收日志条目，实体写入与日志追加在同一事务内提交
type InternshipRepository interface {
	Create(ctx context.Context, internship *model.Internship, entry *model.ActivityLog) error
	GetByID(ctx context.Context, id string) (*model.Internship, error)
	List(ctx context.Context, filter *InternshipFilter, offset, limit int) ([]model.Internship, int64, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]model.Internship, error)
	Update(ctx context.Context, internship *model.Internship, entry *model.ActivityLog) error
	// Delete 删除岗位；申请、收藏、评价由外键级联清除
	Delete(ctx context.Context, id string, entry *model.ActivityLog) error
}

// internshipRepo InternshipRepository 的 GORM 实现
type internshipRepo struct {
	db *gorm.DB
}

// NewInternshipRepo 创建 InternshipRepository 实例
func NewInternshipRepo(db *gorm.DB) InternshipRepository {
	return &internshipRepo{db: db}
}

func (r *internshipRepo) Create(ctx context.Context, internship *model.Internship, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(internship).Error; err != nil {
			return err
		}
		// 主键由数据库生成，落库后补全日志关联 ID
		entry.RelatedObjectID = &internship.InternshipID
		return appendLog(tx, entry)
	})
}

func (r *internshipRepo) GetByID(ctx context.Context, id string) (*model.Internship, error) {
	var internship model.Internship
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", id).
		First(&internship).Error
	if err != nil {
		return nil, err
	}
	return &internship, nil
}

func (r *internshipRepo) List(ctx context.Context, filter *InternshipFilter, offset, limit int) ([]model.Internship, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Internship{})

	ordering := "-posted_on"
	if filter != nil {
		if filter.Location != "" {
			db = db.Where("location = ?", filter.Location)
		}
		if filter.LocationContains != "" {
			db = db.Where("location ILIKE ?", "%"+filter.LocationContains+"%")
		}
		if filter.StipendGTE != nil {
			db = db.Where("stipend >= ?", *filter.StipendGTE)
		}
		if filter.StipendLTE != nil {
			db = db.Where("stipend <= ?", *filter.StipendLTE)
		}
		if filter.InternshipType != "" {
			db = db.Where("internship_type = ?", filter.InternshipType)
		}
		if filter.PostedAfter != nil {
			db = db.Where("posted_on >= ?", *filter.PostedAfter)
		}
		if filter.PostedBefore != nil {
			db = db.Where("posted_on <= ?", *filter.PostedBefore)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			db = db.Where(
				"title ILIKE ? OR description ILIKE ? OR location ILIKE ? OR company ILIKE ? OR internship_type ILIKE ?",
				like, like, like, like, like,
			)
		}
		if filter.Ordering != "" {
			ordering = filter.Ordering
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var order string
	switch ordering {
	case "posted_on":
		order = "posted_on ASC"
	case "stipend":
		order = "stipend ASC NULLS LAST"
	case "-stipend":
		order = "stipend DESC NULLS LAST"
	default:
		order = "posted_on DESC"
	}

	var internships []model.Internship
	if err := db.Order(order).
		Offset(offset).Limit(limit).
		Find(&internships).Error; err != nil {
		return nil, 0, err
	}

	return internships, total, nil
}

func (r *internshipRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]model.Internship, error) {
	var internships []model.Internship
	err := r.db.WithContext(ctx).
		Where("recruiter_id = ?", recruiterID).
		Order("posted_on DESC").
		Find(&internships).Error
	if err != nil {
		return nil, err
	}
	return internships, nil
}

func (r *internshipRepo) Update(ctx context.Context, internship *model.Internship, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(internship).Error; err != nil {
			return err
		}
		return appendLog(tx, entry)
	})
}

func (r *internshipRepo) Delete(ctx context.Context, id string, entry *model.ActivityLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("internship_id = ?", id).Delete(&model.Internship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return appendLog(tx, entry)
	})
}
