package course

import (
	"context"
	"strings"

	"terminal-terrace/course-platform/internal/model/course"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CourseFilter 列表过滤条件，零值字段不参与过滤
type CourseFilter struct {
	Search        string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	AuthorID      uint
	PublishedOnly bool
	Offset        int
	Limit         int
}

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// selectWithStats 附带作者名与课时数
func (r *CourseRepository) selectWithStats(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("courses").
		Select(`courses.id, courses.title, courses.description, courses.price, courses.is_published,
			courses.author_id, courses.created_at, courses.updated_at,
			users.username AS author_name,
			(SELECT COUNT(*) FROM lessons WHERE lessons.course_id = courses.id) AS lessons_count`).
		Joins("LEFT JOIN users ON users.id = courses.author_id")
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*course.Course, error) {
	var c course.Course
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindResponseByID 查询单个课程及统计信息
func (r *CourseRepository) FindResponseByID(ctx context.Context, id uint) (*CourseResponse, error) {
	var resp CourseResponse
	err := r.selectWithStats(ctx).Where("courses.id = ?", id).Take(&resp).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindResponsesByIDs 按给定 ID 查询课程
func (r *CourseRepository) FindResponsesByIDs(ctx context.Context, ids []uint) ([]CourseResponse, error) {
	items := make([]CourseResponse, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.selectWithStats(ctx).
		Where("courses.id IN ?", ids).
		Order("courses.id ASC").
		Scan(&items).Error
	return items, err
}

// List 按过滤条件分页查询，返回当前页与总数
func (r *CourseRepository) List(ctx context.Context, f CourseFilter) ([]CourseResponse, int64, error) {
	apply := func(q *gorm.DB) *gorm.DB {
		if f.PublishedOnly {
			q = q.Where("courses.is_published = ?", true)
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			q = q.Where("LOWER(courses.title) LIKE ?", "%"+strings.ToLower(s)+"%")
		}
		if f.MinPrice != nil {
			q = q.Where("courses.price >= ?", *f.MinPrice)
		}
		if f.MaxPrice != nil {
			q = q.Where("courses.price <= ?", *f.MaxPrice)
		}
		if f.AuthorID != 0 {
			q = q.Where("courses.author_id = ?", f.AuthorID)
		}
		return q
	}

	var total int64
	if err := apply(r.db.WithContext(ctx).Table("courses")).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]CourseResponse, 0)
	err := apply(r.selectWithStats(ctx)).
		Order("courses.created_at DESC, courses.id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *course.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&course.Course{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&course.Course{}, id).Error
}
