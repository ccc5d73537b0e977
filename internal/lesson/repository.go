package lesson

import (
	"context"

	"terminal-terrace/course-platform/internal/model/course"

	"gorm.io/gorm"
)

type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

func (r *LessonRepository) FindCourse(ctx context.Context, courseID uint) (*course.Course, error) {
	var c course.Course
	if err := r.db.WithContext(ctx).First(&c, courseID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByID 查询课时并预加载所属课程
func (r *LessonRepository) FindByID(ctx context.Context, id uint) (*course.Lesson, error) {
	var l course.Lesson
	if err := r.db.WithContext(ctx).Preload("Course").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByCourse 按序号升序
func (r *LessonRepository) ListByCourse(ctx context.Context, courseID uint) ([]course.Lesson, error) {
	var lessons []course.Lesson
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_number ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Create(ctx context.Context, l *course.Lesson) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LessonRepository) Updates(ctx context.Context, l *course.Lesson, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(l).Updates(fields).Error
}

func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&course.Lesson{}, id).Error
}
