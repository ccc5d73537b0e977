package step

import (
	"context"

	"terminal-terrace/course-platform/internal/model/course"

	"gorm.io/gorm"
)

type StepRepository struct {
	db *gorm.DB
}

func NewStepRepository(db *gorm.DB) *StepRepository {
	return &StepRepository{db: db}
}

// FindLesson 查询课时并预加载课程
func (r *StepRepository) FindLesson(ctx context.Context, lessonID uint) (*course.Lesson, error) {
	var l course.Lesson
	if err := r.db.WithContext(ctx).Preload("Course").First(&l, lessonID).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// FindByID 查询步骤并预加载课时与课程
func (r *StepRepository) FindByID(ctx context.Context, id uint) (*course.Step, error) {
	var s course.Step
	if err := r.db.WithContext(ctx).Preload("Lesson.Course").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StepRepository) ListByLesson(ctx context.Context, lessonID uint) ([]course.Step, error) {
	var steps []course.Step
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("order_number ASC").
		Find(&steps).Error
	return steps, err
}

func (r *StepRepository) Create(ctx context.Context, s *course.Step) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StepRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&course.Step{}).Where("id = ?", id).Updates(fields).Error
}

func (r *StepRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&course.Step{}, id).Error
}
