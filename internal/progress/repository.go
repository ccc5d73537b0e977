package progress

import (
	"context"
	"time"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/progress"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var hundred = decimal.NewFromInt(100)

// completionPercentage 完成数 / 课时数 * 100，四舍五入到两位小数
func completionPercentage(completed, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(completed).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2)
}

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) FindCourse(ctx context.Context, courseID uint) (*course.Course, error) {
	var c course.Course
	if err := r.db.WithContext(ctx).First(&c, courseID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ProgressRepository) LessonInCourse(ctx context.Context, lessonID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&course.Lesson{}).
		Where("id = ? AND course_id = ?", lessonID, courseID).
		Count(&count).Error
	return count > 0, err
}

// Complete 记录课时完成（重复完成忽略）并重算课程进度
func (r *ProgressRepository) Complete(ctx context.Context, userID, courseID, lessonID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		completion := &progress.UserLessonCompletion{
			UserID:      userID,
			LessonID:    lessonID,
			CourseID:    courseID,
			CompletedAt: time.Now(),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoNothing: true,
		}).Create(completion).Error
		if err != nil {
			return err
		}
		return recompute(tx, userID, courseID, lessonID)
	})
}

// Uncomplete 删除课时完成记录并重算课程进度
func (r *ProgressRepository) Uncomplete(ctx context.Context, userID, courseID, lessonID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
			Delete(&progress.UserLessonCompletion{}).Error
		if err != nil {
			return err
		}
		return recompute(tx, userID, courseID, lessonID)
	})
}

// recompute 按课程当前课时数重新计算进度并写入 (user_id, course_id)
func recompute(tx *gorm.DB, userID, courseID, lessonID uint) error {
	var total int64
	if err := tx.Model(&course.Lesson{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return err
	}

	var completed int64
	err := tx.Model(&progress.UserLessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Distinct("lesson_id").
		Count(&completed).Error
	if err != nil {
		return err
	}

	pct := completionPercentage(completed, total)
	current := lessonID
	row := &progress.UserCourseProgress{
		UserID:             userID,
		CourseID:           courseID,
		CurrentLessonID:    &current,
		ProgressPercentage: pct,
		IsCompleted:        pct.GreaterThanOrEqual(hundred),
		LastAccessed:       time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_lesson_id", "progress_percentage", "is_completed", "last_accessed"}),
	}).Create(row).Error
}

func (r *ProgressRepository) rows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("user_course_progress").
		Select("user_course_progress.course_id, courses.title AS course_title, " +
			"user_course_progress.current_lesson_id, user_course_progress.progress_percentage, " +
			"user_course_progress.is_completed, user_course_progress.last_accessed").
		Joins("JOIN courses ON courses.id = user_course_progress.course_id")
}

// ListByUser 最近学习的在前
func (r *ProgressRepository) ListByUser(ctx context.Context, userID uint) ([]progressRow, error) {
	var rows []progressRow
	err := r.rows(ctx).
		Where("user_course_progress.user_id = ?", userID).
		Order("user_course_progress.last_accessed DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ProgressRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*progressRow, error) {
	var row progressRow
	err := r.rows(ctx).
		Where("user_course_progress.user_id = ? AND user_course_progress.course_id = ?", userID, courseID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CompletedLessons 用户已完成的课时，按课程分组
func (r *ProgressRepository) CompletedLessons(ctx context.Context, userID uint, courseIDs ...uint) (map[uint][]uint, error) {
	var completions []progress.UserLessonCompletion
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(courseIDs) > 0 {
		q = q.Where("course_id IN ?", courseIDs)
	}
	if err := q.Order("lesson_id ASC").Find(&completions).Error; err != nil {
		return nil, err
	}

	byCourse := make(map[uint][]uint)
	for _, c := range completions {
		byCourse[c.CourseID] = append(byCourse[c.CourseID], c.LessonID)
	}
	return byCourse, nil
}
