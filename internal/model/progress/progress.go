// Package progress 学习进度模型
package progress

import (
	"time"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/user"

	"github.com/shopspring/decimal"
)

// UserCourseProgress 用户课程进度（由课时完成记录汇总得出）
type UserCourseProgress struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"not null;uniqueIndex:idx_progress_user_course;comment:用户ID" json:"user_id"`
	CourseID           uint            `gorm:"not null;uniqueIndex:idx_progress_user_course;comment:课程ID" json:"course_id"`
	CurrentLessonID    *uint           `gorm:"comment:最近学习的课时" json:"current_lesson_id"`
	ProgressPercentage decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;comment:完成百分比" json:"progress_percentage"`
	IsCompleted        bool            `gorm:"not null;default:false" json:"is_completed"`
	LastAccessed       time.Time       `gorm:"not null" json:"last_accessed"`

	User          *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Course        *course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	CurrentLesson *course.Lesson `gorm:"foreignKey:CurrentLessonID;constraint:OnDelete:SET NULL" json:"-"`
}

func (UserCourseProgress) TableName() string {
	return "user_course_progress"
}

// UserLessonCompletion 课时完成记录，(user_id, lesson_id) 唯一
type UserLessonCompletion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_completion_user_lesson;comment:用户ID" json:"user_id"`
	LessonID    uint      `gorm:"not null;uniqueIndex:idx_completion_user_lesson;comment:课时ID" json:"lesson_id"`
	CourseID    uint      `gorm:"not null;index;comment:课程ID" json:"course_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`

	User   *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Lesson *course.Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
	Course *course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserLessonCompletion) TableName() string {
	return "user_lesson_completions"
}
