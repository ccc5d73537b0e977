package progress

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgressResponse 课程学习进度
type ProgressResponse struct {
	CourseID           uint            `json:"course_id"`
	CourseTitle        string          `json:"course_title"`
	CurrentLessonID    *uint           `json:"current_lesson_id"`
	CompletedLessons   []uint          `json:"completed_lessons"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	IsCompleted        bool            `json:"is_completed"`
	LastAccessed       *time.Time      `json:"last_accessed"`
}

// progressRow 进度与课程标题
type progressRow struct {
	CourseID           uint
	CourseTitle        string
	CurrentLessonID    *uint
	ProgressPercentage decimal.Decimal
	IsCompleted        bool
	LastAccessed       time.Time
}

func (r *progressRow) toResponse(completed []uint) ProgressResponse {
	if completed == nil {
		completed = []uint{}
	}
	lastAccessed := r.LastAccessed
	return ProgressResponse{
		CourseID:           r.CourseID,
		CourseTitle:        r.CourseTitle,
		CurrentLessonID:    r.CurrentLessonID,
		CompletedLessons:   completed,
		ProgressPercentage: r.ProgressPercentage,
		IsCompleted:        r.IsCompleted,
		LastAccessed:       &lastAccessed,
	}
}
