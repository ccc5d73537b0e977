package lesson

import (
	"time"

	"terminal-terrace/course-platform/internal/model/course"
)

// CreateLessonRequest 创建课时
type CreateLessonRequest struct {
	Title           string `json:"title" binding:"required,max=80"`
	DurationMinutes int    `json:"duration_minutes" binding:"min=0"`
	OrderNumber     int    `json:"order_number" binding:"required,min=1"`
	IsFree          bool   `json:"is_free"`
}

// UpdateLessonRequest 部分更新
type UpdateLessonRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=80"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=0"`
	OrderNumber     *int    `json:"order_number" binding:"omitempty,min=1"`
	IsFree          *bool   `json:"is_free"`
}

// LessonResponse 课时信息
type LessonResponse struct {
	ID              uint      `json:"id"`
	CourseID        uint      `json:"course_id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	OrderNumber     int       `json:"order_number"`
	IsFree          bool      `json:"is_free"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToLessonResponse(l *course.Lesson) LessonResponse {
	return LessonResponse{
		ID:              l.ID,
		CourseID:        l.CourseID,
		Title:           l.Title,
		DurationMinutes: l.DurationMinutes,
		OrderNumber:     l.OrderNumber,
		IsFree:          l.IsFree,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
