package step

import (
	"time"

	"terminal-terrace/course-platform/internal/model/course"

	"gorm.io/datatypes"
)

// CreateStepRequest 创建步骤
type CreateStepRequest struct {
	Title       string          `json:"title" binding:"required,max=120"`
	StepType    course.StepType `json:"step_type" binding:"required,oneof=text video quiz"`
	Content     string          `json:"content"`
	VideoURL    string          `json:"video_url" binding:"omitempty,url,max=500"`
	QuizData    datatypes.JSON  `json:"quiz_data"`
	OrderNumber int             `json:"order_number" binding:"required,min=1"`
}

// UpdateStepRequest 部分更新
type UpdateStepRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=120"`
	StepType    *course.StepType `json:"step_type" binding:"omitempty,oneof=text video quiz"`
	Content     *string          `json:"content"`
	VideoURL    *string          `json:"video_url" binding:"omitempty,max=500"`
	QuizData    datatypes.JSON   `json:"quiz_data"`
	OrderNumber *int             `json:"order_number" binding:"omitempty,min=1"`
}

// StepResponse 步骤内容
type StepResponse struct {
	ID          uint            `json:"id"`
	LessonID    uint            `json:"lesson_id"`
	Title       string          `json:"title"`
	StepType    course.StepType `json:"step_type"`
	Content     string          `json:"content,omitempty"`
	VideoURL    string          `json:"video_url,omitempty"`
	QuizData    datatypes.JSON  `json:"quiz_data,omitempty"`
	OrderNumber int             `json:"order_number"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func ToStepResponse(s *course.Step) StepResponse {
	return StepResponse{
		ID:          s.ID,
		LessonID:    s.LessonID,
		Title:       s.Title,
		StepType:    s.StepType,
		Content:     s.Content,
		VideoURL:    s.VideoURL,
		QuizData:    s.QuizData,
		OrderNumber: s.OrderNumber,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
