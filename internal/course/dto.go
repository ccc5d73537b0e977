package course

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCourseRequest 创建课程
type CreateCourseRequest struct {
	Title       string          `json:"title" binding:"required,max=130"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateCourseRequest 部分更新，nil 字段不修改
type UpdateCourseRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=130"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// ListCoursesQuery 课程列表查询参数
type ListCoursesQuery struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Search   string `form:"search"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	AuthorID uint   `form:"author_id"`
}

// CourseResponse 课程信息
type CourseResponse struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	IsPublished  bool            `json:"is_published"`
	AuthorID     uint            `json:"author_id"`
	AuthorName   string          `json:"author_name"`
	LessonsCount int64           `json:"lessons_count"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListCoursesResponse 分页结果
type ListCoursesResponse struct {
	Items   []CourseResponse `json:"items"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
	Total   int64            `json:"total"`
}
