// Package course 课程、课时、步骤模型
package course

import (
	"time"

	"terminal-terrace/course-platform/internal/model/user"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Course 课程
// 删除课程会级联删除课时、步骤、评论、购买记录与学习进度
type Course struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"type:varchar(130);not null;comment:课程标题" json:"title"`
	Description string          `gorm:"type:text;comment:课程描述" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;comment:价格" json:"price"`
	IsPublished bool            `gorm:"not null;default:false;index;comment:是否发布" json:"is_published"`
	AuthorID    uint            `gorm:"not null;index;comment:作者ID" json:"author_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Author  *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Lessons []Lesson   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// Lesson 课时，在课程内按 order_number 排序
type Lesson struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CourseID        uint      `gorm:"not null;uniqueIndex:idx_lesson_course_order;comment:课程ID" json:"course_id"`
	Title           string    `gorm:"type:varchar(80);not null;comment:课时标题" json:"title"`
	DurationMinutes int       `gorm:"not null;default:0;comment:时长（分钟）" json:"duration_minutes"`
	OrderNumber     int       `gorm:"not null;uniqueIndex:idx_lesson_course_order;comment:序号" json:"order_number"`
	IsFree          bool      `gorm:"not null;default:false;comment:是否免费试看" json:"is_free"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"-"`
	Steps  []Step  `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// StepType 步骤类型
type StepType string

const (
	StepTypeText  StepType = "text"
	StepTypeVideo StepType = "video"
	StepTypeQuiz  StepType = "quiz"
)

// Step 步骤，在课时内按 order_number 排序
// 三种内容字段按类型填写，数据库层不做互斥校验
type Step struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	LessonID    uint           `gorm:"not null;uniqueIndex:idx_step_lesson_order;comment:课时ID" json:"lesson_id"`
	Title       string         `gorm:"type:varchar(120);not null;comment:步骤标题" json:"title"`
	StepType    StepType       `gorm:"type:varchar(10);not null;comment:text/video/quiz" json:"step_type"`
	Content     string         `gorm:"type:text;comment:文本内容" json:"content"`
	VideoURL    string         `gorm:"type:varchar(500);comment:视频地址" json:"video_url"`
	QuizData    datatypes.JSON `gorm:"comment:测验数据" json:"quiz_data"`
	OrderNumber int            `gorm:"not null;uniqueIndex:idx_step_lesson_order;comment:序号" json:"order_number"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Lesson *Lesson `gorm:"foreignKey:LessonID" json:"-"`
}

func (Step) TableName() string {
	return "steps"
}
