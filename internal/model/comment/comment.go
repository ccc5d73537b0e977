// Package comment 评论与点赞/点踩模型
package comment

import (
	"time"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/user"
)

// DeletedPlaceholder 软删除后的评论内容
const DeletedPlaceholder = "该评论已被删除"

// Status 评论生命周期
type Status string

const (
	StatusActive  Status = "active"
	StatusEdited  Status = "edited"
	StatusDeleted Status = "deleted"
)

// Comment 步骤评论
// 只有一层回复：回复的 parent_id 总是指向顶级评论
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StepID    uint      `gorm:"not null;index;comment:步骤ID" json:"step_id"`
	CourseID  uint      `gorm:"not null;index;comment:课程ID（冗余，便于按课程查询）" json:"course_id"`
	UserID    uint      `gorm:"not null;index;comment:作者ID" json:"user_id"`
	ParentID  *uint     `gorm:"index;comment:顶级评论ID，NULL表示顶级评论" json:"parent_id,omitempty"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	Status    Status    `gorm:"type:varchar(10);not null;index;comment:active/edited/deleted" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Step   *course.Step   `gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE" json:"-"`
	Course *course.Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	User   *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Parent *Comment       `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) IsDeleted() bool {
	return c.Status == StatusDeleted
}

func (c *Comment) IsEdited() bool {
	return c.Status == StatusEdited
}

// Reaction 点赞/点踩，每个用户对每条评论至多一条
type Reaction struct {
	CommentID uint      `gorm:"primaryKey;autoIncrement:false;comment:评论ID" json:"comment_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index;comment:用户ID" json:"user_id"`
	IsLike    bool      `gorm:"not null;comment:true 点赞 false 点踩" json:"is_like"`
	CreatedAt time.Time `json:"created_at"`

	Comment *Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	User    *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Reaction) TableName() string {
	return "comment_reactions"
}
