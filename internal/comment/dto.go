package comment

import (
	"time"

	"terminal-terrace/course-platform/internal/model/comment"
)

// CreateCommentRequest 发表评论或回复
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=3000"`
}

// UpdateCommentRequest 编辑评论，nil 字段不修改
type UpdateCommentRequest struct {
	Content *string `json:"content" binding:"omitempty,min=1,max=3000"`
}

// AuthorInfo 评论作者
type AuthorInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// CommentFullResponse 评论及其统计信息，树形结构中 Children 为回复
type CommentFullResponse struct {
	ID             uint                   `json:"id"`
	Content        string                 `json:"content"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Author         AuthorInfo             `json:"author"`
	IsDeleted      bool                   `json:"is_deleted"`
	IsEdited       bool                   `json:"is_edited"`
	Status         comment.Status         `json:"status"`
	ParentID       *uint                  `json:"parent_id"`
	StepID         uint                   `json:"step_id"`
	StepTitle      string                 `json:"step_title"`
	LikesCount     int64                  `json:"likes_count"`
	DislikesCount  int64                  `json:"dislikes_count"`
	IsLikedByMe    bool                   `json:"is_liked_by_me"`
	IsDislikedByMe bool                   `json:"is_disliked_by_me"`
	Children       []*CommentFullResponse `json:"children"`
}

// commentRow 查询结果行
type commentRow struct {
	ID             uint
	StepID         uint
	UserID         uint
	ParentID       *uint
	Content        string
	Status         comment.Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string
	StepTitle      string
	LikesCount     int64
	DislikesCount  int64
	IsLikedByMe    bool
	IsDislikedByMe bool
}

func (r *commentRow) toResponse() *CommentFullResponse {
	return &CommentFullResponse{
		ID:             r.ID,
		Content:        r.Content,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
		Author:         AuthorInfo{ID: r.UserID, Username: r.Username},
		IsDeleted:      r.Status == comment.StatusDeleted,
		IsEdited:       r.Status == comment.StatusEdited,
		Status:         r.Status,
		ParentID:       r.ParentID,
		StepID:         r.StepID,
		StepTitle:      r.StepTitle,
		LikesCount:     r.LikesCount,
		DislikesCount:  r.DislikesCount,
		IsLikedByMe:    r.IsLikedByMe,
		IsDislikedByMe: r.IsDislikedByMe,
		Children:       []*CommentFullResponse{},
	}
}
