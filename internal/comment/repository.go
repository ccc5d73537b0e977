package comment

import (
	"context"

	"terminal-terrace/course-platform/internal/model/comment"
	"terminal-terrace/course-platform/internal/model/course"

	"gorm.io/gorm"
)

// 每行附带作者名、步骤标题、点赞/点踩数以及当前用户的反应
const commentRowSelect = `comments.id, comments.step_id, comments.user_id, comments.parent_id,
	comments.content, comments.status, comments.created_at, comments.updated_at,
	users.username AS username, steps.title AS step_title,
	(SELECT COUNT(*) FROM comment_reactions r WHERE r.comment_id = comments.id AND r.is_like = ?) AS likes_count,
	(SELECT COUNT(*) FROM comment_reactions r WHERE r.comment_id = comments.id AND r.is_like = ?) AS dislikes_count,
	EXISTS (SELECT 1 FROM comment_reactions r WHERE r.comment_id = comments.id AND r.user_id = ? AND r.is_like = ?) AS is_liked_by_me,
	EXISTS (SELECT 1 FROM comment_reactions r WHERE r.comment_id = comments.id AND r.user_id = ? AND r.is_like = ?) AS is_disliked_by_me`

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) rows(ctx context.Context, viewerID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments").
		Select(commentRowSelect, true, false, viewerID, true, viewerID, false).
		Joins("JOIN users ON users.id = comments.user_id").
		Joins("JOIN steps ON steps.id = comments.step_id")
}

// StepRows 步骤下的全部评论，按创建时间升序
func (r *CommentRepository) StepRows(ctx context.Context, stepID, viewerID uint) ([]commentRow, error) {
	var rows []commentRow
	err := r.rows(ctx, viewerID).
		Where("comments.step_id = ?", stepID).
		Order("comments.created_at ASC, comments.id ASC").
		Scan(&rows).Error
	return rows, err
}

// CourseRows 课程下未删除的评论，最新在前
func (r *CommentRepository) CourseRows(ctx context.Context, courseID, viewerID uint) ([]commentRow, error) {
	var rows []commentRow
	err := r.rows(ctx, viewerID).
		Where("comments.course_id = ? AND comments.status <> ?", courseID, comment.StatusDeleted).
		Order("comments.created_at DESC, comments.id DESC").
		Scan(&rows).Error
	return rows, err
}

// Row 单条评论
func (r *CommentRepository) Row(ctx context.Context, id, viewerID uint) (*commentRow, error) {
	var row commentRow
	if err := r.rows(ctx, viewerID).Where("comments.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*comment.Comment, error) {
	var c comment.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindStep 查询步骤并预加载课时与课程
func (r *CommentRepository) FindStep(ctx context.Context, stepID uint) (*course.Step, error) {
	var s course.Step
	if err := r.db.WithContext(ctx).Preload("Lesson.Course").First(&s, stepID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CommentRepository) FindCourse(ctx context.Context, courseID uint) (*course.Course, error) {
	var c course.Course
	if err := r.db.WithContext(ctx).First(&c, courseID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&comment.Comment{}).Where("id = ?", id).Updates(fields).Error
}
