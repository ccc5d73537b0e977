package comment

import (
	"context"
	"errors"

	"terminal-terrace/course-platform/internal/model/comment"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"gorm.io/gorm"
)

const errNotParticipant = "只有课程学员可以参与评论，请先购买课程"

type CommentService struct {
	repo       *CommentRepository
	permission *permission.PermissionService
	log        *logger.Logger
}

func NewCommentService(repo *CommentRepository, perm *permission.PermissionService, log *logger.Logger) *CommentService {
	return &CommentService{repo: repo, permission: perm, log: log}
}

func (s *CommentService) findComment(ctx context.Context, id uint) (*comment.Comment, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("评论不存在")
		}
		return nil, err
	}
	return c, nil
}

// checkStep 步骤存在且当前用户有访问权，返回步骤所属课程 ID
func (s *CommentService) checkStep(ctx context.Context, stepID uint, actor permission.Actor) (uint, error) {
	step, err := s.repo.FindStep(ctx, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, response.NewNotFound("步骤不存在")
		}
		return 0, err
	}
	if err := s.permission.CheckStepAccess(ctx, step, actor, errNotParticipant); err != nil {
		return 0, err
	}
	return step.Lesson.CourseID, nil
}

func (s *CommentService) fullResponse(ctx context.Context, id uint, viewerID uint) (*CommentFullResponse, error) {
	row, err := s.repo.Row(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	return row.toResponse(), nil
}

// GetTreeOfComments 步骤评论树：顶级评论按时间升序，回复挂在所属顶级评论下
func (s *CommentService) GetTreeOfComments(ctx context.Context, stepID uint, actor permission.Actor) ([]*CommentFullResponse, error) {
	if _, err := s.checkStep(ctx, stepID, actor); err != nil {
		return nil, err
	}

	rows, err := s.repo.StepRows(ctx, stepID, actor.ID)
	if err != nil {
		return nil, err
	}

	roots, orphans := buildTree(rows)
	if orphans > 0 {
		s.log.Warn("丢弃父评论不存在的回复", "step_id", stepID, "count", orphans)
	}
	return roots, nil
}

// buildTree rows 须按创建时间升序；返回顶级评论与被丢弃的回复数
func buildTree(rows []commentRow) ([]*CommentFullResponse, int) {
	roots := make([]*CommentFullResponse, 0)
	byID := make(map[uint]*CommentFullResponse)

	// 1. 顶级评论
	for i := range rows {
		if rows[i].ParentID == nil {
			node := rows[i].toResponse()
			roots = append(roots, node)
			byID[node.ID] = node
		}
	}

	// 2. 回复挂到顶级评论下，父评论不是已知顶级评论的回复被丢弃
	orphans := 0
	for i := range rows {
		if rows[i].ParentID == nil {
			continue
		}
		parent, ok := byID[*rows[i].ParentID]
		if !ok {
			orphans++
			continue
		}
		parent.Children = append(parent.Children, rows[i].toResponse())
	}
	return roots, orphans
}

// LeaveComment 在步骤下发表顶级评论
func (s *CommentService) LeaveComment(ctx context.Context, stepID uint, actor permission.Actor, content string) (*CommentFullResponse, error) {
	courseID, err := s.checkStep(ctx, stepID, actor)
	if err != nil {
		return nil, err
	}

	c := &comment.Comment{
		StepID:   stepID,
		CourseID: courseID,
		UserID:   actor.ID,
		Content:  content,
		Status:   comment.StatusActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.fullResponse(ctx, c.ID, actor.ID)
}

// ReplyToComment 回复评论；回复的回复挂在同一个顶级评论下
func (s *CommentService) ReplyToComment(ctx context.Context, commentID uint, actor permission.Actor, content string) (*CommentFullResponse, error) {
	target, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	courseID, err := s.checkStep(ctx, target.StepID, actor)
	if err != nil {
		return nil, err
	}

	parentID := target.ID
	if target.ParentID != nil {
		parentID = *target.ParentID
	}

	reply := &comment.Comment{
		StepID:   target.StepID,
		CourseID: courseID,
		UserID:   actor.ID,
		ParentID: &parentID,
		Content:  content,
		Status:   comment.StatusActive,
	}
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, err
	}
	return s.fullResponse(ctx, reply.ID, actor.ID)
}

// GetCommentAndCheckRights 评论存在且用户有步骤访问权
// checkAuthor 为 true 时还要求是评论作者或管理员
func (s *CommentService) GetCommentAndCheckRights(ctx context.Context, commentID uint, actor permission.Actor, checkAuthor bool) (*comment.Comment, error) {
	c, err := s.findComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if checkAuthor && c.UserID != actor.ID && !actor.IsAdmin() {
		return nil, response.NewForbidden("只能操作自己的评论")
	}

	if _, err := s.checkStep(ctx, c.StepID, actor); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateComment 作者或管理员编辑评论
func (s *CommentService) UpdateComment(ctx context.Context, commentID uint, actor permission.Actor, req UpdateCommentRequest) (*CommentFullResponse, error) {
	c, err := s.GetCommentAndCheckRights(ctx, commentID, actor, true)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, response.NewBadRequest("评论已被删除，无法编辑")
	}

	// 成功的编辑总是标记为已编辑，内容为空时只更新状态
	updates := map[string]interface{}{"status": comment.StatusEdited}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if err := s.repo.Updates(ctx, c.ID, updates); err != nil {
		return nil, err
	}
	return s.fullResponse(ctx, c.ID, actor.ID)
}

// SoftDeleteComment 软删除：保留记录与回复，内容替换为占位文本
func (s *CommentService) SoftDeleteComment(ctx context.Context, commentID uint, actor permission.Actor) error {
	c, err := s.GetCommentAndCheckRights(ctx, commentID, actor, true)
	if err != nil {
		return err
	}
	if c.IsDeleted() {
		return nil
	}

	err = s.repo.Updates(ctx, c.ID, map[string]interface{}{
		"content": comment.DeletedPlaceholder,
		"status":  comment.StatusDeleted,
	})
	if err != nil {
		return err
	}
	s.log.Info("评论已删除", "comment_id", c.ID, "operator_id", actor.ID)
	return nil
}

// GetAllCourseComments 课程下全部未删除评论，最新在前
func (s *CommentService) GetAllCourseComments(ctx context.Context, courseID uint, actor permission.Actor) ([]*CommentFullResponse, error) {
	c, err := s.repo.FindCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课程不存在")
		}
		return nil, err
	}
	if err := s.permission.CheckCourseAccess(ctx, c, actor, errNotParticipant); err != nil {
		return nil, err
	}

	rows, err := s.repo.CourseRows(ctx, courseID, actor.ID)
	if err != nil {
		return nil, err
	}
	items := make([]*CommentFullResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toResponse())
	}
	return items, nil
}
