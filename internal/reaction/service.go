package reaction

import (
	"context"

	commentService "terminal-terrace/course-platform/internal/comment"
	"terminal-terrace/course-platform/internal/notification"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"
)

type ReactionService struct {
	repo     *ReactionRepository
	comments *commentService.CommentService
	notifier notification.Notifier
	log      *logger.Logger
}

// NewReactionService notifier 为 nil 时不发送点赞通知
func NewReactionService(repo *ReactionRepository, comments *commentService.CommentService, notifier notification.Notifier, log *logger.Logger) *ReactionService {
	return &ReactionService{repo: repo, comments: comments, notifier: notifier, log: log}
}

// ToggleReaction 点赞或点踩，重复操作取消，反向操作翻转
func (s *ReactionService) ToggleReaction(ctx context.Context, commentID uint, actor permission.Actor, isLike bool) (*ToggleResponse, error) {
	// 1. 评论存在且有步骤访问权
	c, err := s.comments.GetCommentAndCheckRights(ctx, commentID, actor, false)
	if err != nil {
		return nil, err
	}

	// 2. 不能评价自己的评论
	if c.UserID == actor.ID {
		return nil, response.NewBadRequest("不能评价自己的评论")
	}

	// 3. 三态切换
	action, err := s.repo.Toggle(ctx, c.ID, actor.ID, isLike)
	if err != nil {
		return nil, err
	}

	// 4. 新点赞通知评论作者，失败只记录日志
	if action == ActionCreated && isLike && s.notifier != nil {
		n := notification.NewLike(actor.Username, actor.ID, c.ID, c.Content)
		if err := s.notifier.SendNotification(ctx, c.UserID, n); err != nil {
			s.log.Warn("点赞通知发送失败", "comment_id", c.ID, "target_user_id", c.UserID, "error", err)
		}
	}

	return &ToggleResponse{Status: "success", Action: action}, nil
}
