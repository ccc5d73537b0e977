package reaction

import (
	"context"
	"errors"

	"terminal-terrace/course-platform/internal/model/comment"

	"gorm.io/gorm"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Toggle 在一个事务内完成三态切换：
// 无记录则创建，同极性则删除，反极性则翻转
func (r *ReactionRepository) Toggle(ctx context.Context, commentID, userID uint, isLike bool) (Action, error) {
	var action Action
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing comment.Reaction
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			action = ActionCreated
			return tx.Create(&comment.Reaction{
				CommentID: commentID,
				UserID:    userID,
				IsLike:    isLike,
			}).Error
		case err != nil:
			return err
		}

		if existing.IsLike == isLike {
			action = ActionDeleted
			return tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
				Delete(&comment.Reaction{}).Error
		}

		action = ActionUpdated
		return tx.Model(&comment.Reaction{}).
			Where("comment_id = ? AND user_id = ?", commentID, userID).
			Update("is_like", isLike).Error
	})
	if err != nil {
		return "", err
	}
	return action, nil
}
