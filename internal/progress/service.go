package progress

import (
	"context"
	"errors"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/response"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProgressService struct {
	repo       *ProgressRepository
	permission *permission.PermissionService
}

func NewProgressService(repo *ProgressRepository, perm *permission.PermissionService) *ProgressService {
	return &ProgressService{repo: repo, permission: perm}
}

func (s *ProgressService) findCourse(ctx context.Context, courseID uint) (*course.Course, error) {
	c, err := s.repo.FindCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课程不存在")
		}
		return nil, err
	}
	return c, nil
}

// checkLesson 课程存在、用户已购买、课时属于该课程
func (s *ProgressService) checkLesson(ctx context.Context, actor permission.Actor, courseID, lessonID uint) error {
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return err
	}
	if err := s.permission.CheckCourseAccess(ctx, c, actor, "您尚未购买该课程"); err != nil {
		return err
	}

	ok, err := s.repo.LessonInCourse(ctx, lessonID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return response.NewNotFound("该课程中不存在此课时")
	}
	return nil
}

// CompleteLesson 标记课时完成，重复调用不影响结果
func (s *ProgressService) CompleteLesson(ctx context.Context, actor permission.Actor, courseID, lessonID uint) (*ProgressResponse, error) {
	if err := s.checkLesson(ctx, actor, courseID, lessonID); err != nil {
		return nil, err
	}
	if err := s.repo.Complete(ctx, actor.ID, courseID, lessonID); err != nil {
		return nil, err
	}
	return s.GetCourseProgress(ctx, actor.ID, courseID)
}

// UncompleteLesson 取消课时完成
func (s *ProgressService) UncompleteLesson(ctx context.Context, actor permission.Actor, courseID, lessonID uint) (*ProgressResponse, error) {
	if err := s.checkLesson(ctx, actor, courseID, lessonID); err != nil {
		return nil, err
	}
	if err := s.repo.Uncomplete(ctx, actor.ID, courseID, lessonID); err != nil {
		return nil, err
	}
	return s.GetCourseProgress(ctx, actor.ID, courseID)
}

// GetMyProgress 用户所有课程的进度
func (s *ProgressService) GetMyProgress(ctx context.Context, userID uint) ([]ProgressResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.repo.CompletedLessons(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]ProgressResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toResponse(completed[rows[i].CourseID]))
	}
	return items, nil
}

// GetCourseProgress 尚未开始学习时返回零进度
func (s *ProgressService) GetCourseProgress(ctx context.Context, userID, courseID uint) (*ProgressResponse, error) {
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return &ProgressResponse{
			CourseID:           c.ID,
			CourseTitle:        c.Title,
			CompletedLessons:   []uint{},
			ProgressPercentage: decimal.Zero,
		}, nil
	}

	completed, err := s.repo.CompletedLessons(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	resp := row.toResponse(completed[courseID])
	return &resp, nil
}
