package lesson

import (
	"context"
	"errors"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/response"

	"gorm.io/gorm"
)

const errNotAuthor = "您不是该课程的作者"

type LessonService struct {
	repo       *LessonRepository
	permission *permission.PermissionService
}

func NewLessonService(repo *LessonRepository, perm *permission.PermissionService) *LessonService {
	return &LessonService{repo: repo, permission: perm}
}

func (s *LessonService) findCourse(ctx context.Context, courseID uint) (*course.Course, error) {
	c, err := s.repo.FindCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课程不存在")
		}
		return nil, err
	}
	return c, nil
}

func (s *LessonService) findLesson(ctx context.Context, id uint) (*course.Lesson, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课时不存在")
		}
		return nil, err
	}
	return l, nil
}

// duplicateOrder 序号冲突统一转换为 Conflict
func duplicateOrder(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewConflict("该序号的课时已存在", response.WithError(err))
	}
	return err
}

// ListLessons 课时目录；未发布课程只对作者和管理员可见
func (s *LessonService) ListLessons(ctx context.Context, actor permission.Actor, courseID uint) ([]LessonResponse, error) {
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !c.IsPublished && s.permission.CheckCourseOwner(c, actor, "") != nil {
		return nil, response.NewNotFound("课程不存在")
	}

	lessons, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	items := make([]LessonResponse, 0, len(lessons))
	for i := range lessons {
		items = append(items, ToLessonResponse(&lessons[i]))
	}
	return items, nil
}

// GetLesson 课时详情
func (s *LessonService) GetLesson(ctx context.Context, actor permission.Actor, id uint) (*LessonResponse, error) {
	l, err := s.findLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.Course.IsPublished && s.permission.CheckCourseOwner(l.Course, actor, "") != nil {
		return nil, response.NewNotFound("课时不存在")
	}
	resp := ToLessonResponse(l)
	return &resp, nil
}

func (s *LessonService) CreateLesson(ctx context.Context, actor permission.Actor, courseID uint, req CreateLessonRequest) (*LessonResponse, error) {
	c, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckCourseOwner(c, actor, errNotAuthor); err != nil {
		return nil, err
	}

	l := &course.Lesson{
		CourseID:        courseID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		OrderNumber:     req.OrderNumber,
		IsFree:          req.IsFree,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, duplicateOrder(err)
	}
	resp := ToLessonResponse(l)
	return &resp, nil
}

func (s *LessonService) UpdateLesson(ctx context.Context, actor permission.Actor, id uint, req UpdateLessonRequest) (*LessonResponse, error) {
	l, err := s.findLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckCourseOwner(l.Course, actor, errNotAuthor); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.DurationMinutes != nil {
		fields["duration_minutes"] = *req.DurationMinutes
	}
	if req.OrderNumber != nil {
		fields["order_number"] = *req.OrderNumber
	}
	if req.IsFree != nil {
		fields["is_free"] = *req.IsFree
	}
	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, l, fields); err != nil {
			return nil, duplicateOrder(err)
		}
	}

	updated, err := s.findLesson(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToLessonResponse(updated)
	return &resp, nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, actor permission.Actor, id uint) error {
	l, err := s.findLesson(ctx, id)
	if err != nil {
		return err
	}
	if err := s.permission.CheckCourseOwner(l.Course, actor, errNotAuthor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
