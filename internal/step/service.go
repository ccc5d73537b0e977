package step

import (
	"context"
	"errors"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/response"

	"gorm.io/gorm"
)

const (
	errNotAuthor = "您不是该课程的作者"
	errNoAccess  = "请先购买课程"
)

type StepService struct {
	repo       *StepRepository
	permission *permission.PermissionService
}

func NewStepService(repo *StepRepository, perm *permission.PermissionService) *StepService {
	return &StepService{repo: repo, permission: perm}
}

func (s *StepService) findLesson(ctx context.Context, id uint) (*course.Lesson, error) {
	l, err := s.repo.FindLesson(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课时不存在")
		}
		return nil, err
	}
	return l, nil
}

func (s *StepService) findStep(ctx context.Context, id uint) (*course.Step, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("步骤不存在")
		}
		return nil, err
	}
	return st, nil
}

func duplicateOrder(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewConflict("该序号的步骤已存在", response.WithError(err))
	}
	return err
}

// ListSteps 课时下的全部步骤，需要课时访问权
func (s *StepService) ListSteps(ctx context.Context, actor permission.Actor, lessonID uint) ([]StepResponse, error) {
	l, err := s.findLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckLessonAccess(ctx, l, actor, errNoAccess); err != nil {
		return nil, err
	}

	steps, err := s.repo.ListByLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	items := make([]StepResponse, 0, len(steps))
	for i := range steps {
		items = append(items, ToStepResponse(&steps[i]))
	}
	return items, nil
}

func (s *StepService) GetStep(ctx context.Context, actor permission.Actor, id uint) (*StepResponse, error) {
	st, err := s.findStep(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckStepAccess(ctx, st, actor, errNoAccess); err != nil {
		return nil, err
	}
	resp := ToStepResponse(st)
	return &resp, nil
}

func (s *StepService) CreateStep(ctx context.Context, actor permission.Actor, lessonID uint, req CreateStepRequest) (*StepResponse, error) {
	l, err := s.findLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckLessonOwner(ctx, l, actor, errNotAuthor); err != nil {
		return nil, err
	}

	st := &course.Step{
		LessonID:    lessonID,
		Title:       req.Title,
		StepType:    req.StepType,
		Content:     req.Content,
		VideoURL:    req.VideoURL,
		QuizData:    req.QuizData,
		OrderNumber: req.OrderNumber,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, duplicateOrder(err)
	}
	resp := ToStepResponse(st)
	return &resp, nil
}

func (s *StepService) UpdateStep(ctx context.Context, actor permission.Actor, id uint, req UpdateStepRequest) (*StepResponse, error) {
	st, err := s.findStep(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckLessonOwner(ctx, st.Lesson, actor, errNotAuthor); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.StepType != nil {
		fields["step_type"] = *req.StepType
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.VideoURL != nil {
		fields["video_url"] = *req.VideoURL
	}
	if req.QuizData != nil {
		fields["quiz_data"] = req.QuizData
	}
	if req.OrderNumber != nil {
		fields["order_number"] = *req.OrderNumber
	}
	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			return nil, duplicateOrder(err)
		}
	}

	updated, err := s.findStep(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToStepResponse(updated)
	return &resp, nil
}

func (s *StepService) DeleteStep(ctx context.Context, actor permission.Actor, id uint) error {
	st, err := s.findStep(ctx, id)
	if err != nil {
		return err
	}
	if err := s.permission.CheckLessonOwner(ctx, st.Lesson, actor, errNotAuthor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
