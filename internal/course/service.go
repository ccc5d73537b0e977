package course

import (
	"context"
	"errors"
	"strings"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type CourseService struct {
	repo       *CourseRepository
	permission *permission.PermissionService
	log        *logger.Logger
}

func NewCourseService(repo *CourseRepository, perm *permission.PermissionService, log *logger.Logger) *CourseService {
	return &CourseService{repo: repo, permission: perm, log: log}
}

func (s *CourseService) findCourse(ctx context.Context, id uint) (*course.Course, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("课程不存在")
		}
		return nil, err
	}
	return c, nil
}

// CreateCourse 作者或管理员创建课程，新课程默认未发布
func (s *CourseService) CreateCourse(ctx context.Context, actor permission.Actor, req CreateCourseRequest) (*CourseResponse, error) {
	if !permission.IsAuthor(actor.Role) {
		return nil, response.NewForbidden("只有作者可以创建课程")
	}
	if req.Price.IsNegative() {
		return nil, response.NewBadRequest("价格不能为负数")
	}

	c := &course.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price.Round(2),
		AuthorID:    actor.ID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("课程已创建", "course_id", c.ID, "author_id", actor.ID)
	return s.repo.FindResponseByID(ctx, c.ID)
}

// GetCourse 已发布课程对所有人可见，未发布课程只对作者和管理员可见
func (s *CourseService) GetCourse(ctx context.Context, actor *permission.Actor, id uint) (*CourseResponse, error) {
	c, err := s.findCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsPublished {
		if actor == nil || s.permission.CheckCourseOwner(c, *actor, "") != nil {
			return nil, response.NewNotFound("课程不存在")
		}
	}
	return s.repo.FindResponseByID(ctx, id)
}

// ListCourses 已发布课程分页列表
func (s *CourseService) ListCourses(ctx context.Context, q ListCoursesQuery) (*ListCoursesResponse, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	filter := CourseFilter{
		Search:        q.Search,
		AuthorID:      q.AuthorID,
		PublishedOnly: true,
		Offset:        (page - 1) * perPage,
		Limit:         perPage,
	}

	var err error
	if filter.MinPrice, err = parsePrice(q.MinPrice, "min_price"); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parsePrice(q.MaxPrice, "max_price"); err != nil {
		return nil, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, response.NewBadRequest("min_price 不能大于 max_price")
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListCoursesResponse{Items: items, Page: page, PerPage: perPage, Total: total}, nil
}

func parsePrice(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, response.NewBadRequest("无效的 " + field)
	}
	return &d, nil
}

// UpdateCourse 部分更新
func (s *CourseService) UpdateCourse(ctx context.Context, actor permission.Actor, id uint, req UpdateCourseRequest) (*CourseResponse, error) {
	c, err := s.findCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckCourseOwner(c, actor, "您不是该课程的作者"); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, response.NewBadRequest("价格不能为负数")
		}
		fields["price"] = req.Price.Round(2)
	}
	if len(fields) > 0 {
		if err := s.repo.Updates(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.FindResponseByID(ctx, id)
}

// SetPublished 发布或下架课程
func (s *CourseService) SetPublished(ctx context.Context, actor permission.Actor, id uint, published bool) (*CourseResponse, error) {
	c, err := s.findCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.permission.CheckCourseOwner(c, actor, "您不是该课程的作者"); err != nil {
		return nil, err
	}
	if err := s.repo.Updates(ctx, id, map[string]interface{}{"is_published": published}); err != nil {
		return nil, err
	}
	s.log.Info("课程发布状态已修改", "course_id", id, "published", published, "operator_id", actor.ID)
	return s.repo.FindResponseByID(ctx, id)
}

// DeleteCourse 删除课程，关联数据由外键级联删除
func (s *CourseService) DeleteCourse(ctx context.Context, actor permission.Actor, id uint) error {
	c, err := s.findCourse(ctx, id)
	if err != nil {
		return err
	}
	if err := s.permission.CheckCourseOwner(c, actor, "您不是该课程的作者"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("课程已删除", "course_id", id, "operator_id", actor.ID)
	return nil
}
