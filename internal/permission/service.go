// Package permission 统一权限检查服务
// 课程作者、全局管理员、已购买用户以及免费课时的访问判定都在这里完成，
// 每次调用都会重新查询，不缓存判定结果
package permission

import (
	"context"
	"fmt"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/purchase"
	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/packages/response"

	"gorm.io/gorm"
)

// 角色等级常量
// 数值越大权限越高
const (
	RoleLevelAdmin   = 100
	RoleLevelAuthor  = 50
	RoleLevelUser    = 10
	RoleLevelUnknown = 0
)

// RoleLevelMap 角色名称到等级的映射
var RoleLevelMap = map[user.Role]int{
	user.RoleAdmin:  RoleLevelAdmin,
	user.RoleAuthor: RoleLevelAuthor,
	user.RoleUser:   RoleLevelUser,
}

// AccessSource 访问权限来源
type AccessSource string

const (
	AccessSourceGlobal     AccessSource = "global"     // 全局管理员
	AccessSourceAuthor     AccessSource = "author"     // 课程作者
	AccessSourceEnrollment AccessSource = "enrollment" // 已购买课程
	AccessSourcePreview    AccessSource = "preview"    // 免费试看课时
	AccessSourceNone       AccessSource = "none"
)

// AccessResult 权限检查结果
type AccessResult struct {
	HasAccess bool         `json:"has_access"`
	Source    AccessSource `json:"source"`
}

// Actor 当前请求的用户
type Actor struct {
	ID       uint
	Username string
	Email    string
	Role     user.Role
}

func (a Actor) IsAdmin() bool {
	return IsGlobalAdmin(a.Role)
}

// PermissionService 统一权限检查服务
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService 创建权限服务实例
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// GetRoleLevel 获取角色的权限等级，未知角色返回 RoleLevelUnknown
func GetRoleLevel(role user.Role) int {
	if level, ok := RoleLevelMap[role]; ok {
		return level
	}
	return RoleLevelUnknown
}

// HasRequiredRole 检查实际角色是否满足所需角色的权限要求
func HasRequiredRole(actualRole, requiredRole user.Role) bool {
	return GetRoleLevel(actualRole) >= GetRoleLevel(requiredRole)
}

// IsAuthor 是否具有创建课程的角色
func IsAuthor(role user.Role) bool {
	return HasRequiredRole(role, user.RoleAuthor)
}

// IsGlobalAdmin 检查用户是否是全局管理员
func IsGlobalAdmin(role user.Role) bool {
	return role == user.RoleAdmin
}

// HasEnrollment 用户是否已成功购买课程
func (s *PermissionService) HasEnrollment(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&purchase.Purchase{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, purchase.StatusSucceeded).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("查询购买记录失败: %w", err)
	}
	return count > 0, nil
}

// ResolveCourseAccess 判断用户对课程内容的访问权
// 检查顺序：全局管理员 → 课程作者 → 已购买
func (s *PermissionService) ResolveCourseAccess(ctx context.Context, c *course.Course, actor Actor) (AccessResult, error) {
	if actor.IsAdmin() {
		return AccessResult{HasAccess: true, Source: AccessSourceGlobal}, nil
	}
	if c.AuthorID == actor.ID {
		return AccessResult{HasAccess: true, Source: AccessSourceAuthor}, nil
	}
	enrolled, err := s.HasEnrollment(ctx, actor.ID, c.ID)
	if err != nil {
		return AccessResult{}, err
	}
	if enrolled {
		return AccessResult{HasAccess: true, Source: AccessSourceEnrollment}, nil
	}
	return AccessResult{HasAccess: false, Source: AccessSourceNone}, nil
}

// ResolveLessonAccess 判断用户对课时的访问权，免费课时对所有登录用户开放
func (s *PermissionService) ResolveLessonAccess(ctx context.Context, lesson *course.Lesson, actor Actor) (AccessResult, error) {
	c, err := s.courseOf(ctx, lesson)
	if err != nil {
		return AccessResult{}, err
	}
	result, err := s.ResolveCourseAccess(ctx, c, actor)
	if err != nil || result.HasAccess {
		return result, err
	}
	if lesson.IsFree {
		return AccessResult{HasAccess: true, Source: AccessSourcePreview}, nil
	}
	return result, nil
}

// CheckStepAccess 步骤的访问权与所属课时一致
func (s *PermissionService) CheckStepAccess(ctx context.Context, step *course.Step, actor Actor, msg string) error {
	lesson := step.Lesson
	if lesson == nil {
		lesson = &course.Lesson{}
		if err := s.db.WithContext(ctx).Preload("Course").First(lesson, step.LessonID).Error; err != nil {
			return fmt.Errorf("查询步骤所属课时失败: %w", err)
		}
		step.Lesson = lesson
	}
	return s.CheckLessonAccess(ctx, lesson, actor, msg)
}

// CheckCourseOwner 非作者且非管理员时返回 Forbidden
func (s *PermissionService) CheckCourseOwner(c *course.Course, actor Actor, msg string) error {
	if actor.IsAdmin() || c.AuthorID == actor.ID {
		return nil
	}
	return response.NewForbidden(msg)
}

// CheckLessonOwner 通过课时所属课程检查作者身份
func (s *PermissionService) CheckLessonOwner(ctx context.Context, lesson *course.Lesson, actor Actor, msg string) error {
	c, err := s.courseOf(ctx, lesson)
	if err != nil {
		return err
	}
	return s.CheckCourseOwner(c, actor, msg)
}

// CheckCourseAccess 没有课程访问权时返回 Forbidden
func (s *PermissionService) CheckCourseAccess(ctx context.Context, c *course.Course, actor Actor, msg string) error {
	result, err := s.ResolveCourseAccess(ctx, c, actor)
	if err != nil {
		return err
	}
	if !result.HasAccess {
		return response.NewForbidden(msg)
	}
	return nil
}

// CheckLessonAccess 没有课时访问权时返回 Forbidden
func (s *PermissionService) CheckLessonAccess(ctx context.Context, lesson *course.Lesson, actor Actor, msg string) error {
	result, err := s.ResolveLessonAccess(ctx, lesson, actor)
	if err != nil {
		return err
	}
	if !result.HasAccess {
		return response.NewForbidden(msg)
	}
	return nil
}

// courseOf 返回课时所属课程，未预加载时查询
func (s *PermissionService) courseOf(ctx context.Context, lesson *course.Lesson) (*course.Course, error) {
	if lesson.Course != nil {
		return lesson.Course, nil
	}
	var c course.Course
	if err := s.db.WithContext(ctx).First(&c, lesson.CourseID).Error; err != nil {
		return nil, fmt.Errorf("查询课时所属课程失败: %w", err)
	}
	lesson.Course = &c
	return &c, nil
}
