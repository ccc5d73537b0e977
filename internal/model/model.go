package model

import (
	"gorm.io/gorm"

	"terminal-terrace/course-platform/internal/model/comment"
	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/progress"
	"terminal-terrace/course-platform/internal/model/purchase"
	"terminal-terrace/course-platform/internal/model/user"
)

// InitTable 自动迁移数据库表结构，按外键依赖顺序
func InitTable(db *gorm.DB) error {
	return db.AutoMigrate(
		// 用户
		&user.User{},
		// 课程内容
		&course.Course{},
		&course.Lesson{},
		&course.Step{},
		// 评论
		&comment.Comment{},
		&comment.Reaction{},
		// 购买
		&purchase.Purchase{},
		// 学习进度
		&progress.UserCourseProgress{},
		&progress.UserLessonCompletion{},
	)
}
