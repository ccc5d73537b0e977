package course

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册课程路由
// optionalAuth 用于公开接口，未发布课程仍对作者可见
func RegisterRoutes(router *gin.RouterGroup, handler *CourseHandler, auth, optionalAuth gin.HandlerFunc) {
	courses := router.Group("/courses")
	{
		courses.GET("", handler.ListCourses)
		courses.POST("", auth, handler.CreateCourse)
		courses.GET("/:course_id", optionalAuth, handler.GetCourse)
		courses.PATCH("/:course_id", auth, handler.UpdateCourse)
		courses.DELETE("/:course_id", auth, handler.DeleteCourse)
		courses.POST("/:course_id/publish", auth, handler.Publish)
		courses.POST("/:course_id/unpublish", auth, handler.Unpublish)
	}
}
