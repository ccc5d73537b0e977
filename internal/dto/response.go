package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"terminal-terrace/course-platform/packages/logger"
	res "terminal-terrace/course-platform/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.CreatedResponse(data))
}

// ErrorResponse 只返回面向用户的信息
func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(err.HTTPStatus(), res.ErrorResponse(err))
}

// HandleError 统一错误出口
// BusinessError 按业务码返回，内部错误信息只写日志
func HandleError(c *gin.Context, log *logger.Logger, err error) {
	var be *res.BusinessError
	switch {
	case errors.As(err, &be):
	case errors.Is(err, gorm.ErrRecordNotFound):
		be = res.NewNotFound("资源不存在", res.WithError(err))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		be = res.NewConflict("资源已存在", res.WithError(err))
	default:
		be = res.NewInternal(err)
	}

	if log != nil {
		kv := []interface{}{"code", be.Code, "message", be.Msg, "method", c.Request.Method, "path", c.FullPath()}
		if be.Err != nil {
			kv = append(kv, "error", be.Err.Error())
		}
		if be.HTTPStatus() >= http.StatusInternalServerError {
			log.Error("request failed", kv...)
		} else if be.Err != nil {
			log.Warn("request rejected", kv...)
		}
	}

	ErrorResponse(c, be)
}

// ParseIDParam 解析路径中的 ID 参数，失败时直接写入错误响应
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(fmt.Sprintf("无效的 %s", name)),
		))
		return 0, false
	}
	return uint(id), true
}

// ValidationErrorResponse 处理验证错误，返回友好的JSON字段名
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		firstErr := validationErrs[0]
		jsonField := toSnakeCase(firstErr.Field())

		var message string
		switch firstErr.Tag() {
		case "required":
			message = fmt.Sprintf("字段 '%s' 是必填项", jsonField)
		case "max":
			message = fmt.Sprintf("字段 '%s' 不能超过 %s", jsonField, firstErr.Param())
		case "min":
			message = fmt.Sprintf("字段 '%s' 不能少于 %s", jsonField, firstErr.Param())
		case "oneof":
			message = fmt.Sprintf("字段 '%s' 必须是以下值之一: %s", jsonField, firstErr.Param())
		case "email":
			message = fmt.Sprintf("字段 '%s' 不是有效的邮箱", jsonField)
		default:
			message = fmt.Sprintf("字段 '%s' 验证失败: %s", jsonField, firstErr.Tag())
		}

		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage(message),
		))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("参数错误: "+err.Error()),
	))
}

// toSnakeCase 将PascalCase转换为snake_case
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
