package testutils

import (
	"fmt"
	"strings"
	"time"

	"terminal-terrace/course-platform/internal/model/comment"
	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/purchase"
	"terminal-terrace/course-platform/internal/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain password of every fixture user
const TestPassword = "Password123"

// CreateTestUser creates an active test user with unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := strings.ReplaceAll(uuid.New().String(), "-", "")[:10]

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("Failed to hash password: %v", err))
	}

	testUser := &user.User{
		Username:     fmt.Sprintf("u_%s", uniqueID),
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		FullName:     "Test User",
		PasswordHash: string(hash),
		Role:         user.RoleUser,
		IsActive:     true,
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithRole sets the role
func WithRole(role user.Role) UserOption {
	return func(u *user.User) {
		u.Role = role
	}
}

// Inactive marks the user as disabled
func Inactive() UserOption {
	return func(u *user.User) {
		u.IsActive = false
	}
}

// CreateTestCourse creates a published test course
func CreateTestCourse(db *gorm.DB, authorID uint, opts ...CourseOption) *course.Course {
	testCourse := &course.Course{
		Title:       fmt.Sprintf("Test Course %s", uuid.New().String()[:8]),
		Description: "Test course description",
		Price:       decimal.RequireFromString("199.00"),
		IsPublished: true,
		AuthorID:    authorID,
	}

	for _, opt := range opts {
		opt(testCourse)
	}

	if err := db.Create(testCourse).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test course: %v", err))
	}
	return testCourse
}

// CourseOption configures test course
type CourseOption func(*course.Course)

// WithTitle sets the course title
func WithTitle(title string) CourseOption {
	return func(c *course.Course) {
		c.Title = title
	}
}

// WithPrice sets the course price
func WithPrice(price string) CourseOption {
	return func(c *course.Course) {
		c.Price = decimal.RequireFromString(price)
	}
}

// Unpublished keeps the course out of public listings
func Unpublished() CourseOption {
	return func(c *course.Course) {
		c.IsPublished = false
	}
}

// CreateTestLesson creates a lesson appended to the end of the course
func CreateTestLesson(db *gorm.DB, courseID uint, opts ...LessonOption) *course.Lesson {
	var count int64
	db.Model(&course.Lesson{}).Where("course_id = ?", courseID).Count(&count)

	lesson := &course.Lesson{
		CourseID:        courseID,
		Title:           fmt.Sprintf("Lesson %d", count+1),
		DurationMinutes: 10,
		OrderNumber:     int(count) + 1,
	}

	for _, opt := range opts {
		opt(lesson)
	}

	if err := db.Create(lesson).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test lesson: %v", err))
	}
	return lesson
}

// LessonOption configures test lesson
type LessonOption func(*course.Lesson)

// FreeLesson marks the lesson as free preview
func FreeLesson() LessonOption {
	return func(l *course.Lesson) {
		l.IsFree = true
	}
}

// CreateTestStep creates a text step appended to the end of the lesson
func CreateTestStep(db *gorm.DB, lessonID uint) *course.Step {
	var count int64
	db.Model(&course.Step{}).Where("lesson_id = ?", lessonID).Count(&count)

	step := &course.Step{
		LessonID:    lessonID,
		Title:       fmt.Sprintf("Step %d", count+1),
		StepType:    course.StepTypeText,
		Content:     "Step content",
		OrderNumber: int(count) + 1,
	}
	if err := db.Create(step).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test step: %v", err))
	}
	return step
}

// CreateTestPurchase creates a purchase record with the given status
func CreateTestPurchase(db *gorm.DB, userID, courseID uint, status purchase.Status) *purchase.Purchase {
	paymentID := "pay_" + uuid.New().String()
	p := &purchase.Purchase{
		UserID:       userID,
		CourseID:     courseID,
		PaymentID:    &paymentID,
		Status:       status,
		PricePaid:    decimal.RequireFromString("199.00"),
		PurchaseDate: time.Now(),
	}
	if err := db.Create(p).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test purchase: %v", err))
	}
	return p
}

// Enroll gives the user a succeeded purchase of the course
func Enroll(db *gorm.DB, userID, courseID uint) *purchase.Purchase {
	return CreateTestPurchase(db, userID, courseID, purchase.StatusSucceeded)
}

// CreateTestComment creates a comment on the step; parentID may be nil
func CreateTestComment(db *gorm.DB, step *course.Step, courseID, userID uint, parentID *uint, content string) *comment.Comment {
	c := &comment.Comment{
		StepID:   step.ID,
		CourseID: courseID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
		Status:   comment.StatusActive,
	}
	if err := db.Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test comment: %v", err))
	}
	return c
}

// ContentTree is a course with one lesson and one step
type ContentTree struct {
	Author *user.User
	Course *course.Course
	Lesson *course.Lesson
	Step   *course.Step
}

// CreateTestContentTree creates author, course, lesson and step
func CreateTestContentTree(db *gorm.DB, lessonOpts ...LessonOption) *ContentTree {
	author := CreateTestUser(db, WithRole(user.RoleAuthor))
	c := CreateTestCourse(db, author.ID)
	lesson := CreateTestLesson(db, c.ID, lessonOpts...)
	step := CreateTestStep(db, lesson.ID)
	return &ContentTree{Author: author, Course: c, Lesson: lesson, Step: step}
}
