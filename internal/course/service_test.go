package course

import (
	"context"
	"testing"

	"terminal-terrace/course-platform/internal/model/course"
	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/internal/testutils"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	svc := NewCourseService(NewCourseRepository(db), permission.NewPermissionService(db), logger.NewNop())
	return svc, db
}

func actorOf(u *user.User) permission.Actor {
	return permission.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func requireCode(t *testing.T, err error, code response.ResponseCode) {
	t.Helper()
	var be *response.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, code, be.Code)
}

func TestCreateCourse(t *testing.T) {
	svc, db := setupCourseService(t)
	ctx := context.Background()

	author := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	student := testutils.CreateTestUser(db)

	resp, err := svc.CreateCourse(ctx, actorOf(author), CreateCourseRequest{
		Title: "Go 并发编程",
		Price: decimal.RequireFromString("99.999"),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsPublished)
	assert.Equal(t, author.Username, resp.AuthorName)
	assert.True(t, decimal.RequireFromString("100").Equal(resp.Price))

	_, err = svc.CreateCourse(ctx, actorOf(student), CreateCourseRequest{Title: "x"})
	requireCode(t, err, response.Forbidden)

	_, err = svc.CreateCourse(ctx, actorOf(author), CreateCourseRequest{Title: "x", Price: decimal.NewFromInt(-1)})
	requireCode(t, err, response.BadRequest)
}

func TestGetCourse_Unpublished(t *testing.T) {
	svc, db := setupCourseService(t)
	ctx := context.Background()

	author := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	draft := testutils.CreateTestCourse(db, author.ID, testutils.Unpublished())
	testutils.CreateTestLesson(db, draft.ID)
	testutils.CreateTestLesson(db, draft.ID)

	_, err := svc.GetCourse(ctx, nil, draft.ID)
	requireCode(t, err, response.NotFound)

	a := actorOf(author)
	resp, err := svc.GetCourse(ctx, &a, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.LessonsCount)

	_, err = svc.GetCourse(ctx, nil, 9999)
	requireCode(t, err, response.NotFound)
}

func TestListCourses(t *testing.T) {
	svc, db := setupCourseService(t)
	ctx := context.Background()

	author := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	testutils.CreateTestCourse(db, author.ID, testutils.WithTitle("Intro to Go"), testutils.WithPrice("50.00"))
	testutils.CreateTestCourse(db, author.ID, testutils.WithTitle("Advanced Go"), testutils.WithPrice("150.00"))
	testutils.CreateTestCourse(db, author.ID, testutils.WithTitle("Rust Basics"), testutils.WithPrice("80.00"))
	testutils.CreateTestCourse(db, author.ID, testutils.WithTitle("Go Draft"), testutils.Unpublished())

	tests := []struct {
		name  string
		query ListCoursesQuery
		total int64
	}{
		{"all published", ListCoursesQuery{}, 3},
		{"search case insensitive", ListCoursesQuery{Search: "go"}, 2},
		{"price range", ListCoursesQuery{MinPrice: "60", MaxPrice: "160"}, 2},
		{"min only", ListCoursesQuery{MinPrice: "100"}, 1},
		{"author", ListCoursesQuery{AuthorID: author.ID}, 3},
		{"unknown author", ListCoursesQuery{AuthorID: 9999}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ListCourses(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, resp.Total)
			assert.Len(t, resp.Items, int(tt.total))
		})
	}

	t.Run("pagination", func(t *testing.T) {
		resp, err := svc.ListCourses(ctx, ListCoursesQuery{Page: 2, PerPage: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Total)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Page)
	})

	t.Run("per_page capped", func(t *testing.T) {
		resp, err := svc.ListCourses(ctx, ListCoursesQuery{PerPage: 1000})
		require.NoError(t, err)
		assert.Equal(t, maxPerPage, resp.PerPage)
	})

	t.Run("min greater than max", func(t *testing.T) {
		_, err := svc.ListCourses(ctx, ListCoursesQuery{MinPrice: "200", MaxPrice: "100"})
		requireCode(t, err, response.BadRequest)
	})

	t.Run("invalid price", func(t *testing.T) {
		_, err := svc.ListCourses(ctx, ListCoursesQuery{MinPrice: "abc"})
		requireCode(t, err, response.BadRequest)
	})
}

func TestUpdatePublishDeleteCourse(t *testing.T) {
	svc, db := setupCourseService(t)
	ctx := context.Background()

	tree := testutils.CreateTestContentTree(db)
	other := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	owner := actorOf(tree.Author)

	title := "Renamed"
	resp, err := svc.UpdateCourse(ctx, owner, tree.Course.ID, UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, tree.Course.Description, resp.Description)

	_, err = svc.UpdateCourse(ctx, actorOf(other), tree.Course.ID, UpdateCourseRequest{Title: &title})
	requireCode(t, err, response.Forbidden)

	resp, err = svc.SetPublished(ctx, owner, tree.Course.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.IsPublished)

	require.NoError(t, svc.DeleteCourse(ctx, owner, tree.Course.ID))
	var count int64
	db.Model(&course.Course{}).Where("id = ?", tree.Course.ID).Count(&count)
	assert.Zero(t, count)

	err = svc.DeleteCourse(ctx, owner, tree.Course.ID)
	requireCode(t, err, response.NotFound)
}
