package lesson

import (
	"context"
	"testing"

	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/internal/testutils"
	"terminal-terrace/course-platform/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorOf(u *user.User) permission.Actor {
	return permission.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func requireCode(t *testing.T, err error, code response.ResponseCode) {
	t.Helper()
	var be *response.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, code, be.Code)
}

func TestLessonCRUD(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewLessonService(NewLessonRepository(db), permission.NewPermissionService(db))
	ctx := context.Background()

	author := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	other := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	c := testutils.CreateTestCourse(db, author.ID)
	owner := actorOf(author)

	second, err := svc.CreateLesson(ctx, owner, c.ID, CreateLessonRequest{Title: "Second", OrderNumber: 2})
	require.NoError(t, err)
	first, err := svc.CreateLesson(ctx, owner, c.ID, CreateLessonRequest{Title: "First", OrderNumber: 1, IsFree: true})
	require.NoError(t, err)

	t.Run("ordered by order_number", func(t *testing.T) {
		items, err := svc.ListLessons(ctx, actorOf(other), c.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, first.ID, items[0].ID)
		assert.Equal(t, second.ID, items[1].ID)
	})

	t.Run("duplicate order", func(t *testing.T) {
		_, err := svc.CreateLesson(ctx, owner, c.ID, CreateLessonRequest{Title: "Dup", OrderNumber: 1})
		requireCode(t, err, response.Conflict)
	})

	t.Run("not the author", func(t *testing.T) {
		_, err := svc.CreateLesson(ctx, actorOf(other), c.ID, CreateLessonRequest{Title: "X", OrderNumber: 3})
		requireCode(t, err, response.Forbidden)
	})

	t.Run("partial update", func(t *testing.T) {
		title := "Second (updated)"
		resp, err := svc.UpdateLesson(ctx, owner, second.ID, UpdateLessonRequest{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, resp.Title)
		assert.Equal(t, 2, resp.OrderNumber)
	})

	t.Run("update to taken order", func(t *testing.T) {
		order := 1
		_, err := svc.UpdateLesson(ctx, owner, second.ID, UpdateLessonRequest{OrderNumber: &order})
		requireCode(t, err, response.Conflict)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteLesson(ctx, owner, second.ID))
		_, err := svc.GetLesson(ctx, owner, second.ID)
		requireCode(t, err, response.NotFound)
	})

	t.Run("missing course", func(t *testing.T) {
		_, err := svc.ListLessons(ctx, owner, 9999)
		requireCode(t, err, response.NotFound)
	})
}
