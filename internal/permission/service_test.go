package permission

import (
	"context"
	"testing"

	"terminal-terrace/course-platform/internal/model/purchase"
	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/testutils"
	"terminal-terrace/course-platform/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actorOf(u *user.User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func TestHasRequiredRole(t *testing.T) {
	assert.True(t, HasRequiredRole(user.RoleAdmin, user.RoleAuthor))
	assert.True(t, HasRequiredRole(user.RoleAuthor, user.RoleAuthor))
	assert.False(t, HasRequiredRole(user.RoleUser, user.RoleAuthor))
	assert.False(t, HasRequiredRole(user.Role("guest"), user.RoleUser))
	assert.Equal(t, RoleLevelUnknown, GetRoleLevel(user.Role("")))
}

func TestResolveCourseAccess(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()

	tree := testutils.CreateTestContentTree(db)
	admin := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAdmin))
	student := testutils.CreateTestUser(db)
	stranger := testutils.CreateTestUser(db)
	pending := testutils.CreateTestUser(db)
	testutils.Enroll(db, student.ID, tree.Course.ID)
	testutils.CreateTestPurchase(db, pending.ID, tree.Course.ID, purchase.StatusPending)

	tests := []struct {
		name   string
		actor  Actor
		access bool
		source AccessSource
	}{
		{"admin", actorOf(admin), true, AccessSourceGlobal},
		{"author", actorOf(tree.Author), true, AccessSourceAuthor},
		{"enrolled", actorOf(student), true, AccessSourceEnrollment},
		{"pending purchase", actorOf(pending), false, AccessSourceNone},
		{"stranger", actorOf(stranger), false, AccessSourceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ResolveCourseAccess(ctx, tree.Course, tt.actor)
			require.NoError(t, err)
			assert.Equal(t, tt.access, result.HasAccess)
			assert.Equal(t, tt.source, result.Source)
		})
	}
}

func TestCheckLessonAccess(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()

	tree := testutils.CreateTestContentTree(db)
	freeLesson := testutils.CreateTestLesson(db, tree.Course.ID, testutils.FreeLesson())
	stranger := testutils.CreateTestUser(db)

	t.Run("paid lesson is forbidden", func(t *testing.T) {
		err := svc.CheckLessonAccess(ctx, tree.Lesson, actorOf(stranger), "无权访问")
		var be *response.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, response.Forbidden, be.Code)
	})

	t.Run("free lesson is open", func(t *testing.T) {
		result, err := svc.ResolveLessonAccess(ctx, freeLesson, actorOf(stranger))
		require.NoError(t, err)
		assert.True(t, result.HasAccess)
		assert.Equal(t, AccessSourcePreview, result.Source)
	})

	t.Run("author keeps author source on free lesson", func(t *testing.T) {
		result, err := svc.ResolveLessonAccess(ctx, freeLesson, actorOf(tree.Author))
		require.NoError(t, err)
		assert.Equal(t, AccessSourceAuthor, result.Source)
	})
}

func TestCheckCourseOwner(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewPermissionService(db)

	tree := testutils.CreateTestContentTree(db)
	admin := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAdmin))
	other := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))

	assert.NoError(t, svc.CheckCourseOwner(tree.Course, actorOf(tree.Author), "x"))
	assert.NoError(t, svc.CheckCourseOwner(tree.Course, actorOf(admin), "x"))
	assert.Error(t, svc.CheckCourseOwner(tree.Course, actorOf(other), "x"))
	assert.Error(t, svc.CheckLessonOwner(context.Background(), tree.Lesson, actorOf(other), "x"))
}

func TestCheckStepAccess(t *testing.T) {
	db := testutils.SetupTestDB(t)
	svc := NewPermissionService(db)
	ctx := context.Background()

	tree := testutils.CreateTestContentTree(db)
	student := testutils.CreateTestUser(db)
	stranger := testutils.CreateTestUser(db)
	testutils.Enroll(db, student.ID, tree.Course.ID)

	step := *tree.Step
	assert.NoError(t, svc.CheckStepAccess(ctx, &step, actorOf(student), "无权访问"))

	step = *tree.Step
	err := svc.CheckStepAccess(ctx, &step, actorOf(stranger), "无权访问")
	var be *response.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "无权访问", be.Msg)
}
