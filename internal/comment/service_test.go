package comment

import (
	"context"
	"testing"
	"time"

	commentModel "terminal-terrace/course-platform/internal/model/comment"
	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/internal/testutils"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type commentFixture struct {
	db      *gorm.DB
	service *CommentService
	tree    *testutils.ContentTree
	alice   permission.Actor
	bob     permission.Actor
	outside permission.Actor
	admin   permission.Actor
}

func actorOf(u *user.User) permission.Actor {
	return permission.Actor{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func requireCode(t *testing.T, err error, code response.ResponseCode) {
	t.Helper()
	var be *response.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, code, be.Code)
}

// setupCommentService alice 与 bob 已购买课程，outside 没有
func setupCommentService(t *testing.T) *commentFixture {
	db := testutils.SetupTestDB(t)
	svc := NewCommentService(NewCommentRepository(db), permission.NewPermissionService(db), logger.NewNop())

	tree := testutils.CreateTestContentTree(db)
	alice := testutils.CreateTestUser(db)
	bob := testutils.CreateTestUser(db)
	outside := testutils.CreateTestUser(db)
	admin := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAdmin))
	testutils.Enroll(db, alice.ID, tree.Course.ID)
	testutils.Enroll(db, bob.ID, tree.Course.ID)

	return &commentFixture{
		db:      db,
		service: svc,
		tree:    tree,
		alice:   actorOf(alice),
		bob:     actorOf(bob),
		outside: actorOf(outside),
		admin:   actorOf(admin),
	}
}

func TestLeaveComment(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	resp, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.alice, "Great step")
	require.NoError(t, err)
	assert.Nil(t, resp.ParentID)
	assert.Equal(t, f.alice.Username, resp.Author.Username)
	assert.Equal(t, f.tree.Step.Title, resp.StepTitle)
	assert.Equal(t, commentModel.StatusActive, resp.Status)

	var stored commentModel.Comment
	require.NoError(t, f.db.First(&stored, resp.ID).Error)
	assert.Equal(t, f.tree.Course.ID, stored.CourseID)

	t.Run("not enrolled", func(t *testing.T) {
		_, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.outside, "hi")
		requireCode(t, err, response.Forbidden)
	})

	t.Run("course author", func(t *testing.T) {
		_, err := f.service.LeaveComment(ctx, f.tree.Step.ID, actorOf(f.tree.Author), "author here")
		require.NoError(t, err)
	})

	t.Run("missing step", func(t *testing.T) {
		_, err := f.service.LeaveComment(ctx, 9999, f.alice, "hi")
		requireCode(t, err, response.NotFound)
	})
}

func TestLeaveComment_FreeLesson(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	free := testutils.CreateTestLesson(f.db, f.tree.Course.ID, testutils.FreeLesson())
	step := testutils.CreateTestStep(f.db, free.ID)

	_, err := f.service.LeaveComment(ctx, step.ID, f.outside, "preview question")
	require.NoError(t, err)
}

func TestReplyNormalization(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	root, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.alice, "root")
	require.NoError(t, err)

	reply, err := f.service.ReplyToComment(ctx, root.ID, f.bob, "reply")
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	// 回复的回复仍挂在顶级评论下
	nested, err := f.service.ReplyToComment(ctx, reply.ID, f.alice, "reply to reply")
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, root.ID, *nested.ParentID)

	_, err = f.service.ReplyToComment(ctx, 9999, f.alice, "x")
	requireCode(t, err, response.NotFound)

	_, err = f.service.ReplyToComment(ctx, root.ID, f.outside, "x")
	requireCode(t, err, response.Forbidden)
}

func TestGetTreeOfComments(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()
	step := f.tree.Step

	first := testutils.CreateTestComment(f.db, step, f.tree.Course.ID, f.alice.ID, nil, "first")
	second := testutils.CreateTestComment(f.db, step, f.tree.Course.ID, f.bob.ID, nil, "second")
	r1 := testutils.CreateTestComment(f.db, step, f.tree.Course.ID, f.bob.ID, &first.ID, "r1")
	r2 := testutils.CreateTestComment(f.db, step, f.tree.Course.ID, f.alice.ID, &first.ID, "r2")
	// 父评论是回复而不是顶级评论，属于孤儿回复
	testutils.CreateTestComment(f.db, step, f.tree.Course.ID, f.alice.ID, &r1.ID, "orphan")

	// 固定时间保证排序稳定
	base := time.Now().Add(-time.Hour)
	for i, id := range []uint{first.ID, second.ID, r1.ID, r2.ID} {
		f.db.Model(&commentModel.Comment{}).Where("id = ?", id).Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}

	f.db.Create(&commentModel.Reaction{CommentID: first.ID, UserID: f.bob.ID, IsLike: true})
	f.db.Create(&commentModel.Reaction{CommentID: first.ID, UserID: f.admin.ID, IsLike: false})

	tree, err := f.service.GetTreeOfComments(ctx, step.ID, f.bob)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, first.ID, tree[0].ID)
	assert.Equal(t, second.ID, tree[1].ID)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, r1.ID, tree[0].Children[0].ID)
	assert.Equal(t, r2.ID, tree[0].Children[1].ID)
	assert.Empty(t, tree[1].Children)

	assert.Equal(t, int64(1), tree[0].LikesCount)
	assert.Equal(t, int64(1), tree[0].DislikesCount)
	assert.True(t, tree[0].IsLikedByMe)
	assert.False(t, tree[0].IsDislikedByMe)
	assert.False(t, tree[1].IsLikedByMe)

	_, err = f.service.GetTreeOfComments(ctx, step.ID, f.outside)
	requireCode(t, err, response.Forbidden)
}

func TestBuildTree_DropsOrphans(t *testing.T) {
	parent := uint(99)
	rows := []commentRow{
		{ID: 1, Content: "root"},
		{ID: 2, ParentID: &parent, Content: "orphan"},
	}
	roots, orphans := buildTree(rows)
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
	assert.Equal(t, 1, orphans)
}

func TestUpdateComment(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	c, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.alice, "before")
	require.NoError(t, err)

	content := "after"
	resp, err := f.service.UpdateComment(ctx, c.ID, f.alice, UpdateCommentRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "after", resp.Content)
	assert.True(t, resp.IsEdited)

	t.Run("other user", func(t *testing.T) {
		_, err := f.service.UpdateComment(ctx, c.ID, f.bob, UpdateCommentRequest{Content: &content})
		requireCode(t, err, response.Forbidden)
	})

	t.Run("admin", func(t *testing.T) {
		moderated := "moderated"
		resp, err := f.service.UpdateComment(ctx, c.ID, f.admin, UpdateCommentRequest{Content: &moderated})
		require.NoError(t, err)
		assert.Equal(t, "moderated", resp.Content)
	})

	t.Run("nil content keeps text", func(t *testing.T) {
		resp, err := f.service.UpdateComment(ctx, c.ID, f.alice, UpdateCommentRequest{})
		require.NoError(t, err)
		assert.Equal(t, "moderated", resp.Content)
		assert.True(t, resp.IsEdited)
	})

	t.Run("unchanged content still marks edited", func(t *testing.T) {
		fresh, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.bob, "same")
		require.NoError(t, err)
		require.False(t, fresh.IsEdited)

		same := "same"
		resp, err := f.service.UpdateComment(ctx, fresh.ID, f.bob, UpdateCommentRequest{Content: &same})
		require.NoError(t, err)
		assert.Equal(t, "same", resp.Content)
		assert.True(t, resp.IsEdited)

		resp, err = f.service.UpdateComment(ctx, fresh.ID, f.bob, UpdateCommentRequest{})
		require.NoError(t, err)
		assert.True(t, resp.IsEdited)
	})

	t.Run("deleted comment", func(t *testing.T) {
		require.NoError(t, f.service.SoftDeleteComment(ctx, c.ID, f.alice))
		_, err := f.service.UpdateComment(ctx, c.ID, f.alice, UpdateCommentRequest{Content: &content})
		requireCode(t, err, response.BadRequest)
	})
}

func TestSoftDeleteComment(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	root, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.alice, "root")
	require.NoError(t, err)
	_, err = f.service.ReplyToComment(ctx, root.ID, f.bob, "reply")
	require.NoError(t, err)

	requireCode(t, f.service.SoftDeleteComment(ctx, root.ID, f.bob), response.Forbidden)
	require.NoError(t, f.service.SoftDeleteComment(ctx, root.ID, f.alice))
	// 重复删除不报错
	require.NoError(t, f.service.SoftDeleteComment(ctx, root.ID, f.alice))

	tree, err := f.service.GetTreeOfComments(ctx, f.tree.Step.ID, f.alice)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.True(t, tree[0].IsDeleted)
	assert.Equal(t, commentModel.DeletedPlaceholder, tree[0].Content)
	assert.Len(t, tree[0].Children, 1)
}

func TestGetAllCourseComments(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	older, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.alice, "older")
	require.NoError(t, err)
	f.db.Model(&commentModel.Comment{}).Where("id = ?", older.ID).Update("created_at", time.Now().Add(-time.Hour))
	newer, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.bob, "newer")
	require.NoError(t, err)
	gone, err := f.service.LeaveComment(ctx, f.tree.Step.ID, f.bob, "gone")
	require.NoError(t, err)
	require.NoError(t, f.service.SoftDeleteComment(ctx, gone.ID, f.bob))

	items, err := f.service.GetAllCourseComments(ctx, f.tree.Course.ID, f.alice)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)

	_, err = f.service.GetAllCourseComments(ctx, f.tree.Course.ID, f.outside)
	requireCode(t, err, response.Forbidden)

	_, err = f.service.GetAllCourseComments(ctx, 9999, f.admin)
	requireCode(t, err, response.NotFound)
}
