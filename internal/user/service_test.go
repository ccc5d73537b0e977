package user

import (
	"context"
	"testing"
	"time"

	"terminal-terrace/course-platform/internal/model/user"
	"terminal-terrace/course-platform/internal/permission"
	"terminal-terrace/course-platform/internal/testutils"
	"terminal-terrace/course-platform/packages/authsdk"
	"terminal-terrace/course-platform/packages/email"
	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "user-test-secret"

type fakeMailer struct {
	sent chan string
}

func (m *fakeMailer) SendWelcome(to string, _ email.WelcomeData) error {
	m.sent <- to
	return nil
}

func setupUserService(t *testing.T) (*UserService, *gorm.DB, *fakeMailer) {
	db := testutils.SetupTestDB(t)
	mailer := &fakeMailer{sent: make(chan string, 4)}
	svc := NewUserService(NewUserRepository(db), TokenConfig{Secret: testSecret, TTL: time.Hour}, mailer, logger.NewNop())
	return svc, db, mailer
}

func requireCode(t *testing.T, err error, code response.ResponseCode) {
	t.Helper()
	var be *response.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, code, be.Code)
}

func TestRegister(t *testing.T) {
	svc, db, mailer := setupUserService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Username: "new_user",
		Email:    "new_user@example.com",
		FullName: "New User",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, resp.Role)
	assert.True(t, resp.IsActive)

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "new_user@example.com", to)
	case <-time.After(time.Second):
		t.Fatal("welcome email was not sent")
	}

	var stored user.User
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Username: "new_user", Email: "other@example.com", Password: "secret1"})
		requireCode(t, err, response.Conflict)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Username: "other_user", Email: "new_user@example.com", Password: "secret1"})
		requireCode(t, err, response.Conflict)
	})

	t.Run("invalid username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Username: "bad-name", Email: "bad@example.com", Password: "secret1"})
		requireCode(t, err, response.BadRequest)
	})
}

func TestLogin(t *testing.T) {
	svc, db, _ := setupUserService(t)
	ctx := context.Background()

	u := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAuthor))
	disabled := testutils.CreateTestUser(db, testutils.Inactive())

	t.Run("by username", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Account: u.Username, Password: testutils.TestPassword})
		require.NoError(t, err)

		claims, err := authsdk.ParseToken(resp.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, "author", claims.Role)
		assert.Equal(t, int64(3600), resp.ExpiresIn)
	})

	t.Run("by email", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Account: u.Email, Password: testutils.TestPassword})
		require.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Account: u.Username, Password: "wrong"})
		requireCode(t, err, response.Unauthorized)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Account: "nobody", Password: "wrong"})
		requireCode(t, err, response.Unauthorized)
	})

	t.Run("inactive", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Account: disabled.Username, Password: testutils.TestPassword})
		requireCode(t, err, response.Forbidden)
	})
}

func TestUpdateRole(t *testing.T) {
	svc, db, _ := setupUserService(t)
	ctx := context.Background()

	admin := testutils.CreateTestUser(db, testutils.WithRole(user.RoleAdmin))
	target := testutils.CreateTestUser(db)

	_, err := svc.UpdateRole(ctx, permission.Actor{ID: target.ID, Role: user.RoleUser}, target.ID, user.RoleAdmin)
	requireCode(t, err, response.Forbidden)

	resp, err := svc.UpdateRole(ctx, permission.Actor{ID: admin.ID, Role: user.RoleAdmin}, target.ID, user.RoleAuthor)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAuthor, resp.Role)

	me, err := svc.Me(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAuthor, me.Role)

	_, err = svc.UpdateRole(ctx, permission.Actor{ID: admin.ID, Role: user.RoleAdmin}, 9999, user.RoleAuthor)
	requireCode(t, err, response.NotFound)
}
