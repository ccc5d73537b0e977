package notification

import (
	"context"
	"strings"
	"testing"

	"terminal-terrace/course-platform/packages/logger"
	"terminal-terrace/course-platform/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendNotification_PersistThenPush(t *testing.T) {
	store, _ := setupStore(t)
	sender := &recordingSender{}
	svc := NewNotificationService(store, sender, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SendNotification(ctx, 7, PurchaseSucceeded(3, "Go 101", 11)))

	data, err := svc.GetData(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 1, data.TotalCount)
	assert.Equal(t, int64(1), data.UnreadCount)

	stored := data.Notifications[0]
	assert.NotEmpty(t, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
	payload, ok := stored.AsPurchaseSucceeded()
	require.True(t, ok)
	assert.Equal(t, PurchaseSucceededData{CourseID: 3, CourseTitle: "Go 101", PurchaseID: 11}, payload)

	// 离线用户也会写入，推送只是尽力而为
	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, uint(7), msgs[0].userID)
	live, ok := msgs[0].payload.(LiveMessage)
	require.True(t, ok)
	assert.Equal(t, stored.ID, live.Notification.ID)
	assert.Equal(t, int64(1), live.UnreadCount)
}

func TestMarkAsReadByID(t *testing.T) {
	store, _ := setupStore(t)
	svc := NewNotificationService(store, nil, logger.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SendNotification(ctx, 1, NewLike("bob", 2, 5, "hi")))
	data, err := svc.GetData(ctx, 1)
	require.NoError(t, err)

	unread, err := svc.MarkAsReadByID(ctx, 1, data.Notifications[0].ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	_, err = svc.MarkAsReadByID(ctx, 1, "missing")
	var be *response.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, response.NotFound, be.Code)
}

func TestRetentionWithPartialReads(t *testing.T) {
	store, _ := setupStore(t)
	svc := NewNotificationService(store, nil, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, svc.SendNotification(ctx, 1, NewLike("bob", 2, uint(i), "text")))
	}

	data, err := svc.GetData(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 20, data.TotalCount)

	for _, n := range data.Notifications[:3] {
		_, err := svc.MarkAsReadByID(ctx, 1, n.ID)
		require.NoError(t, err)
	}

	data, err = svc.GetData(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(22), data.UnreadCount)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))
	exact := strings.Repeat("я", 50)
	assert.Equal(t, exact, Preview(exact))
	assert.Equal(t, strings.Repeat("я", 50)+"...", Preview(strings.Repeat("я", 51)))

	n := NewLike("alice", 1, 2, strings.Repeat("a", 80))
	data, ok := n.AsNewLike()
	require.True(t, ok)
	assert.Len(t, data.CommentText, 53)

	_, ok = n.AsPurchaseSucceeded()
	assert.False(t, ok)
}
