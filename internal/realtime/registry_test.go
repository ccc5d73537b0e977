package realtime

import (
	"sync"
	"testing"

	"terminal-terrace/course-platform/packages/logger"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	mu       sync.Mutex
	capacity int
	queue    []any
	closed   bool
}

func newFakeClient(capacity int) *fakeClient {
	return &fakeClient{capacity: capacity}
}

func (f *fakeClient) Enqueue(payload any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || len(f.queue) >= f.capacity {
		return false
	}
	f.queue = append(f.queue, payload)
	return true
}

func (f *fakeClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeClient) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func TestRegistry_SendOffline(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	assert.False(t, r.Send(1, "hello"))
	assert.False(t, r.Online(1))
}

func TestRegistry_LastConnectionWins(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	first := newFakeClient(4)
	second := newFakeClient(4)

	r.Connect(1, first)
	r.Connect(1, second)
	assert.True(t, first.isClosed())
	assert.Equal(t, 1, r.Count())

	assert.True(t, r.Send(1, "hello"))
	assert.Empty(t, first.queue)
	assert.Equal(t, []any{"hello"}, second.queue)

	// 旧连接断开不影响新连接
	r.Disconnect(1, first)
	assert.True(t, r.Online(1))

	r.Disconnect(1, second)
	assert.False(t, r.Online(1))
}

func TestRegistry_DropWhenFull(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	c := newFakeClient(1)
	r.Connect(1, c)

	assert.True(t, r.Send(1, "a"))
	assert.False(t, r.Send(1, "b"))
	assert.Equal(t, []any{"a"}, c.queue)
}

func TestRegistry_CloseAll(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	a, b := newFakeClient(1), newFakeClient(1)
	r.Connect(1, a)
	r.Connect(2, b)

	r.CloseAll()
	assert.True(t, a.isClosed())
	assert.True(t, b.isClosed())
	assert.Zero(t, r.Count())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(logger.NewNop())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			c := newFakeClient(8)
			r.Connect(id%5, c)
			r.Send(id%5, id)
			r.Disconnect(id%5, c)
		}(uint(i))
	}
	wg.Wait()
	assert.Zero(t, r.Count())
}
