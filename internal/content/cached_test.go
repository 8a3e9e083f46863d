package content

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingService struct {
	*StaticService
	photoLists   atomic.Int32
	messageLists atomic.Int32
	gate         chan struct{}
	failPhotos   error
}

func (s *countingService) ListPhotos(ctx context.Context, token string) ([]Photo, error) {
	s.photoLists.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	if s.failPhotos != nil {
		return nil, s.failPhotos
	}
	return s.StaticService.ListPhotos(ctx, token)
}

func (s *countingService) ListMessages(ctx context.Context, token string) ([]Message, error) {
	s.messageLists.Add(1)
	return s.StaticService.ListMessages(ctx, token)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCachedServiceServesFromCacheUntilExpiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	backend := &countingService{StaticService: NewStaticService(WithClock(clock.Now))}
	svc := NewCachedService(backend, time.Minute, WithCacheClock(clock.Now))
	ctx := context.Background()

	first, err := svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	second, err := svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, backend.photoLists.Load())

	clock.Advance(2 * time.Minute)
	_, err = svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	require.EqualValues(t, 2, backend.photoLists.Load())
}

func TestCachedServiceReturnsCopies(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := NewCachedService(NewStaticService(), time.Minute)
	ctx := context.Background()

	photos, err := svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, photos)
	photos[0].Title = "mutated"

	again, err := svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	require.NotEqual(t, "mutated", again[0].Title)

	photo, err := svc.GetPhoto(ctx, "", "42")
	require.NoError(t, err)
	photo.Caption = "mutated"

	photo, err = svc.GetPhoto(ctx, "", "42")
	require.NoError(t, err)
	require.NotEqual(t, "mutated", photo.Caption)
}

func TestCachedServiceSharesConcurrentLoads(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &countingService{StaticService: NewStaticService(), gate: make(chan struct{})}
	svc := NewCachedService(backend, time.Minute)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]Photo, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ListPhotos(ctx, "")
		}(i)
	}

	require.Eventually(t, func() bool { return backend.photoLists.Load() == 1 }, time.Second, time.Millisecond)
	close(backend.gate)
	wg.Wait()

	require.EqualValues(t, 1, backend.photoLists.Load())
	for i, photos := range results {
		require.NoError(t, errs[i])
		require.Len(t, photos, 3)
	}
}

func TestCachedServiceDoesNotCacheErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &countingService{StaticService: NewStaticService(), failPhotos: errors.New("backend down")}
	svc := NewCachedService(backend, time.Minute)
	ctx := context.Background()

	_, err := svc.ListPhotos(ctx, "")
	require.EqualError(t, err, "backend down")

	backend.failPhotos = nil
	photos, err := svc.ListPhotos(ctx, "")
	require.NoError(t, err)
	require.Len(t, photos, 3)
	require.EqualValues(t, 2, backend.photoLists.Load())
}

func TestCachedServiceMutationsInvalidateInbox(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &countingService{StaticService: NewStaticService()}
	svc := NewCachedService(backend, time.Minute)
	ctx := context.Background()

	messages, err := svc.ListMessages(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, 2, UnreadCount(messages))

	msg, err := svc.GetMessage(ctx, "token", "m-3")
	require.NoError(t, err)
	require.False(t, msg.Read)

	_, err = svc.MarkMessageRead(ctx, "token", "m-3")
	require.NoError(t, err)

	msg, err = svc.GetMessage(ctx, "token", "m-3")
	require.NoError(t, err)
	require.True(t, msg.Read)

	messages, err = svc.ListMessages(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, 1, UnreadCount(messages))
	require.EqualValues(t, 2, backend.messageLists.Load())

	require.NoError(t, svc.DeleteMessage(ctx, "token", "m-3"))
	_, err = svc.GetMessage(ctx, "token", "m-3")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SubmitContact(ctx, ContactSubmission{Name: "Ana", Email: "ana@example.com", Body: "Hello"})
	require.NoError(t, err)
	messages, err = svc.ListMessages(ctx, "token")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.EqualValues(t, 3, backend.messageLists.Load())
}

type perTokenInbox struct {
	*StaticService
}

func (perTokenInbox) ListMessages(_ context.Context, token string) ([]Message, error) {
	return []Message{{ID: "for-" + token, Name: token}}, nil
}

func TestCachedServiceScopesEntriesByToken(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := NewCachedService(perTokenInbox{StaticService: NewStaticService()}, time.Minute)
	ctx := context.Background()

	alice, err := svc.ListMessages(ctx, "alice")
	require.NoError(t, err)
	bob, err := svc.ListMessages(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "for-alice", alice[0].ID)
	require.Equal(t, "for-bob", bob[0].ID)

	alice, err = svc.ListMessages(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "for-alice", alice[0].ID)
}

func TestCachedServiceInvalidatesEveryTokenScope(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &countingService{StaticService: NewStaticService()}
	svc := NewCachedService(backend, time.Minute)
	ctx := context.Background()

	for _, token := range []string{"alice", "bob", "alice", "bob"} {
		_, err := svc.ListMessages(ctx, token)
		require.NoError(t, err)
	}
	require.EqualValues(t, 2, backend.messageLists.Load())

	_, err := svc.MarkMessageRead(ctx, "alice", "m-3")
	require.NoError(t, err)

	messages, err := svc.ListMessages(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, 1, UnreadCount(messages))
	require.EqualValues(t, 3, backend.messageLists.Load())
}

func TestCachedServiceHonoursCallerCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	backend := &countingService{StaticService: NewStaticService(), gate: make(chan struct{})}
	svc := NewCachedService(backend, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.ListPhotos(ctx, "")
		done <- err
	}()

	require.Eventually(t, func() bool { return backend.photoLists.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	close(backend.gate)
	photos, err := svc.ListPhotos(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, photos, 3)
}

func TestOpenSelectsBackend(t *testing.T) {
	svc, err := Open(Options{})
	require.NoError(t, err)
	cached, ok := svc.(*CachedService)
	require.True(t, ok)
	require.IsType(t, &StaticService{}, cached.next)

	svc, err = Open(Options{BaseURL: "https://backend.example.com/api", Timeout: time.Second})
	require.NoError(t, err)
	require.IsType(t, &HTTPService{}, svc.(*CachedService).next)

	_, err = Open(Options{BaseURL: "://bad"})
	require.Error(t, err)
}
