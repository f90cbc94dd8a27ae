package widget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagehits/counthub/pkg/client"
)

// fakeBackend implements the counter API over a map.
type fakeBackend struct {
	mu       sync.Mutex
	counts   map[string]int64
	posts    int
	failPost bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{counts: make(map[string]int64)}
}

func (b *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		var name string
		switch r.Method {
		case http.MethodGet:
			name = r.URL.Query().Get("counterName")
			if _, ok := b.counts[name]; !ok {
				b.counts[name] = 0
			}
		case http.MethodPost:
			b.posts++
			if b.failPost {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]interface{}{"code": 500, "message": "store unavailable"})
				return
			}
			var req struct {
				Action      string `json:"action"`
				CounterName string `json:"counterName"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			name = req.CounterName
			switch req.Action {
			case "increment":
				b.counts[name]++
			case "reset":
				b.counts[name] = 0
			}
		}
		json.NewEncoder(w).Encode(client.Counter{Name: name, Count: b.counts[name]})
	})
}

func (b *fakeBackend) postCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.posts
}

func (b *fakeBackend) count(name string) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[name]
}

// recordingRenderer captures render calls in order.
type recordingRenderer struct {
	mu     sync.Mutex
	events []string
	counts []int64
}

func (r *recordingRenderer) RenderPlaceholder() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "placeholder")
}

func (r *recordingRenderer) RenderCount(count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "count")
	r.counts = append(r.counts, count)
}

func (r *recordingRenderer) RenderError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "error")
}

func (r *recordingRenderer) snapshot() ([]string, []int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), append([]int64(nil), r.counts...)
}

func newTestWidget(t *testing.T, backend *fakeBackend, opts Options) (*Controller, *recordingRenderer, *client.CachedClient) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api := client.NewAPIClient(srv.URL, srv.Client())
	cc := client.NewCachedClient(api, client.NewMemoryStore(), client.NewMemoryStore(), 0, nil)
	renderer := &recordingRenderer{}
	w := NewController(cc, renderer, opts)
	t.Cleanup(w.Close)
	return w, renderer, cc
}

func TestActivate_RendersPlaceholderThenCount(t *testing.T) {
	backend := newFakeBackend()
	w, renderer, _ := newTestWidget(t, backend, Options{Name: "home", IncrementDelay: time.Hour})

	w.Activate(context.Background())

	events, counts := renderer.snapshot()
	assert.Equal(t, []string{"placeholder", "count"}, events)
	assert.Equal(t, []int64{0}, counts)
	assert.Equal(t, StateDisplayed, w.State())
	assert.EqualValues(t, 0, w.Count())
}

func TestActivate_SchedulesSingleIncrement(t *testing.T) {
	backend := newFakeBackend()
	done := make(chan *client.Counter, 1)
	w, renderer, cc := newTestWidget(t, backend, Options{
		Name:            "home",
		IncrementDelay:  10 * time.Millisecond,
		OnAutoIncrement: func(c *client.Counter) { done <- c },
	})
	ctx := context.Background()

	w.Activate(ctx)

	select {
	case counter := <-done:
		require.NotNil(t, counter)
		assert.EqualValues(t, 1, counter.Count)
	case <-time.After(2 * time.Second):
		t.Fatal("auto increment did not fire")
	}

	assert.EqualValues(t, 1, backend.count("home"))
	assert.True(t, cc.HasVisited(ctx, "home"))
	assert.EqualValues(t, 1, w.Count())

	_, counts := renderer.snapshot()
	assert.Equal(t, []int64{0, 1}, counts)
}

func TestActivate_AlreadyVisited_NoIncrement(t *testing.T) {
	backend := newFakeBackend()
	w, _, cc := newTestWidget(t, backend, Options{Name: "home", IncrementDelay: 10 * time.Millisecond})
	ctx := context.Background()

	cc.MarkVisited(ctx, "home")
	w.Activate(ctx)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, backend.postCount())
	assert.EqualValues(t, 0, backend.count("home"))
}

func TestAutoIncrementFailure_DoesNotMarkVisited(t *testing.T) {
	backend := newFakeBackend()
	backend.failPost = true
	done := make(chan *client.Counter, 1)
	w, _, cc := newTestWidget(t, backend, Options{
		Name:            "home",
		IncrementDelay:  10 * time.Millisecond,
		OnAutoIncrement: func(c *client.Counter) { done <- c },
	})
	ctx := context.Background()

	w.Activate(ctx)

	select {
	case counter := <-done:
		assert.Nil(t, counter)
	case <-time.After(2 * time.Second):
		t.Fatal("auto increment did not fire")
	}

	// A later activation in the same session may retry.
	assert.False(t, cc.HasVisited(ctx, "home"))
}

func TestClose_CancelsPendingIncrement(t *testing.T) {
	backend := newFakeBackend()
	w, _, _ := newTestWidget(t, backend, Options{Name: "home", IncrementDelay: time.Hour})

	w.Activate(context.Background())
	w.Close()

	assert.Equal(t, 0, backend.postCount())
	assert.EqualValues(t, 0, backend.count("home"))
}

func TestActivate_TransportFailure_RendersError(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	api := client.NewAPIClient(srv.URL, srv.Client())
	cc := client.NewCachedClient(api, client.NewMemoryStore(), client.NewMemoryStore(), 0, nil)
	renderer := &recordingRenderer{}
	w := NewController(cc, renderer, Options{Name: "home"})
	defer w.Close()
	srv.Close()

	w.Activate(context.Background())

	events, _ := renderer.snapshot()
	assert.Equal(t, []string{"placeholder", "error"}, events)
	assert.Equal(t, StateError, w.State())
}

func TestImperativeOps_BypassSessionPolicy(t *testing.T) {
	backend := newFakeBackend()
	w, _, cc := newTestWidget(t, backend, Options{Name: "home", IncrementDelay: time.Hour})
	ctx := context.Background()

	cc.MarkVisited(ctx, "home")

	counter := w.Increment(ctx)
	require.NotNil(t, counter)
	assert.EqualValues(t, 1, counter.Count)

	counter = w.Increment(ctx)
	require.NotNil(t, counter)
	assert.EqualValues(t, 2, counter.Count)

	counter = w.Reset(ctx)
	require.NotNil(t, counter)
	assert.EqualValues(t, 0, counter.Count)
	assert.Equal(t, StateDisplayed, w.State())
	assert.EqualValues(t, 0, w.Count())
}

func TestRefresh_ServedFromCacheWithinTTL(t *testing.T) {
	backend := newFakeBackend()
	w, renderer, _ := newTestWidget(t, backend, Options{Name: "home", IncrementDelay: time.Hour})
	ctx := context.Background()

	w.Activate(ctx)
	w.Refresh(ctx)

	_, counts := renderer.snapshot()
	assert.Equal(t, []int64{0, 0}, counts)
	assert.Equal(t, StateDisplayed, w.State())
}

func TestClearCache_NextRefreshHitsNetwork(t *testing.T) {
	backend := newFakeBackend()
	w, renderer, _ := newTestWidget(t, backend, Options{Name: "home", IncrementDelay: time.Hour})
	ctx := context.Background()

	w.Activate(ctx)

	// Mutate server-side behind the cache's back.
	backend.mu.Lock()
	backend.counts["home"] = 41
	backend.mu.Unlock()

	w.Refresh(ctx)
	w.ClearCache(ctx)
	w.Refresh(ctx)

	_, counts := renderer.snapshot()
	assert.Equal(t, []int64{0, 0, 41}, counts)
}
