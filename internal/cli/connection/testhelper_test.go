package connection

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/yndnr/examprep-go/internal/cli/notify"
	"github.com/yndnr/examprep-go/internal/cli/session"
)

// recorder collects notifications for assertions.
type recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
}

func (r *recorder) all() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.got...)
}

// mockServer serves a fixed handler per "METHOD /path" and fails the test
// for anything else.
func mockServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// newTestClient returns a client on srvURL with a memory store and a recorder.
func newTestClient(t *testing.T, srvURL string, opts ...Option) (*Client, *session.MemoryStore, *recorder) {
	t.Helper()
	store := session.NewMemoryStore()
	rec := &recorder{}
	opts = append([]Option{WithNotifier(rec)}, opts...)
	return NewClient(srvURL, store, opts...), store, rec
}

func mustSet(t *testing.T, store session.Store, token, name string) {
	t.Helper()
	if err := store.Set(session.Session{Token: token, DisplayName: name}); err != nil {
		t.Fatalf("store.Set() error = %v", err)
	}
}
