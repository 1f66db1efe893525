package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/yndnr/examprep-go/internal/cli/session"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// mockServer is a test API keyed by "METHOD /path".
type mockServer struct {
	*httptest.Server
	handlers map[string]http.HandlerFunc

	mu    sync.Mutex
	calls []string
}

func newMockServer(t *testing.T) *mockServer {
	t.Helper()
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		m.mu.Lock()
		m.calls = append(m.calls, key)
		m.mu.Unlock()
		if h, ok := m.handlers[key]; ok {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockServer) handle(pattern string, handler http.HandlerFunc) {
	m.handlers[pattern] = handler
}

func (m *mockServer) called() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// apiURL is the base URL clients under test use.
func (m *mockServer) apiURL() string {
	return m.URL + "/api"
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"message": message})
}

// testEnv is an app with a preset runtime backed by a memory store.
type testEnv struct {
	rt     *Runtime
	store  *session.MemoryStore
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T, server *mockServer) *testEnv {
	t.Helper()
	env := &testEnv{
		store:  session.NewMemoryStore(),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	overrides := map[string]any{}
	if server != nil {
		overrides["api.url"] = server.apiURL()
	}
	rt, err := NewRuntime(RuntimeOptions{
		ConfigPath: filepath.Join(t.TempDir(), "cli.yaml"),
		Overrides:  overrides,
		Stderr:     env.stderr,
		Store:      env.store,
	})
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	env.rt = rt
	return env
}

// run executes one command line against the shared runtime.
func (e *testEnv) run(args ...string) error {
	app := WithRuntime(App(), e.rt)
	app.Writer = e.stdout
	app.ErrWriter = e.stderr
	app.Reader = &bytes.Buffer{}
	return app.RunContext(context.Background(), append([]string{"examprep-cli"}, args...))
}

func (e *testEnv) signIn(t *testing.T, name string) {
	t.Helper()
	if err := e.store.Set(session.Session{Token: "tok-123", DisplayName: name}); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func sampleExams() []domain.Exam {
	return []domain.Exam{
		{ID: "1", Title: "Algebra Basics", Description: "Linear equations", Subject: "Mathematics",
			Difficulty: domain.DifficultyEasy, Duration: "30 min", Questions: 20, Participants: 120, Category: "Practice"},
		{ID: "2", Title: "Organic Chemistry", Description: "Reactions and mechanisms", Subject: "Chemistry",
			Difficulty: domain.DifficultyHard, Duration: "60 min", Questions: 40, Participants: 45, Category: "Mock"},
		{ID: "3", Title: "Geometry", Description: "Angles and algebraic proofs", Subject: "Mathematics",
			Difficulty: domain.DifficultyMedium, Duration: "45 min", Questions: 25, Participants: 80, Category: "Practice"},
	}
}
