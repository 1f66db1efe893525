package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yndnr/examprep-go/internal/cli/guard"
	"github.com/yndnr/examprep-go/internal/cli/session"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

func examServer(t *testing.T) *mockServer {
	t.Helper()
	server := newMockServer(t)
	server.handle("GET /api/exams", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			errorResponse(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		jsonResponse(w, http.StatusOK, sampleExams())
	})
	server.handle("GET /api/exams/2", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, sampleExams()[1])
	})
	return server
}

func TestExamsList(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all",
			args: nil,
			want: []string{"Algebra Basics", "Organic Chemistry", "Geometry"},
		},
		{
			name:    "search matches description",
			args:    []string{"--search", "ALGEBRA"},
			want:    []string{"Algebra Basics", "Geometry"},
			notWant: []string{"Organic Chemistry"},
		},
		{
			name:    "difficulty",
			args:    []string{"--difficulty", "Hard"},
			want:    []string{"Organic Chemistry"},
			notWant: []string{"Algebra Basics", "Geometry"},
		},
		{
			name:    "subject and category",
			args:    []string{"--subject", "mathematics", "--category", "Practice"},
			want:    []string{"Algebra Basics", "Geometry"},
			notWant: []string{"Organic Chemistry"},
		},
		{
			name: "no match",
			args: []string{"--search", "history"},
			want: []string{"No exams found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, examServer(t))
			env.signIn(t, "Ada")

			args := append([]string{"exams", "list"}, tt.args...)
			if err := env.run(args...); err != nil {
				t.Fatalf("exams list: %v", err)
			}
			out := env.stdout.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestExamsList_Wide(t *testing.T) {
	env := newTestEnv(t, examServer(t))
	env.signIn(t, "Ada")

	if err := env.run("exams", "list"); err != nil {
		t.Fatalf("exams list: %v", err)
	}
	if strings.Contains(env.stdout.String(), "PARTICIPANTS") {
		t.Error("narrow output should not show PARTICIPANTS")
	}

	env.stdout.Reset()
	if err := env.run("--wide", "exams", "list"); err != nil {
		t.Fatalf("exams list: %v", err)
	}
	for _, w := range []string{"PARTICIPANTS", "CATEGORY", "Linear equations"} {
		if !strings.Contains(env.stdout.String(), w) {
			t.Errorf("wide output missing %q", w)
		}
	}
}

func TestExamsList_JSON(t *testing.T) {
	env := newTestEnv(t, examServer(t))
	env.signIn(t, "Ada")

	if err := env.run("-o", "json", "exams", "list", "--difficulty", "easy"); err != nil {
		t.Fatalf("exams list: %v", err)
	}
	var exams []domain.Exam
	if err := json.Unmarshal(env.stdout.Bytes(), &exams); err != nil {
		t.Fatalf("decode: %v\n%s", err, env.stdout.String())
	}
	if len(exams) != 1 || exams[0].ID != "1" {
		t.Errorf("exams = %+v", exams)
	}
}

func TestExamsList_InvalidDifficulty(t *testing.T) {
	server := examServer(t)
	env := newTestEnv(t, server)
	env.signIn(t, "Ada")

	err := env.run("exams", "list", "--difficulty", "extreme")
	if !errors.Is(err, domain.ErrInvalidDifficulty) {
		t.Fatalf("err = %v, want ErrInvalidDifficulty", err)
	}
	if len(server.called()) != 0 {
		t.Errorf("no request expected, got %v", server.called())
	}
}

func TestExamsList_RequiresLogin(t *testing.T) {
	server := examServer(t)
	env := newTestEnv(t, server)

	err := env.run("exams", "list")
	if !errors.Is(err, guard.ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if len(server.called()) != 0 {
		t.Errorf("no request expected, got %v", server.called())
	}
	stderr := env.stderr.String()
	if !strings.Contains(stderr, "✗ Authentication Required: Please log in to access this page") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, LoginHint) {
		t.Errorf("stderr missing login hint: %q", stderr)
	}
}

func TestExamsList_SessionExpired(t *testing.T) {
	server := examServer(t)
	env := newTestEnv(t, server)
	if err := env.store.Set(session.Session{Token: "stale", DisplayName: "Ada"}); err != nil {
		t.Fatal(err)
	}

	err := env.run("exams", "list")
	if !Reported(err) {
		t.Fatalf("err = %v, want reported", err)
	}
	if _, err := env.store.Get(); !errors.Is(err, session.ErrNoSession) {
		t.Errorf("session should be cleared, Get() err = %v", err)
	}
	stderr := env.stderr.String()
	if got := strings.Count(stderr, "✗ API Error: Session expired. Please log in again."); got != 1 {
		t.Errorf("expiry shown %d times, want 1:\n%s", got, stderr)
	}
	if !strings.Contains(stderr, LoginHint) {
		t.Errorf("stderr missing login hint: %q", stderr)
	}
}

func TestExamsGet(t *testing.T) {
	env := newTestEnv(t, examServer(t))
	env.signIn(t, "Ada")

	if err := env.run("exams", "get", "2"); err != nil {
		t.Fatalf("exams get: %v", err)
	}
	for _, w := range []string{"Organic Chemistry", "Reactions and mechanisms", "Participants"} {
		if !strings.Contains(env.stdout.String(), w) {
			t.Errorf("output missing %q:\n%s", w, env.stdout.String())
		}
	}

	env.stdout.Reset()
	if err := env.run("-o", "json", "exams", "get", "2"); err != nil {
		t.Fatalf("exams get: %v", err)
	}
	var exam domain.Exam
	if err := json.Unmarshal(env.stdout.Bytes(), &exam); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if exam.Title != "Organic Chemistry" {
		t.Errorf("exam = %+v", exam)
	}
}

func TestExamsGet_MissingID(t *testing.T) {
	env := newTestEnv(t, examServer(t))
	env.signIn(t, "Ada")

	if err := env.run("exams", "get"); err == nil || Reported(err) {
		t.Errorf("err = %v, want unreported usage error", err)
	}
}
