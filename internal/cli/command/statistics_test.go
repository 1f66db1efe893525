package command

import (
	"net/http"
	"strings"
	"testing"

	"github.com/yndnr/examprep-go/internal/core/domain"
)

func sampleStatistics() domain.Statistics {
	return domain.Statistics{
		Subjects: []domain.ScorePoint{{Name: "Mathematics", Score: 80}, {Name: "Chemistry", Score: 70}},
		Progress: []domain.ScorePoint{{Name: "Jan", Score: 60}, {Name: "Feb", Score: 75}},
		Accuracy: []domain.Share{{Name: "Correct", Value: 72}, {Name: "Incorrect", Value: 28}},
		TopStudents: []domain.TopStudent{
			{ID: "7", Name: "Bo", Score: 88, ExamsCompleted: 12},
			{ID: "3", Name: "Ada", Score: 95, ExamsCompleted: 20},
		},
	}
}

func TestStatistics(t *testing.T) {
	server := newMockServer(t)
	server.handle("GET /api/statistics", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, sampleStatistics())
	})
	env := newTestEnv(t, server)
	env.signIn(t, "Ada")

	if err := env.run("statistics"); err != nil {
		t.Fatalf("statistics: %v", err)
	}
	out := env.stdout.String()
	for _, w := range []string{"Performance by subject", "Average", "75%", "Progress over time", "Answer accuracy", "Top students"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
	if strings.Index(out, "Ada") > strings.Index(out, "Bo ") {
		t.Errorf("top students should be ranked by score:\n%s", out)
	}
}

func TestStatistics_Empty(t *testing.T) {
	server := newMockServer(t)
	server.handle("GET /api/statistics", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]any{})
	})
	env := newTestEnv(t, server)
	env.signIn(t, "Ada")

	if err := env.run("stats"); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if got := strings.Count(env.stdout.String(), "No data"); got != 4 {
		t.Errorf("want 4 empty sections, got %d:\n%s", got, env.stdout.String())
	}
}

func TestStatistics_ServerError(t *testing.T) {
	server := newMockServer(t)
	server.handle("GET /api/statistics", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	env := newTestEnv(t, server)
	env.signIn(t, "Ada")

	err := env.run("statistics")
	if !Reported(err) {
		t.Fatalf("err = %v, want reported", err)
	}
	if !strings.Contains(env.stderr.String(), "✗ API Error: Request failed with status 500") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout.String())
	}
}
