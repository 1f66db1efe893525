package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter("exams", "exams list", "exams get", "login", "logout", "statistics", "login")

	tests := []struct {
		prefix string
		want   []string
	}{
		{"exams ", []string{"exams get", "exams list"}},
		{"log", []string{"login", "logout"}},
		{"st", []string{"statistics"}},
		{"ex", []string{"exams", "exams get", "exams list", "exit"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_IncludesBuiltins(t *testing.T) {
	cmds := NewCompleter().Commands()
	if len(cmds) != len(builtins) {
		t.Errorf("Commands() = %v", cmds)
	}
}
