package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer) Logger {
	t.Helper()
	l, err := New(Config{Level: "info", Format: "json", Output: buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestRedactSensitive_BearerHeader(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("request", "header", "Bearer abcdefghijklmnop")

	got := decodeEntry(t, &buf)["header"]
	if got != "Bearer abc...nop" {
		t.Errorf("header = %v, want %q", got, "Bearer abc...nop")
	}
}

func TestRedactSensitive_JWTValue(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	jwt := "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig123"
	l.Info("login", "value", jwt)

	got := decodeEntry(t, &buf)["value"]
	if got == jwt {
		t.Fatal("JWT should be masked")
	}
	if got != "eyJ...123" {
		t.Errorf("value = %v, want %q", got, "eyJ...123")
	}
}

func TestRedactSensitive_SensitiveKeyName(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	tests := []struct {
		key   string
		value string
	}{
		{"password", "hunter2"},
		{"user_password", "hunter2"},
		{"auth_token", "demo-token"},
		{"Authorization", "Token xyz"},
		{"credential", "cred123"},
		{"cookie", "sid=1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			buf.Reset()
			l.Info("test", tt.key, tt.value)

			if got := decodeEntry(t, &buf)[tt.key]; got != redactedValue {
				t.Errorf("%s = %v, want %q", tt.key, got, redactedValue)
			}
		})
	}
}

func TestRedactSensitive_EmptySensitiveValueKept(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("test", "token", "")

	if got := decodeEntry(t, &buf)["token"]; got != "" {
		t.Errorf("token = %v, want empty", got)
	}
}

func TestRedactSensitive_NormalValues(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	l.Info("request", "endpoint", "/exams", "status", 200, "user", "A")

	entry := decodeEntry(t, &buf)
	if entry["endpoint"] != "/exams" {
		t.Errorf("endpoint = %v", entry["endpoint"])
	}
	if entry["user"] != "A" {
		t.Errorf("user = %v", entry["user"])
	}
}

func TestRedactSensitive_Group(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(t, &buf)

	Slog(l).Info("grouped", slog.Group("creds", "password", "pw", "email", "a@b.com"))
	entry := decodeEntry(t, &buf)
	creds, ok := entry["creds"].(map[string]any)
	if !ok {
		t.Fatalf("creds group missing: %v", entry)
	}
	if creds["password"] != redactedValue {
		t.Errorf("creds.password = %v", creds["password"])
	}
	if creds["email"] != "a@b.com" {
		t.Errorf("creds.email = %v", creds["email"])
	}
}

func TestRedactString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bearer abcdefghijklmnop", "Bearer abc...nop"},
		{"Bearer short", "Bearer ***"},
		{"eyJabcdefghij", "eyJ...hij"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := RedactString(tt.input); got != tt.want {
			t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"password", true},
		{"PASSWORD", true},
		{"authToken", true},
		{"authorization", true},
		{"client_secret", true},
		{"email", false},
		{"endpoint", false},
		{"userName", false},
	}

	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestIsSensitiveValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Bearer t1", true},
		{"eyJhbGciOi", true},
		{"bearer lowercase", false},
		{"t1", false},
	}

	for _, tt := range tests {
		if got := IsSensitiveValue(tt.value); got != tt.want {
			t.Errorf("IsSensitiveValue(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestMaskValue(t *testing.T) {
	tests := []struct {
		value, prefix, want string
	}{
		{"Bearer ABCDEFGHIJ", "Bearer ", "Bearer ABC...HIJ"},
		{"Bearer ABCDEF", "Bearer ", "Bearer ***"},
		{"ABCDEFGH", "", "ABC...FGH"},
	}

	for _, tt := range tests {
		if got := maskValue(tt.value, tt.prefix); got != tt.want {
			t.Errorf("maskValue(%q, %q) = %q, want %q", tt.value, tt.prefix, got, tt.want)
		}
	}
}
