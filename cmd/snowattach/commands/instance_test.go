package commands

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInstanceCommand_Properties(t *testing.T) {
	if instanceCmd.Use != "instance" {
		t.Errorf("Use = %q, want %q", instanceCmd.Use, "instance")
	}

	if instanceCmd.Short == "" {
		t.Error("Short description is empty")
	}

	if instanceCmd.RunE == nil {
		t.Error("RunE not set")
	}

	flag := instanceCmd.Flags().Lookup("check")
	if flag == nil {
		t.Fatal("flag \"check\" not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("flag \"check\" default value = %q, want %q", flag.DefValue, "false")
	}
}

func TestInstanceCommand_ShowsConnection(t *testing.T) {
	server := newAttachmentServer(t, `{"result": []}`, nil, nil)
	setTestCredentials(t, server.URL)

	stdout, _, err := executeCommand(t, "instance")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	for _, want := range []string{"Instance:", "Base URL:", "Auth:", "basic", "admin"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, stdout)
		}
	}

	if strings.Contains(stdout, "secret") {
		t.Errorf("output leaks the password:\n%s", stdout)
	}
}

func TestInstanceCommand_Check(t *testing.T) {
	server := newAttachmentServer(t, `{"result": []}`, nil, nil)
	setTestCredentials(t, server.URL)

	stdout, _, err := executeCommand(t, "instance", "--check")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !strings.Contains(stdout, "connection OK") {
		t.Errorf("expected connection confirmation, got:\n%s", stdout)
	}
}

func TestInstanceCommand_CheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "User Not Authenticated"}}`))
	}))
	t.Cleanup(server.Close)
	setTestCredentials(t, server.URL)

	stdout, _, err := executeCommand(t, "instance", "--check")
	if err == nil {
		t.Fatal("expected error for unauthorized check")
	}

	if !strings.Contains(stdout, "connection check failed") {
		t.Errorf("expected failure report, got:\n%s", stdout)
	}
}

func TestInstanceCommand_NoInstance(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SNOWATTACH_INSTANCE", "")
	t.Setenv("SERVICENOW_INSTANCE", "")
	t.Setenv("SNOW_INSTANCE", "")

	_, stderr, err := executeCommand(t, "instance")
	if err == nil {
		t.Fatal("expected error without an instance")
	}

	if !strings.Contains(stderr, "instance") {
		t.Errorf("expected instance guidance on stderr, got:\n%s", stderr)
	}
}
