package commands

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/car1bo/snowattach/internal/config"
)

// executeCommand runs the root command with the given args, capturing output.
// Flag state is reset afterwards so tests don't leak into each other.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	t.Setenv("NO_COLOR", "1")

	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)

	defer resetFlags()

	err = rootCmd.ExecuteContext(context.Background())

	return outBuf.String(), errBuf.String(), err
}

// resetFlags restores package-level flag variables to their defaults.
func resetFlags() {
	verbose = false
	quiet = false
	noColor = false
	configPath = ""
	instance = ""

	listJSON = false

	exportRecord = ""
	exportName = ""
	exportDest = ""
	exportOverwrite = false
	exportAppendID = false
	exportDryRun = false

	instanceCheck = false

	updatePreRelease = false
	updateCheckOnly = false
	updateYes = false
}

// setTestCredentials points the tool at a test server via the environment.
func setTestCredentials(t *testing.T, serverURL string) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("SNOWATTACH_INSTANCE", serverURL)
	t.Setenv("SNOWATTACH_USERNAME", "admin")
	t.Setenv("SNOWATTACH_PASSWORD", "secret")
	t.Setenv("SNOWATTACH_AUTH_MODE", "basic")
}

// newTestConfig ensures buildSession has a config to read when a command
// function is unit-tested outside the cobra lifecycle.
func newTestConfig(t *testing.T) {
	t.Helper()

	prev := cfg
	cfg = config.NewDefault()
	t.Cleanup(func() { cfg = prev })
}

// newAttachmentServer serves a fixed attachment listing, per-sys_id metadata,
// and file content. metaBody maps sys_id to a GetAttachment response.
func newAttachmentServer(t *testing.T, listBody string, metaBody map[string]string, fileContent []byte) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/now/attachment", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listBody))
	})
	mux.HandleFunc("/api/now/attachment/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/now/attachment/")
		if strings.HasSuffix(rest, "/file") {
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(fileContent)

			return
		}

		body, ok := metaBody[rest]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": {"message": "No Record found"}}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}
