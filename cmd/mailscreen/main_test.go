package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optimode/mailscreen"
)

// dohServer answers MX queries for example.com only.
func dohServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "example.com" {
			_, _ = w.Write([]byte(`{"Status":0,"Answer":[{"data":"10 mx.example.com."}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"Status":3}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	srv := dohServer(t)
	base := []string{"--dns-endpoint", srv.URL, "--log-output", "none", "--env-file", ""}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append(base, args...), strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Verify(t *testing.T) {
	code, out, _ := runCLI(t, "", "verify", "user@example.com")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Valid email\n", out)

	code, out, _ = runCLI(t, "", "verify", "user@example.org")
	assert.Equal(t, exitRejected, code)
	assert.Equal(t, "Domain has no mail server or not found\n", out)

	code, out, _ = runCLI(t, "", "verify", "webmaster@example.com")
	assert.Equal(t, exitRejected, code)
	assert.Equal(t, "Role-based address flagged\n", out)
}

func TestRun_VerifyMissingInput(t *testing.T) {
	code, _, errOut := runCLI(t, "", "verify", "   ")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "Please enter an email address.")
}

func TestRun_BulkFromStdin(t *testing.T) {
	code, out, _ := runCLI(t, "bad\nadmin@x.com\r\n\nuser@example.com\n", "bulk")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "bad: Invalid format\nadmin@x.com: Role-based address flagged\nuser@example.com: Valid email\n", out)
}

func TestRun_BulkFromFileAsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("user@example.com\nuser@yopmail.com\n"), 0o600))

	code, out, _ := runCLI(t, "", "--json", "bulk", path)
	require.Equal(t, exitOK, code)

	var report mailscreen.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, 2, report.Len())
	assert.Equal(t, mailscreen.Verified, report.Entries[0].Kind)
	assert.Equal(t, "disposable domain blocked", report.Entries[1].Reason)
}

func TestRun_BulkMissingInput(t *testing.T) {
	code, out, errOut := runCLI(t, "\n \n", "bulk")
	assert.Equal(t, exitUsage, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Please paste some email addresses.")
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "", "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "usage:")
}

func TestRun_BulkCancelled(t *testing.T) {
	srv := dohServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"--dns-endpoint", srv.URL, "--log-output", "none", "--env-file", "", "bulk"},
		strings.NewReader("user@example.com\n"), &stdout, &stderr)
	assert.Equal(t, exitCancelled, code)
	assert.Contains(t, stderr.String(), "cancelled after 0 line(s)")
}
