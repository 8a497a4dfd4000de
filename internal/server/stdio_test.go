package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/internal/server"
	"github.com/yaklabco/lintbridge/pkg/document"
	"github.com/yaklabco/lintbridge/pkg/engine"
)

// newConnOptions builds hermetic handler options for a temp workspace.
func newConnOptions(t *testing.T) (server.Options, string) {
	t.Helper()

	root := t.TempDir()
	engineDir := filepath.Join(root, "lint_modules", "quicklint")
	require.NoError(t, os.MkdirAll(engineDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(engineDir, engine.ManifestFileName), []byte(modernManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".lintrc.yaml"), []byte(modernLintrc), 0o644))

	resolver := engine.NewResolver()
	resolver.UserRoot = filepath.Join(root, "no-user-root")
	resolver.SystemRoot = filepath.Join(root, "no-system-root")

	return server.Options{
		Engines: resolver,
		Logger:  logging.New("error"),
	}, root
}

func decodeLines(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()

	var messages []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		messages = append(messages, m)
	}
	return messages
}

func TestConn_Serve(t *testing.T) {
	t.Parallel()

	opts, root := newConnOptions(t)
	uri := document.URIFromPath(filepath.Join(root, "a.js"))

	requests := []map[string]any{
		{"id": 1, "method": "didOpen", "params": map[string]any{"uri": uri, "text": "var x = 1;", "version": 1}},
		{"id": 2, "method": "fixLint", "params": map[string]any{"uri": uri}},
		{"id": 3, "method": "didClose", "params": map[string]any{"uri": uri}},
	}

	var in bytes.Buffer
	enc := json.NewEncoder(&in)
	for _, req := range requests {
		require.NoError(t, enc.Encode(req))
	}

	var out bytes.Buffer
	conn := server.NewConn(&in, &out, opts)
	require.NoError(t, conn.Serve(context.Background()))

	messages := decodeLines(t, &out)

	var responses, events []map[string]any
	for _, m := range messages {
		if _, ok := m["id"]; ok {
			responses = append(responses, m)
		} else {
			events = append(events, m)
		}
	}

	require.Len(t, responses, 3)
	for _, resp := range responses {
		assert.NotContains(t, resp, "error")
	}

	// didOpen publishes the initial diagnostics, didClose clears them.
	require.Len(t, events, 2)
	assert.Equal(t, "publishDiagnostics", events[0]["method"])

	first := events[0]["params"].(map[string]any)
	assert.Equal(t, uri, first["uri"])
	assert.Len(t, first["diagnostics"], 1)

	last := events[1]["params"].(map[string]any)
	assert.Empty(t, last["diagnostics"])

	// The fix response carries the pinned version and one edit.
	fixResp := responses[1]
	result := fixResp["result"].(map[string]any)
	assert.Equal(t, float64(1), result["documentVersion"])
	assert.Len(t, result["edits"], 1)
}

func TestConn_MalformedLineSkipped(t *testing.T) {
	t.Parallel()

	opts, _ := newConnOptions(t)

	in := strings.NewReader("not json\n{\"id\":1,\"method\":\"nope\"}\n")
	var out bytes.Buffer

	conn := server.NewConn(in, &out, opts)
	require.NoError(t, conn.Serve(context.Background()))

	messages := decodeLines(t, &out)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0]["error"], "unknown method")
}
