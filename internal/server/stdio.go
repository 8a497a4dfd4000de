package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/lintbridge/internal/logging"
	"github.com/yaklabco/lintbridge/pkg/document"
	"github.com/yaklabco/lintbridge/pkg/lint"
)

// Wire protocol: newline-delimited JSON. The editor sends requests on
// stdin; the server writes responses and publishDiagnostics events on
// stdout, one object per line.

type request struct {
	ID     int             `json:"id,omitempty"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

type response struct {
	ID     int    `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type event struct {
	Method string `json:"method"`
	Params any    `json:"params"`
}

type documentParams struct {
	URI     string `json:"uri"`
	Text    string `json:"text,omitempty"`
	Version int    `json:"version,omitempty"`
}

type configChangeParams struct {
	URIs []string `json:"uris"`
}

type publishDiagnosticsParams struct {
	URI         string            `json:"uri"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
}

// Conn runs the request loop for one editor session.
type Conn struct {
	handler *Handler
	store   *document.MemStore
	logger  *log.Logger
	in      io.Reader

	writeMu sync.Mutex
	out     io.Writer
}

// NewConn wires a Conn over the given reader/writer pair. The handler's
// publish callback is bound to the connection's output stream.
func NewConn(in io.Reader, out io.Writer, opts Options) *Conn {
	store := document.NewMemStore()
	conn := &Conn{store: store, out: out}

	opts.Store = store
	opts.Publish = conn.publishDiagnostics
	conn.handler = New(opts)
	conn.logger = conn.handler.logger

	conn.in = in
	return conn
}

// ConfigFilesChanged forwards a configuration change arriving outside the
// request stream, e.g. from the filesystem watcher.
func (c *Conn) ConfigFilesChanged(uris []string) {
	c.handler.ConfigFilesChanged(uris)
}

// Serve reads requests until in is exhausted or ctx is cancelled. Malformed
// lines are logged and skipped; the loop never dies on a bad request.
func (c *Conn) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			c.logger.Error("malformed request", logging.FieldError, err)
			continue
		}

		c.dispatch(ctx, req)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request stream: %w", err)
	}
	return nil
}

func (c *Conn) dispatch(ctx context.Context, req request) {
	c.logger.Debug("request",
		logging.FieldMethod, req.Method,
		logging.FieldRequestID, req.ID)

	switch req.Method {
	case "didOpen":
		c.handleDidOpen(ctx, req)
	case "didChange":
		c.handleDidChange(ctx, req)
	case "didClose":
		c.handleDidClose(req)
	case "runLint":
		c.handleRunLint(ctx, req)
	case "fixLint":
		c.handleFixLint(ctx, req)
	case "configFilesChanged":
		c.handleConfigFilesChanged(req)
	default:
		c.respondError(req.ID, fmt.Errorf("unknown method %q", req.Method))
	}
}

func (c *Conn) handleDidOpen(ctx context.Context, req request) {
	var params documentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.respondError(req.ID, err)
		return
	}
	if err := c.store.Open(params.URI, params.Text, params.Version); err != nil {
		c.respondError(req.ID, err)
		return
	}
	c.respond(req.ID, nil)

	// An open document gets an immediate lint pass.
	if err := c.handler.RunLint(ctx, params.URI); err != nil {
		c.logger.Error("lint after open failed",
			logging.FieldURI, params.URI,
			logging.FieldError, err)
	}
}

func (c *Conn) handleDidChange(ctx context.Context, req request) {
	var params documentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.respondError(req.ID, err)
		return
	}
	if err := c.store.Change(params.URI, params.Text, params.Version); err != nil {
		c.respondError(req.ID, err)
		return
	}
	c.respond(req.ID, nil)

	if err := c.handler.RunLint(ctx, params.URI); err != nil {
		c.logger.Error("lint after change failed",
			logging.FieldURI, params.URI,
			logging.FieldError, err)
	}
}

func (c *Conn) handleDidClose(req request) {
	var params documentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.respondError(req.ID, err)
		return
	}
	c.store.Close(params.URI)
	c.handler.DidClose(params.URI)
	c.respond(req.ID, nil)
}

func (c *Conn) handleRunLint(ctx context.Context, req request) {
	var params documentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.respondError(req.ID, err)
		return
	}
	if err := c.handler.RunLint(ctx, params.URI); err != nil {
		c.respondError(req.ID, err)
		return
	}
	c.respond(req.ID, nil)
}

func (c *Conn) handleFixLint(ctx context.Context, req request) {
	var params documentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.respondError(req.ID, err)
		return
	}
	result, err := c.handler.FixLint(ctx, params.URI)
	if err != nil {
		c.respondError(req.ID, err)
		return
	}
	c.respond(req.ID, result)
}

func (c *Conn) handleConfigFilesChanged(req request) {
	var params configChangeParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		c.respondError(req.ID, err)
		return
	}
	c.handler.ConfigFilesChanged(params.URIs)
	c.respond(req.ID, nil)
}

func (c *Conn) publishDiagnostics(uri string, diagnostics []lint.Diagnostic) {
	c.writeLine(event{
		Method: "publishDiagnostics",
		Params: publishDiagnosticsParams{URI: uri, Diagnostics: diagnostics},
	})
}

func (c *Conn) respond(id int, result any) {
	c.writeLine(response{ID: id, Result: result})
}

func (c *Conn) respondError(id int, err error) {
	c.logger.Error("request failed",
		logging.FieldRequestID, id,
		logging.FieldError, err)
	c.writeLine(response{ID: id, Error: err.Error()})
}

func (c *Conn) writeLine(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("marshal response", logging.FieldError, err)
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.out.Write(append(data, '\n')); err != nil {
		c.logger.Error("write response", logging.FieldError, err)
	}
}
