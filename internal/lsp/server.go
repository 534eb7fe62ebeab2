package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/tool-recommender-bot/redpen/internal/provider"
	"github.com/tool-recommender-bot/redpen/pkg/parser"
	"github.com/tool-recommender-bot/redpen/pkg/redpen"
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// JSON-RPC error codes.
const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeNotInitialized = -32002
)

// Server implements the Language Server Protocol for RedPen.
type Server struct {
	documents *DocumentStore
	provider  *provider.Provider
	rp        *redpen.RedPen

	projectRoot string
	initialized bool
	version     string
	formatFor   provider.FormatFunc

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	shutdown bool
	exited   bool
	stateMu  sync.RWMutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Logs never go to the protocol stream.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithFormat forces every document to be parsed as f instead of guessing
// from the URI extension.
func WithFormat(f parser.Format) Option {
	return func(s *Server) {
		s.formatFor = func(string) parser.Format { return f }
	}
}

// WithVersion sets the version reported in serverInfo.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer creates a server that checks documents with rp.
func NewServer(reader io.Reader, writer io.Writer, rp *redpen.RedPen, opts ...Option) *Server {
	s := &Server{
		documents: NewDocumentStore(),
		rp:        rp,
		reader:    bufio.NewReader(reader),
		writer:    writer,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.provider = provider.New(rp, s.formatFor, s.logger)
	return s
}

// Run processes JSON-RPC messages until the client disconnects, sends
// exit, or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("RedPen LSP server starting", "validators", len(s.rp.Validators()))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("error reading message", "error", err)
			continue
		}

		if err := s.handleMessage(ctx, msg); err != nil {
			s.logger.Error("error handling message", "method", msg.Method, "error", err)
		}

		s.stateMu.RLock()
		exited, shutdown := s.exited, s.shutdown
		s.stateMu.RUnlock()
		if exited {
			if !shutdown {
				return ErrExitWithoutShutdown
			}
			return nil
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads a Content-Length framed message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		if lengthStr, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, err *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if err != nil {
		msg.Error = err
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a framed JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(ctx context.Context, msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return s.handleExit(msg)
	}

	if !s.isInitialized() {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeNotInitialized, Message: "server not initialized"})
		}
		return nil
	}

	switch msg.Method {
	case "textDocument/didOpen":
		return s.handleDidOpen(ctx, msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(ctx, msg)
	case "textDocument/didSave":
		return s.handleDidSave(ctx, msg)
	case "textDocument/hover":
		return s.handleHover(ctx, msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

func (s *Server) isInitialized() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.initialized
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	s.stateMu.Lock()
	s.projectRoot = URIToPath(params.RootURI)
	s.initialized = true
	s.stateMu.Unlock()
	s.logger.Debug("project root", "path", s.projectRoot)

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: true,
				},
			},
			HoverProvider: true,
		},
		ServerInfo: &ServerInfo{Name: "redpen", Version: s.version},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.sendNotification("window/logMessage", &ShowMessageParams{
		Type:    MessageTypeInfo,
		Message: fmt.Sprintf("RedPen ready: %s", strings.Join(s.rp.Validators(), ", ")),
	})
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.stateMu.Lock()
	s.shutdown = true
	s.stateMu.Unlock()

	s.provider.InvalidateAll()
	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("server shutdown")
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.stateMu.Lock()
	s.exited = true
	s.stateMu.Unlock()
	s.logger.Info("server exit")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(ctx context.Context, msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", "uri", params.TextDocument.URI)

	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.provider.Invalidate(params.TextDocument.URI)
	s.logger.Debug("closed", "uri", params.TextDocument.URI)

	s.clearDiagnostics(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidChange(ctx context.Context, msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// Full sync: the last change carries the whole text.
	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(params.TextDocument.URI, lastChange.Text, params.TextDocument.Version)
	}

	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidSave(ctx context.Context, msg *JSONRPCMessage) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	uri := params.TextDocument.URI
	if doc := s.documents.Get(uri); doc != nil && params.Text != "" && params.Text != doc.Content {
		s.documents.Update(uri, params.Text, doc.Version)
	}
	s.logger.Debug("saved", "path", URIToPath(uri))

	s.provider.Invalidate(uri)
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) handleHover(ctx context.Context, msg *JSONRPCMessage) error {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	var hover *Hover
	if doc := s.documents.Get(params.TextDocument.URI); doc != nil {
		parsed := s.provider.GetOrParse(ctx, doc.URI, doc.Content, doc.Version)
		hover = hoverAt(diagnosticsFor(doc, parsed), params.Position)
	}
	s.sendResponse(msg.ID, hover, nil)
	return nil
}
