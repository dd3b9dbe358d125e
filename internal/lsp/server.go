// Package lsp serves the step index over the Language Server Protocol.
package lsp

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/denizgursoy/stepindex/internal/app"
	"github.com/denizgursoy/stepindex/internal/config"
	"github.com/denizgursoy/stepindex/pkg/gherkin_parser"
	"github.com/denizgursoy/stepindex/pkg/steps"
)

const lsName = "stepindex"

// Server answers editor requests for feature files. Until settings with at
// least one steps glob arrive it publishes no diagnostics and offers nothing.
type Server struct {
	store   *DocumentStore
	handler protocol.Handler
	logger  *Logger
	version string

	mu          sync.RWMutex
	root        string
	settings    *config.Settings
	application *app.Application
	// pending holds messages produced before the client finished initializing
	pending []protocol.ShowMessageParams
}

// NewServer creates a server resolving globs against root. settings may be
// nil when they are expected from the editor.
func NewServer(root string, settings *config.Settings, version string) *Server {
	srv := &Server{
		store:    NewDocumentStore(),
		logger:   NewLogger(lsName),
		version:  version,
		root:     root,
		settings: settings,
	}

	srv.handler = protocol.Handler{
		Initialize:                      srv.initialize,
		Initialized:                     srv.initialized,
		Shutdown:                        srv.shutdown,
		SetTrace:                        srv.setTrace,
		TextDocumentDidOpen:             srv.didOpen,
		TextDocumentDidChange:           srv.didChange,
		TextDocumentDidClose:            srv.didClose,
		TextDocumentCompletion:          srv.completion,
		CompletionItemResolve:           srv.completionResolve,
		TextDocumentDefinition:          srv.definition,
		WorkspaceDidChangeConfiguration: srv.didChangeConfiguration,
	}

	return srv
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (srv *Server) RunStdio() error {
	return server.NewServer(&srv.handler, lsName, false).RunStdio()
}

func (srv *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.RootURI != nil && *params.RootURI != "" {
		srv.setRoot(uriToPath(*params.RootURI))
	} else if params.RootPath != nil && *params.RootPath != "" {
		srv.setRoot(*params.RootPath)
	}

	srv.mu.RLock()
	settings := srv.settings
	srv.mu.RUnlock()
	if settings != nil {
		messages := srv.rebuild(settings)
		srv.mu.Lock()
		srv.pending = messages
		srv.mu.Unlock()
	}

	capabilities := srv.handler.CreateServerCapabilities()
	change := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &change,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		ResolveProvider: boolPtr(true),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &srv.version,
		},
	}, nil
}

func (srv *Server) initialized(ctx *glsp.Context, _ *protocol.InitializedParams) error {
	srv.mu.Lock()
	messages := srv.pending
	srv.pending = nil
	srv.mu.Unlock()

	showMessages(ctx, messages)

	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI

	srv.store.Set(uri, params.TextDocument.Text)
	srv.publishDiagnostics(ctx, uri)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) == 0 {
		return nil
	}

	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		srv.store.Set(uri, change.Text)
	case protocol.TextDocumentContentChangeEvent:
		// only full sync is advertised, a ranged change carries no full text
		if change.Range != nil {
			return nil
		}
		srv.store.Set(uri, change.Text)
	default:
		return nil
	}
	srv.publishDiagnostics(ctx, uri)

	return nil
}

func (srv *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	srv.store.Delete(uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (srv *Server) completion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	application := srv.current()
	document, line, ok := srv.line(params.TextDocument.URI, params.Position.Line)
	if application == nil || !ok {
		return nil, nil
	}

	// nothing to complete while the cursor is still on the keyword
	match, ok := gherkin_parser.MatchLine(line)
	if !ok || int(params.Position.Character) < match.ContentStart() {
		return nil, nil
	}

	items := application.Engine().Completions(line, int(params.Position.Line), document)
	if items == nil {
		return nil, nil
	}

	return protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// completionResolve runs when the client picks a completion item and counts
// one more use of its step.
func (srv *Server) completionResolve(_ *glsp.Context, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	application := srv.current()
	if application == nil {
		return item, nil
	}

	if id, ok := item.Data.(string); ok {
		application.Engine().OnCompletionAccepted(id)
	}

	return item, nil
}

func (srv *Server) definition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	application := srv.current()
	document, line, ok := srv.line(params.TextDocument.URI, params.Position.Line)
	if application == nil || !ok {
		return nil, nil
	}

	location := application.Engine().Definition(line, int(params.Position.Line), document)
	if location == nil {
		return nil, nil
	}

	return *location, nil
}

func (srv *Server) didChangeConfiguration(ctx *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	values, ok := params.Settings.(map[string]any)
	if !ok {
		return nil
	}

	settings, err := config.FromMap(values)
	if err != nil {
		srv.logger.Error("ignoring settings", "error", err)
		showMessages(ctx, []protocol.ShowMessageParams{
			{Type: protocol.MessageTypeError, Message: "Ignoring " + config.Section + " settings: " + err.Error()},
		})
		return nil
	}

	showMessages(ctx, srv.rebuild(settings))
	for _, uri := range srv.store.URIs() {
		srv.publishDiagnostics(ctx, uri)
	}

	return nil
}

// rebuild replaces the application with one built from settings. A failed
// build keeps the previous application. The returned messages tell the user
// about the failure or about index warnings such as globs without files.
func (srv *Server) rebuild(settings *config.Settings) []protocol.ShowMessageParams {
	srv.mu.RLock()
	root := srv.root
	srv.mu.RUnlock()

	application, err := app.New(context.Background(), settings,
		app.WithFileSource(steps.NewFileSystem(root)),
		app.WithLogger(srv.logger),
	)
	if err != nil {
		srv.logger.Error("could not build step index", "error", err)
		return []protocol.ShowMessageParams{
			{Type: protocol.MessageTypeError, Message: "Could not build the step index: " + err.Error()},
		}
	}

	var messages []protocol.ShowMessageParams
	for _, warning := range application.Index().Warnings() {
		srv.logger.Warn(warning.Message, "source", warning.Source)
		messages = append(messages, protocol.ShowMessageParams{Type: protocol.MessageTypeWarning, Message: warning.Message})
	}

	srv.mu.Lock()
	srv.settings = settings
	srv.application = application
	srv.mu.Unlock()

	return messages
}

func showMessages(ctx *glsp.Context, messages []protocol.ShowMessageParams) {
	for i := range messages {
		ctx.Notify(protocol.ServerWindowShowMessage, &messages[i])
	}
}

func (srv *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: srv.diagnostics(uri),
	})
}

// diagnostics validates every line of the feature file at uri.
func (srv *Server) diagnostics(uri string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	application := srv.current()
	document, ok := srv.store.Get(uri)
	if application == nil || !ok || !strings.HasSuffix(uri, gherkin_parser.FeatureExtension) {
		return diagnostics
	}

	for lineNumber, line := range gherkin_parser.SplitLines(document) {
		if diagnostic := application.Engine().Validate(line, lineNumber, document); diagnostic != nil {
			diagnostics = append(diagnostics, *diagnostic)
		}
	}

	return diagnostics
}

func (srv *Server) current() *app.Application {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.application
}

func (srv *Server) setRoot(root string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.root = root
}

// line returns the document at uri and its line at lineNumber.
func (srv *Server) line(uri string, lineNumber protocol.UInteger) (string, string, bool) {
	document, ok := srv.store.Get(uri)
	if !ok {
		return "", "", false
	}

	lines := gherkin_parser.SplitLines(document)
	if int(lineNumber) >= len(lines) {
		return "", "", false
	}

	return document, lines[lineNumber], true
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err == nil {
			return filepath.Clean(parsed.Path)
		}
	}

	return uri
}

func boolPtr(b bool) *bool {
	return &b
}
