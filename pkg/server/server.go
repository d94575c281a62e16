package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hollis-dev/symserve/internal/logger"
	"github.com/hollis-dev/symserve/internal/utils"
	"github.com/hollis-dev/symserve/pkg/analyzer"
	"github.com/hollis-dev/symserve/pkg/config"
	"github.com/hollis-dev/symserve/pkg/index"
	"github.com/hollis-dev/symserve/pkg/model"
	"github.com/hollis-dev/symserve/pkg/rank"
)

// Server handles the IPC for code completions
type Server struct {
	indexer  *index.Indexer
	analyzer *analyzer.Analyzer
	ranker   *rank.Ranker
	cfg      *config.Config
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	log      *log.Logger
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(indexer *index.Indexer, contextAnalyzer *analyzer.Analyzer, ranker *rank.Ranker, cfg *config.Config) *Server {
	return &Server{
		indexer:  indexer,
		analyzer: contextAnalyzer,
		ranker:   ranker,
		cfg:      cfg,
		decoder:  msgpack.NewDecoder(os.Stdin),
		encoder:  msgpack.NewEncoder(os.Stdout),
		log:      logger.New("ipc"),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches an incoming request by command
func (s *Server) handleRequest(request Request) {
	switch request.Command {
	case "complete":
		s.handleComplete(request)
	case "index":
		s.handleIndex(request)
	case "context":
		s.handleContext(request)
	case "stats":
		s.handleStats(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

// handleComplete processes a completion request. The prefix may arrive
// directly or be derived from a source snippet and cursor position; in
// the latter case suggestions are ranked against the surrounding scope.
func (s *Server) handleComplete(request Request) {
	start := time.Now()

	prefix := request.Prefix
	var queryCtx *model.Context
	if request.Source != "" && request.Language != "" {
		result, err := s.analyzer.AnalyzeContext(context.Background(), request.Language, request.Source, request.Line, request.Column)
		if err != nil {
			s.sendError(request.ID, err.Error(), 400)
			return
		}
		if prefix == "" {
			prefix = analyzer.PrefixFromCode(request.Source, request.Line, request.Column)
		}
		result.Prefix = prefix
		queryCtx = &result
	}

	if prefix == "" {
		s.sendError(request.ID, "Missing 'prefix' parameter", 400)
		s.log.Debug("Prefix is empty in request")
		return
	}
	if s.cfg.Server.EnableFilter &&
		!utils.IsValidPrefix(prefix, s.cfg.Server.MinPrefix, s.cfg.Server.MaxPrefix) {
		s.sendResponse(CompletionResponse{
			ID:          request.ID,
			Suggestions: []Suggestion{},
			Prefix:      prefix,
			TimeTaken:   time.Since(start).Milliseconds(),
		})
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = s.cfg.Server.DefaultLimit
	}
	if limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	// Over-fetch so ranking can pull contextual matches into the window.
	completions, err := s.indexer.GetCompletions(prefix, limit*2, queryCtx)
	if err != nil {
		if errors.Is(err, index.ErrNotReady) {
			s.sendError(request.ID, "Index not ready", 409)
			return
		}
		s.sendError(request.ID, err.Error(), 500)
		return
	}

	ranked := rank.Limit(s.ranker.Rank(completions, queryCtx), limit)

	suggestions := make([]Suggestion, len(ranked))
	for i, c := range ranked {
		suggestions[i] = Suggestion{
			Text:      c.Text,
			Kind:      string(c.Kind),
			Score:     c.Score,
			Frequency: c.Frequency,
			File:      c.File,
			Line:      c.Line,
			Scope:     c.Scope,
		}
	}

	s.sendResponse(CompletionResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		Prefix:      prefix,
		TimeTaken:   time.Since(start).Milliseconds(),
	})
}

// handleIndex runs a directory indexing pass and reports the counters.
func (s *Server) handleIndex(request Request) {
	if request.Directory == "" {
		s.sendError(request.ID, "Missing 'dir' parameter", 400)
		return
	}

	start := time.Now()
	result, err := s.indexer.IndexDirectory(context.Background(), request.Directory, request.Languages, request.Workers)
	if err != nil {
		s.sendError(request.ID, err.Error(), 500)
		return
	}

	s.sendResponse(IndexResponse{
		ID:             request.ID,
		Status:         "ok",
		FilesIndexed:   result.FilesIndexed,
		TotalFiles:     result.TotalFiles,
		SymbolsIndexed: result.SymbolsIndexed,
		UniqueSymbols:  result.UniqueSymbols,
		TimeTaken:      time.Since(start).Milliseconds(),
	})
}

// handleContext analyzes a source snippet and returns the scope info.
func (s *Server) handleContext(request Request) {
	if request.Source == "" || request.Language == "" {
		s.sendError(request.ID, "Missing 'src' or 'lang' parameter", 400)
		return
	}

	result, err := s.analyzer.AnalyzeContext(context.Background(), request.Language, request.Source, request.Line, request.Column)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}

	s.sendResponse(ContextResponse{
		ID:               request.ID,
		Scope:            result.Scope,
		ScopePath:        result.ScopePath,
		AvailableSymbols: result.AvailableSymbols,
		CurrentLine:      result.CurrentLine,
		Language:         result.Language,
		Prefix:           analyzer.PrefixFromCode(request.Source, request.Line, request.Column),
	})
}

// handleStats reports the current index counters.
func (s *Server) handleStats(request Request) {
	stats := s.indexer.Stats()
	s.sendResponse(StatsResponse{
		ID:            request.ID,
		FilesIndexed:  stats.FilesIndexed,
		UniqueSymbols: stats.UniqueSymbols,
		TotalSymbols:  stats.TotalSymbols,
		Languages:     stats.Languages,
	})
}

// sendResponse encodes the given response as msgpack onto stdout.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
