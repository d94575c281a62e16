// Package index orchestrates codebase indexing: it walks a directory,
// parses each file through the registered language parsers, and populates
// the prefix trie and the symbol store that completion queries read.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/hollis-dev/symserve/pkg/model"
	"github.com/hollis-dev/symserve/pkg/parser"
	"github.com/hollis-dev/symserve/pkg/store"
	"github.com/hollis-dev/symserve/pkg/trie"
)

const (
	// DefaultWorkers is the indexing pool size when none is configured.
	DefaultWorkers = 4
	// DefaultMaxFileSize is the per-file byte ceiling; larger files are
	// skipped as a policy, not an error.
	DefaultMaxFileSize = 1_000_000
)

// ErrNotReady rejects completion queries issued before any indexing run,
// so callers can tell "nothing indexed yet" from "no matches".
var ErrNotReady = errors.New("index not ready: nothing indexed yet")

// Options configures a new Indexer. Zero values select the defaults.
type Options struct {
	CaseSensitive bool
	Workers       int
	MaxFileSize   int64
}

// Indexer owns one trie and one store and keeps them in sync with the
// files it has seen. Safe for concurrent inserts during a run; queries
// must not race with an in-flight IndexDirectory or Clear.
type Indexer struct {
	trie     *trie.PrefixTrie
	store    *store.SymbolStore
	registry *parser.Registry

	workers     int
	maxFileSize int64

	mu            sync.RWMutex
	indexedFiles  map[string]struct{}
	fileLanguages map[string]string
	ready         bool
}

// New creates an indexer and seeds the keyword/builtin catalogue of every
// registered language.
func New(registry *parser.Registry, opts Options) *Indexer {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	ix := &Indexer{
		trie:          trie.New(opts.CaseSensitive),
		store:         store.New(),
		registry:      registry,
		workers:       workers,
		maxFileSize:   maxSize,
		indexedFiles:  make(map[string]struct{}),
		fileLanguages: make(map[string]string),
	}
	ix.seedDefaults()
	return ix
}

// seedDefaults pre-populates the trie and store with each language's
// keywords and common builtins, tagged scope/file "builtin". Downstream
// consumers cannot tell them from indexed symbols except by those tags.
func (ix *Indexer) seedDefaults() {
	for _, name := range ix.registry.Supported() {
		lang, err := ix.registry.Get(name)
		if err != nil {
			continue
		}
		for _, kw := range lang.Keywords {
			ix.seedSymbol(kw, model.KindKeyword, lang.Name)
		}
		for _, builtin := range lang.SeedBuiltins {
			ix.seedSymbol(builtin, model.KindBuiltin, lang.Name)
		}
	}
}

func (ix *Indexer) seedSymbol(name string, kind model.Kind, language string) {
	ix.trie.Insert(name, &trie.Metadata{
		Kind:     kind,
		File:     model.ScopeBuiltin,
		Scope:    model.ScopeBuiltin,
		Language: language,
	})
	ix.store.Add(model.Symbol{
		Name:     name,
		Kind:     kind,
		Scope:    model.ScopeBuiltin,
		File:     model.ScopeBuiltin,
		Language: language,
	})
}

// IndexFile indexes a single file and returns the number of symbols
// recorded. Every failure mode (unknown language, unreadable file,
// oversized file, parse error) is logged and counts as zero symbols;
// nothing propagates.
func (ix *Indexer) IndexFile(ctx context.Context, path, language string) int {
	if language == "" {
		detected, ok := ix.registry.DetectLanguage(path)
		if !ok {
			return 0
		}
		language = detected
	}
	lang, err := ix.registry.Get(language)
	if err != nil {
		log.Warnf("skipping %s: %v", path, err)
		return 0
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("reading %s: %v", path, err)
		return 0
	}
	if int64(len(source)) > ix.maxFileSize {
		log.Warnf("skipping large file %s (%d bytes)", path, len(source))
		return 0
	}

	symbols, err := lang.ExtractSymbols(ctx, source)
	if err != nil {
		log.Errorf("indexing %s: %v", path, err)
		return 0
	}

	count := 0
	for _, sym := range symbols {
		sym.File = path
		sym.Language = lang.Name
		ix.store.Add(sym)

		kind := sym.Kind
		if !kind.Valid() {
			kind = model.KindIdentifier
		}
		scope := sym.Scope
		if scope == "" {
			scope = model.ScopeModule
		}
		ix.trie.Insert(sym.Name, &trie.Metadata{
			Kind:     kind,
			File:     path,
			Line:     sym.Line,
			Scope:    scope,
			Language: lang.Name,
		})
		count++
	}

	ix.mu.Lock()
	ix.indexedFiles[path] = struct{}{}
	ix.fileLanguages[path] = lang.Name
	ix.ready = true
	ix.mu.Unlock()

	return count
}

// IndexDirectory walks root, prunes noise directories, and indexes every
// matching file across a bounded worker pool. Per-file failures are
// non-fatal; the run always completes with best-effort statistics.
func (ix *Indexer) IndexDirectory(ctx context.Context, root string, languages []string, workers int) (model.IndexResult, error) {
	if workers <= 0 {
		workers = ix.workers
	}

	files, err := ix.collectFiles(root, languages)
	if err != nil {
		return model.IndexResult{}, fmt.Errorf("enumerating %s: %w", root, err)
	}
	log.Debugf("indexing %d candidate files under %s with %d workers", len(files), root, workers)

	var mu sync.Mutex
	filesIndexed := 0
	totalSymbols := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, f := range files {
		g.Go(func() error {
			count := ix.IndexFile(gctx, f.path, f.language)
			if count > 0 {
				mu.Lock()
				filesIndexed++
				totalSymbols += count
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	// One invalidation for the whole run; stale cached queries die here.
	ix.trie.ClearCache()

	ix.mu.Lock()
	ix.ready = true
	ix.mu.Unlock()

	return model.IndexResult{
		FilesIndexed:   filesIndexed,
		TotalFiles:     len(files),
		SymbolsIndexed: totalSymbols,
		UniqueSymbols:  ix.trie.Size(),
	}, nil
}

// GetCompletions queries the trie for prefix matches and, when the
// context names a scope, pre-boosts members of that scope by a flat +0.3.
// The ranker's multiplicative scope boost is applied separately by
// callers; the two are independent by contract.
func (ix *Indexer) GetCompletions(prefix string, maxResults int, qctx *model.Context) ([]model.Completion, error) {
	ix.mu.RLock()
	ready := ix.ready
	ix.mu.RUnlock()
	if !ready {
		return nil, ErrNotReady
	}

	completions := ix.trie.Completions(prefix, maxResults, 0)

	if qctx != nil && qctx.Scope != "" {
		members := make(map[string]struct{})
		for _, name := range ix.store.SymbolsInScope(qctx.Scope) {
			members[name] = struct{}{}
		}
		for i := range completions {
			if _, ok := members[completions[i].Text]; ok {
				if completions[i].Score == 0 {
					completions[i].Score = 0.5
				}
				completions[i].Score += 0.3
			}
		}
	}

	return completions, nil
}

// Search reports whether any indexed symbol starts with prefix.
func (ix *Indexer) Search(prefix string) (bool, error) {
	ix.mu.RLock()
	ready := ix.ready
	ix.mu.RUnlock()
	if !ready {
		return false, ErrNotReady
	}
	return ix.trie.Search(prefix), nil
}

// SymbolsInScope exposes the store's scope membership for callers
// composing their own boosts.
func (ix *Indexer) SymbolsInScope(scope string) []string {
	return ix.store.SymbolsInScope(scope)
}

// Stats summarizes the current index.
func (ix *Indexer) Stats() model.Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	langSet := make(map[string]struct{})
	for _, lang := range ix.fileLanguages {
		langSet[lang] = struct{}{}
	}
	languages := make([]string, 0, len(langSet))
	for lang := range langSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	return model.Stats{
		FilesIndexed:  len(ix.indexedFiles),
		UniqueSymbols: ix.trie.Size(),
		TotalSymbols:  ix.store.Size(),
		Languages:     languages,
	}
}

// Clear resets the trie, the store and all bookkeeping. The index is not
// ready again until the next indexing run.
func (ix *Indexer) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.trie.Clear()
	ix.store.Clear()
	ix.indexedFiles = make(map[string]struct{})
	ix.fileLanguages = make(map[string]string)
	ix.ready = false
}
