// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hollis-dev/symserve/internal/utils"
	"github.com/hollis-dev/symserve/pkg/index"
	"github.com/hollis-dev/symserve/pkg/rank"
)

// InputHandler processes user input from stdin, providing ranked symbol
// suggestions. It accepts flags to control behavior such as minimum and
// maximum prefix length, suggestion limits, and filtering options.
type InputHandler struct {
	indexer         *index.Indexer
	ranker          *rank.Ranker
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(indexer *index.Indexer, ranker *rank.Ranker, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		indexer:         indexer,
		ranker:          ranker,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("symserve CLI [BETA]")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter to see the suggestions (Ctrl+C to exit):")

	for {
		log.Print("> ")
		prefix, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		h.handleInput(prefix)
	}
}

// handleInput processes a single prefix. It validates the prefix's length
// and content, then queries the index and ranks the results. Results are
// formatted and printed to the log.
func (h *InputHandler) handleInput(prefix string) {
	if len(prefix) < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidPrefix(prefix, h.minPrefixLength, h.maxPrefixLength) {
			log.Infof("No results found for prefix: '%s'", prefix)
			return
		}
	} else {
		log.Debug("Input filtering disabled - querying all entries")
	}

	start := time.Now()
	log.Debug("Processing request for", "prefix", prefix)

	completions, err := h.indexer.GetCompletions(prefix, h.suggestLimit, nil)
	if err != nil {
		log.Errorf("Completion failed for '%s': %v", prefix, err)
		return
	}
	ranked := rank.Limit(h.ranker.Rank(completions, nil), h.suggestLimit)

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	if len(ranked) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	log.Printf("Found %d suggestions for prefix '%s':", len(ranked), prefix)
	for i, c := range ranked {
		clText := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Text)
		location := c.File
		if c.Line > 0 {
			location = fmt.Sprintf("%s:%d", c.File, c.Line)
		}
		log.Printf("%2d. %-40s %-10s (score: %.2f) %s", i+1, clText, c.Kind, c.Score, location)
	}
}
