/*
Package server implements msgpack IPC for code completion services.

The server provides a minimal interface for symbol completion using msgpack
serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports completion requests,
indexing commands, context queries and basic introspection. Messages are
processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message contains
an ID field, a command string, and other fields based on the operation type.

Completion requests use mainly this structure:

	{"id": "req_001", "cmd": "complete", "p": "calc", "l": 24}

The server responds with suggestions ranked by score:

	{"id": "req_001", "s": [{"t": "calculate", "k": "function", "sc": 0.9}], "c": 1, "tm": 1}

Completion requests may instead carry a source snippet and a cursor position,
in which case the prefix is derived from the code and the suggestions are
ranked against the surrounding scope:

	{"id": "req_002", "cmd": "complete", "lang": "python", "src": "...", "ln": 4, "col": 12}

Index commands point the server at a directory:

	{"id": "idx_001", "cmd": "index", "dir": "/path/to/project", "langs": ["python"]}

Response structures include status information and error details when an op
fails.

# Message Types

Request carries every supported command; unused fields stay empty on the wire
thanks to omitempty. CompletionResponse, IndexResponse, ContextResponse and
StatsResponse are the per-command reply shapes, and ErrorResponse covers any
request the server cannot honor.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON and the
binary format parses faster on both ends of the pipe.
*/
package server

// Request is the envelope for every incoming command.
type Request struct {
	ID        string   `msgpack:"id"`
	Command   string   `msgpack:"cmd"`
	Prefix    string   `msgpack:"p,omitempty"`
	Limit     int      `msgpack:"l,omitempty"`
	Language  string   `msgpack:"lang,omitempty"`
	Source    string   `msgpack:"src,omitempty"`
	Line      int      `msgpack:"ln,omitempty"`
	Column    int      `msgpack:"col,omitempty"`
	Directory string   `msgpack:"dir,omitempty"`
	Languages []string `msgpack:"langs,omitempty"`
	Workers   int      `msgpack:"w,omitempty"`
}

// Suggestion is one ranked completion on the wire.
type Suggestion struct {
	Text      string  `msgpack:"t"`
	Kind      string  `msgpack:"k"`
	Score     float64 `msgpack:"sc"`
	Frequency int     `msgpack:"f,omitempty"`
	File      string  `msgpack:"fl,omitempty"`
	Line      int     `msgpack:"ln,omitempty"`
	Scope     string  `msgpack:"s,omitempty"`
}

// CompletionResponse answers a complete command.
type CompletionResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	Prefix      string       `msgpack:"p"`
	TimeTaken   int64        `msgpack:"tm"`
}

// IndexResponse answers an index command.
type IndexResponse struct {
	ID             string `msgpack:"id"`
	Status         string `msgpack:"status"`
	FilesIndexed   int    `msgpack:"files"`
	TotalFiles     int    `msgpack:"total"`
	SymbolsIndexed int    `msgpack:"symbols"`
	UniqueSymbols  int    `msgpack:"unique"`
	TimeTaken      int64  `msgpack:"tm"`
}

// ContextResponse answers a context command.
type ContextResponse struct {
	ID               string   `msgpack:"id"`
	Scope            string   `msgpack:"scope"`
	ScopePath        []string `msgpack:"path,omitempty"`
	AvailableSymbols []string `msgpack:"avail,omitempty"`
	CurrentLine      string   `msgpack:"line,omitempty"`
	Language         string   `msgpack:"lang"`
	Prefix           string   `msgpack:"p,omitempty"`
}

// StatsResponse answers a stats command.
type StatsResponse struct {
	ID            string   `msgpack:"id"`
	FilesIndexed  int      `msgpack:"files"`
	UniqueSymbols int      `msgpack:"unique"`
	TotalSymbols  int      `msgpack:"total"`
	Languages     []string `msgpack:"langs"`
}

// StatusResponse is the ready handshake and the health reply.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
