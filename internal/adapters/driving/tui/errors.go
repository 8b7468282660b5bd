package tui

import "errors"

// ErrMissingRetriever is returned when the TUI is built without a retriever.
var ErrMissingRetriever = errors.New("tui: retriever is required")
