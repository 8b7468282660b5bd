// Package mcp exposes recall over the Model Context Protocol so AI
// assistants can pull local context into a conversation.
package mcp

import "errors"

// ErrMissingRetriever is returned when the retriever port is not provided.
var ErrMissingRetriever = errors.New("mcp: retriever is required")
