// Package normalisers converts raw file contents into plain text ready
// for chunking. Each format-specific implementation lives in its own
// subpackage; ForPath selects one by file extension, falling back to
// plaintext for anything unrecognised.
//
// Normalisers never chunk or embed. They only strip formatting so the
// ingestion pipeline scores prose, not markup.
package normalisers
