// Package rest exposes the analysis pipeline over HTTP.
//
// The surface mirrors the CLI: submit a document for analysis, poll
// its status, fetch the assembled timeline, query the RAG engine and
// manage the knowledge base. Errors map onto status codes at the
// boundary: unknown documents are 404, malformed requests 400, and
// requests that arrive before their document is ready 409.
package rest
