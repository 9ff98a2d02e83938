package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/domain"
	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
)

// handleAnalyze accepts a multipart upload and queues it for analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}

	upload := &domain.RawUpload{
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Content:  content,
	}
	opts := domain.SubmitOptions{
		DocumentType:       domain.ParseDocumentType(r.FormValue("document_type")),
		ProviderPreference: splitProviders(r.FormValue("providers")),
	}

	doc, err := s.cfg.Analysis.Submit(r.Context(), upload, opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toDocumentResponse(doc))
}

// handleListDocuments returns all documents, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.cfg.Analysis.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]documentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, toDocumentResponse(&docs[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

// handleStatus reports a document's progress.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.cfg.Analysis.Status(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		DocumentID:    status.DocumentID,
		State:         string(status.State),
		Progress:      status.Progress,
		ETASeconds:    status.ETA.Seconds(),
		FailureReason: status.FailureReason,
	})
}

// handleTimeline returns the frozen analysis artefact.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	result, err := s.cfg.Analysis.Result(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTimelineResponse(result))
}

// handleClauses returns a document's clauses in sequence order.
func (s *Server) handleClauses(w http.ResponseWriter, r *http.Request) {
	clauses, err := s.cfg.Analysis.Clauses(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]clauseResponse, 0, len(clauses))
	for i := range clauses {
		responses = append(responses, toClauseResponse(&clauses[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

// handleClauseDetails returns one clause with its related clauses and
// a freshly generated contextual explanation.
func (s *Server) handleClauseDetails(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	documentID, clauseID := vars["id"], vars["clauseID"]

	clauses, err := s.cfg.Analysis.Clauses(r.Context(), documentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	byID := make(map[string]*domain.Clause, len(clauses))
	for i := range clauses {
		byID[clauses[i].ID] = &clauses[i]
	}
	clause, ok := byID[clauseID]
	if !ok {
		writeError(w, http.StatusNotFound, "clause not found")
		return
	}

	details := clauseDetailsResponse{Clause: toClauseResponse(clause)}
	for _, relatedID := range clause.RelatedClauseIDs {
		if related, ok := byID[relatedID]; ok {
			details.Related = append(details.Related, toClauseResponse(related))
		}
	}

	// The explanation is generated on demand and never cached; losing
	// it degrades the response rather than failing it.
	if s.cfg.RAG != nil {
		if answer, err := s.cfg.RAG.Explain(r.Context(), documentID, clauseID); err == nil {
			details.Explanation = answer.Answer
		} else {
			logger.Debug("clause %s: contextual explanation unavailable: %v", clauseID, err)
		}
	}
	writeJSON(w, http.StatusOK, details)
}

// handleCancel stops an in-flight document.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Analysis.Cancel(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// handleDelete removes a document and everything derived from it.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Analysis.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRAGQuery answers a grounded question.
func (s *Server) handleRAGQuery(w http.ResponseWriter, r *http.Request) {
	if s.cfg.RAG == nil {
		writeError(w, http.StatusServiceUnavailable, "rag service not configured")
		return
	}

	var req ragQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	answer, err := s.cfg.RAG.Ask(r.Context(), req.Question, driving.AskOptions{
		DocumentID: req.DocumentID,
		TopK:       req.TopK,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRAGAnswerResponse(answer))
}

// handleInitKnowledgeBase seeds the reference corpus.
func (s *Server) handleInitKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Knowledge == nil {
		writeError(w, http.StatusServiceUnavailable, "knowledge service not configured")
		return
	}
	if err := s.cfg.Knowledge.Seed(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "initialized"})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// splitProviders parses a comma-separated provider preference.
func splitProviders(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	providers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			providers = append(providers, trimmed)
		}
	}
	return providers
}

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrCorruptDocument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSizeLimitExceeded):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, domain.ErrNoGroundingContext),
		errors.Is(err, domain.ErrDocumentNotCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrJudgeUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrVectorIndexUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error(err, "unhandled request error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error(err, "encode response")
	}
}
