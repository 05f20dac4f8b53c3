package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"coatrans/internal/cache"
	"coatrans/internal/coa"
	"coatrans/internal/config"
	"coatrans/internal/extract"
	"coatrans/internal/providers"
	"coatrans/internal/render"
	"coatrans/internal/translate"
	"coatrans/internal/util"
)

// extractor lets tests substitute the extraction cascade.
type extractor interface {
	Extract(ctx context.Context, pdfBytes []byte) extract.Result
}

type Server struct {
	cfg       config.Config
	store     *cache.Store
	extractor extractor
	providers *providers.Manager
	renderer  render.Renderer

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	inflight *semaphore.Weighted
}

func NewServer(cfg config.Config) *Server {
	pm, err := providers.NewManager(cfg.LLMProviders)
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:       cfg,
		store:     cache.NewStore(),
		extractor: extract.NewCoordinator(cfg),
		providers: pm,
		renderer:  render.TextRenderer{},
		limiters:  make(map[string]*rate.Limiter),
		inflight:  semaphore.NewWeighted(cfg.MaxConcurrentRequests),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/documents", s.handleDocuments)
	mux.HandleFunc("/documents/", s.handleDocumentScoped)
	return withCORS(s.withLimits(mux))
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":             true,
		"providers":      s.providers.Count(),
		"glossary_terms": coa.GlossarySize(),
	})
}

// handleDocuments accepts a PDF upload and runs the extraction cascade on it
// synchronously. Re-uploading identical bytes returns the existing document
// with its cached extraction.
func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxPDFBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxPDFBytes); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}

	fh, ok := pickUpload(r.MultipartForm.File)
	if !ok {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no file provided"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("only pdf files are supported"))
		return
	}

	src, err := fh.Open()
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("open upload: %w", err))
		return
	}
	defer src.Close()
	pdfBytes, err := io.ReadAll(src)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(pdfBytes) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no file provided"))
		return
	}

	doc := s.store.Put(filepath.Base(fh.Filename), pdfBytes)
	if doc.Extraction == nil {
		res := s.extractor.Extract(r.Context(), pdfBytes)
		if err := s.store.SetExtraction(doc.ID, res); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		doc.Extraction = &res
	}

	log.WithField("document_id", doc.ID).
		WithField("filename", doc.Filename).
		WithField("method", doc.Extraction.Method).
		WithField("pages", doc.Extraction.PageCount).
		Info("document uploaded")

	status := http.StatusCreated
	if !doc.Extraction.Success {
		// the document is stored, but nothing downstream will work
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, map[string]any{
		"document_id": doc.ID,
		"filename":    doc.Filename,
		"hash":        doc.Hash,
		"extraction": map[string]any{
			"success":    doc.Extraction.Success,
			"method":     doc.Extraction.Method,
			"page_count": doc.Extraction.PageCount,
			"chars":      len(doc.Extraction.Text),
		},
	})
}

func (s *Server) handleDocumentScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/documents/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	docID := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		doc, err := s.store.Get(docID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
		return
	}

	if len(parts) == 2 && parts[1] == "text" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		doc, err := s.store.Get(docID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		if doc.Extraction == nil || !doc.Extraction.Success {
			writeErr(w, http.StatusConflict, util.ErrNoExtractableText)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"document_id": doc.ID,
			"method":      doc.Extraction.Method,
			"page_count":  doc.Extraction.PageCount,
			"text":        doc.Extraction.Text,
		})
		return
	}

	if len(parts) == 2 && parts[1] == "translate" {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleTranslate(w, r, docID)
		return
	}

	if len(parts) == 2 && parts[1] == "download" {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		s.handleDownload(w, r, docID)
		return
	}

	writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request, docID string) {
	var req struct {
		Mode     string `json:"mode"`
		Model    string `json:"model"`
		Provider string `json:"provider"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
	}
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = "structured"
	}
	if mode != "structured" && mode != "plain" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("mode must be structured or plain"))
		return
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = s.cfg.DefaultModel
	}

	doc, err := s.store.Get(docID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	if doc.Extraction == nil || !doc.Extraction.Success {
		writeErr(w, http.StatusConflict, util.ErrNoExtractableText)
		return
	}

	provider := s.providers.Default()
	if req.Provider != "" {
		p, _, ok := s.providers.ByName(req.Provider)
		if !ok {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("unknown provider: %s", req.Provider))
			return
		}
		provider = p
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	progress := func(cur, total int) {
		log.WithField("document_id", docID).WithField("step", cur).WithField("of", total).Debug("translation progress")
	}

	tr := translate.New(provider, s.cfg)
	var res translate.Result
	if mode == "structured" {
		res = tr.TranslateStructured(ctx, doc.Extraction.Text, model, progress)
	} else {
		res = tr.TranslatePlain(ctx, doc.Extraction.Text, model, progress)
	}
	if !res.Success {
		writeErr(w, http.StatusBadGateway, errors.New(res.Error))
		return
	}

	rendered, err := s.renderer.Render(res.Sections, res.TranslatedText, render.Meta{
		OriginalFilename: doc.Filename,
		ExtractionMethod: string(doc.Extraction.Method),
		ModelUsed:        res.ModelUsed,
		TranslatedAt:     time.Now().UTC(),
	})
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	if err := s.store.SetTranslation(docID, res, rendered); err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}

	log.WithField("document_id", docID).
		WithField("mode", mode).
		WithField("model", res.ModelUsed).
		WithField("chunks", res.ChunksTranslated).
		Info("translation finished")

	writeJSON(w, http.StatusOK, map[string]any{
		"document_id":       docID,
		"mode":              mode,
		"model_used":        res.ModelUsed,
		"chunks_translated": res.ChunksTranslated,
		"translated_text":   res.TranslatedText,
		"sections":          res.Sections,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, docID string) {
	doc, err := s.store.Get(docID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	if len(doc.Rendered) == 0 {
		writeErr(w, http.StatusConflict, fmt.Errorf("document is not translated yet"))
		return
	}

	base := strings.TrimSuffix(doc.Filename, filepath.Ext(doc.Filename))
	name := base + "_ru" + s.renderer.FileExtension()
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Rendered)
}

func pickUpload(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	if v := m["file"]; len(v) > 0 {
		return v[0], true
	}
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

// withLimits applies a per-client token bucket and a global concurrency cap.
// Extraction and translation hold CPU and provider quota for seconds at a
// time, so unbounded concurrency would let one client starve the rest.
func (s *Server) withLimits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.clientLimiter(ip).Allow() {
			writeErr(w, http.StatusTooManyRequests, fmt.Errorf("rate limit exceeded"))
			return
		}
		if !s.inflight.TryAcquire(1) {
			writeErr(w, http.StatusServiceUnavailable, fmt.Errorf("server is at capacity"))
			return
		}
		defer s.inflight.Release(1)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) clientLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.cfg.RateLimitEvery), s.cfg.RateLimitBurst)
		s.limiters[ip] = l
	}
	return l
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "CT-API-4000"

	switch {
	case status >= 500 && status != http.StatusBadGateway && status != http.StatusServiceUnavailable:
		return apiError{
			Code:    "CT-API-5000",
			Message: "Internal server error. Please retry or check service logs.",
		}
	case status == http.StatusBadGateway:
		return apiError{Code: "CT-API-5020", Message: providerHint(err)}
	case status == http.StatusServiceUnavailable:
		code = "CT-API-5030"
		msg = "Server is at capacity. Retry shortly."
	case status == http.StatusBadRequest:
		code = "CT-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "CT-API-4004"
		msg = "Requested document was not found."
	case status == http.StatusMethodNotAllowed:
		code = "CT-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusConflict:
		code = "CT-API-4009"
		msg = "Operation conflicts with current document state."
	case status == http.StatusUnprocessableEntity:
		code = "CT-API-4022"
		msg = "No text could be extracted from this PDF."
	case status == http.StatusTooManyRequests:
		code = "CT-API-4029"
		msg = "Too many requests. Slow down and retry."
	}

	// keep user-safe validation context only
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case strings.Contains(low, "no file provided"):
			msg = "No PDF file was provided."
		case strings.Contains(low, "only pdf"):
			msg = "Only PDF files are supported."
		case strings.Contains(low, "mode must be"):
			msg = "Translation mode must be structured or plain."
		case strings.Contains(low, "unknown provider"):
			msg = "The requested translation provider is not configured."
		case strings.Contains(low, "no extractable text"):
			msg = "The document has no extractable text to translate."
		case strings.Contains(low, "not translated yet"):
			msg = "Translate the document before downloading."
		case strings.Contains(low, "invalid json"):
			msg = "Malformed JSON request body."
		case strings.Contains(low, "request body too large"):
			msg = "The uploaded file exceeds the size limit."
		}
	}

	return apiError{Code: code, Message: msg}
}

// providerHint maps an upstream provider failure to an actionable message.
func providerHint(err error) string {
	switch providers.ClassifyError(err) {
	case providers.ErrorAuth:
		return "Translation provider rejected the API key. Check provider credentials."
	case providers.ErrorQuota:
		return "Translation provider quota is exhausted. Check the provider account."
	case providers.ErrorRate:
		return "Translation provider is rate limiting requests. Retry shortly."
	case providers.ErrorContext:
		return "The document is too large for a single translation request. Use plain mode."
	case providers.ErrorTransient:
		return "Translation provider is temporarily unavailable. Retry shortly."
	default:
		return "Translation failed. Check service logs for details."
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
