package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coatrans/internal/config"
	"coatrans/internal/extract"
)

type stubExtractor struct {
	result extract.Result
}

func (s stubExtractor) Extract(ctx context.Context, pdfBytes []byte) extract.Result {
	return s.result
}

func testConfig() config.Config {
	return config.Config{
		LLMProviders:          "mock",
		DefaultModel:          "mock-translator-v1",
		MaxChunkSize:          6000,
		Temperature:           0.1,
		MaxOutputTokens:       4096,
		MaxPDFBytes:           1 << 20,
		RateLimitEvery:        time.Millisecond,
		RateLimitBurst:        100,
		MaxConcurrentRequests: 4,
		RequestTimeout:        time.Minute,
		TesseractPath:         "tesseract-not-installed",
	}
}

func newTestServer(t *testing.T, extraction extract.Result) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(testConfig())
	s.extractor = stubExtractor{result: extraction}
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func uploadPDF(t *testing.T, ts *httptest.Server, filename string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(ts.URL+"/documents", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestUploadTranslateDownloadFlow(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{
		Text:      "Certificate of Analysis\nBatch No: 12345\nAssay: 99.8%",
		Method:    extract.MethodStructuredText,
		Success:   true,
		PageCount: 1,
	})

	resp := uploadPDF(t, ts, "coa.pdf", []byte("%PDF-1.4 fake"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	docID := body["document_id"].(string)
	require.NotEmpty(t, docID)
	ext := body["extraction"].(map[string]any)
	require.Equal(t, true, ext["success"])
	require.Equal(t, "structured-text", ext["method"])

	// structured translation against the mock provider
	resp, err := http.Post(ts.URL+"/documents/"+docID+"/translate", "application/json",
		strings.NewReader(`{"mode":"structured"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	require.Equal(t, "structured", body["mode"])
	require.Equal(t, float64(1), body["chunks_translated"])
	sections := body["sections"].(map[string]any)
	require.Contains(t, sections, "document_title")
	require.Contains(t, sections, "test_results")
	require.Contains(t, body["translated_text"].(string), "Сертификат анализа")

	resp, err = http.Get(ts.URL + "/documents/" + docID + "/download")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	require.Contains(t, resp.Header.Get("Content-Disposition"), "coa_ru.txt")

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.Contains(t, out.String(), "ПЕРЕВОД СЕРТИФИКАТА АНАЛИЗА")
	require.Contains(t, out.String(), "Сертификат анализа")
}

func TestUploadDeduplicatesByContent(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{Text: strings.Repeat("x", 100), Method: extract.MethodGeneralText, Success: true, PageCount: 2})

	first := decodeBody(t, uploadPDF(t, ts, "a.pdf", []byte("same")))
	second := decodeBody(t, uploadPDF(t, ts, "b.pdf", []byte("same")))
	require.Equal(t, first["document_id"], second["document_id"])
}

func TestUploadRejectsNonPDF(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{})
	resp := uploadPDF(t, ts, "notes.txt", []byte("plain text"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadWithoutExtractableText(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{Method: extract.MethodNone, Success: false, PageCount: 3})

	resp := uploadPDF(t, ts, "scan.pdf", []byte("%PDF-1.4 image only"))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	docID := body["document_id"].(string)

	// translation of an unextractable document must conflict
	resp, err := http.Post(ts.URL+"/documents/"+docID+"/translate", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTranslateUnknownDocument(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{})
	resp, err := http.Post(ts.URL+"/documents/no-such-id/translate", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTranslateRejectsUnknownMode(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{Text: "text long enough", Success: true, Method: extract.MethodGeneralText})
	body := decodeBody(t, uploadPDF(t, ts, "coa.pdf", []byte("pdf")))
	docID := body["document_id"].(string)

	resp, err := http.Post(ts.URL+"/documents/"+docID+"/translate", "application/json", strings.NewReader(`{"mode":"fancy"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDownloadBeforeTranslate(t *testing.T) {
	_, ts := newTestServer(t, extract.Result{Text: "some text", Success: true, Method: extract.MethodGeneralText})
	body := decodeBody(t, uploadPDF(t, ts, "coa.pdf", []byte("pdf")))
	docID := body["document_id"].(string)

	resp, err := http.Get(ts.URL + "/documents/" + docID + "/download")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRateLimitKicksIn(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEvery = time.Hour
	cfg.RateLimitBurst = 1
	s := NewServer(cfg)
	s.extractor = stubExtractor{}
	ts := httptest.NewServer(s.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
