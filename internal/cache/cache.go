package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"coatrans/internal/extract"
	"coatrans/internal/translate"
	"coatrans/internal/util"
)

var ErrNotFound = errors.New("document not found")

// Document is one uploaded COA and everything derived from it. Hash is the
// SHA-256 of the PDF bytes; derived fields are only valid for that hash.
type Document struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	Hash        string            `json:"hash"`
	PDF         []byte            `json:"-"`
	UploadedAt  time.Time         `json:"uploaded_at"`
	Extraction  *extract.Result   `json:"extraction,omitempty"`
	Translation *translate.Result `json:"translation,omitempty"`
	Rendered    []byte            `json:"-"`
}

// Store keeps documents in memory keyed by id, with a secondary index on
// content hash so re-uploading identical bytes reuses prior extraction and
// translation work instead of repeating it.
type Store struct {
	mu     sync.RWMutex
	docs   map[string]*Document
	byHash map[string]string
}

func NewStore() *Store {
	return &Store{
		docs:   make(map[string]*Document),
		byHash: make(map[string]string),
	}
}

// Put registers a PDF and returns its document. If a document with the same
// content hash already exists, that document is returned unchanged and no
// new entry is created.
func (s *Store) Put(filename string, pdf []byte) *Document {
	hash := util.SHA256Hex(pdf)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byHash[hash]; ok {
		return s.docs[id].clone()
	}

	doc := &Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		Hash:       hash,
		PDF:        pdf,
		UploadedAt: time.Now().UTC(),
	}
	s.docs[doc.ID] = doc
	s.byHash[hash] = doc.ID
	return doc.clone()
}

// Replace swaps the content of an existing document. A changed hash
// invalidates everything derived from the old bytes.
func (s *Store) Replace(id, filename string, pdf []byte) (*Document, error) {
	hash := util.SHA256Hex(pdf)

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if doc.Hash == hash {
		return doc.clone(), nil
	}

	delete(s.byHash, doc.Hash)
	doc.Filename = filename
	doc.Hash = hash
	doc.PDF = pdf
	doc.UploadedAt = time.Now().UTC()
	doc.Extraction = nil
	doc.Translation = nil
	doc.Rendered = nil
	s.byHash[hash] = id
	return doc.clone(), nil
}

func (s *Store) Get(id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.clone(), nil
}

func (s *Store) SetExtraction(id string, res extract.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Extraction = &res
	// extraction from new bytes obsoletes any earlier translation
	doc.Translation = nil
	doc.Rendered = nil
	return nil
}

func (s *Store) SetTranslation(id string, res translate.Result, rendered []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Translation = &res
	doc.Rendered = rendered
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (d *Document) clone() *Document {
	c := *d
	return &c
}
