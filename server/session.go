package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/plotkit-org/plotkit/engine"
	"github.com/plotkit-org/plotkit/schema"
)

// ============================================================================
// SESSION STORE — uploaded datasets + rendered-image cache
// ============================================================================
// Each upload gets a UUID handle; later requests reference the dataset
// by handle instead of re-uploading it. Rendered PNGs are cached by
// their full render signature so repeated generate calls for the same
// chart are served from memory.
// ============================================================================

// Session is one uploaded dataset and its inferred column metadata.
type Session struct {
	Handle     string          `json:"datasetId"`
	Name       string          `json:"name"`
	Dataset    *schema.Dataset `json:"-"`
	Columns    []schema.Column `json:"columns"`
	Rows       int             `json:"rows"`
	UploadedAt time.Time       `json:"uploadedAt"`
}

// Store holds sessions and the render cache.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	renders  *lru.Cache[string, []byte]
}

// NewStore creates a store with an LRU render cache of the given size.
func NewStore(cacheSize int) (*Store, error) {
	renders, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		sessions: make(map[string]*Session),
		renders:  renders,
	}, nil
}

// Put registers an uploaded dataset and returns its session.
func (s *Store) Put(name string, ds *schema.Dataset, columns []schema.Column) *Session {
	session := &Session{
		Handle:     uuid.NewString(),
		Name:       name,
		Dataset:    ds,
		Columns:    columns,
		Rows:       ds.Rows(),
		UploadedAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[session.Handle] = session
	s.mu.Unlock()
	return session
}

// Get looks up a session by handle.
func (s *Store) Get(handle string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[handle]
	return session, ok
}

// renderKey identifies one rendered image by its full signature.
func renderKey(handle, chartType string, b engine.Binding, width, height float64, title string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%g|%g|%s", handle, chartType, b.X, b.Y, b.Group, width, height, title)
}

// CachedRender returns a previously rendered PNG, if still cached.
func (s *Store) CachedRender(key string) ([]byte, bool) {
	return s.renders.Get(key)
}

// PutRender caches a rendered PNG.
func (s *Store) PutRender(key string, png []byte) {
	s.renders.Add(key, png)
}
