// Package vault implements ports.DocumentStore against a markdown vault on
// the local filesystem.
package vault

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chmac/tag-summary/internal/application"
	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
)

// Repository reads documents and their structural metadata from a vault
// directory. Metadata extraction is memoized per path and served from the
// metadata cache when one is attached.
type Repository struct {
	vaultPath string
	extractor ports.MetadataExtractor
	cache     ports.MetadataCache
	log       *slog.Logger

	mu   sync.Mutex
	meta map[string]*metaEntry
}

type metaEntry struct {
	meta *domain.FileMetadata
	err  error
}

// Ensure Repository implements DocumentStore
var _ ports.DocumentStore = (*Repository)(nil)

// NewRepository creates a new vault repository. cache may be nil; metadata
// is then extracted on every cold lookup.
func NewRepository(vaultPath string, extractor ports.MetadataExtractor, cache ports.MetadataCache, log *slog.Logger) *Repository {
	return &Repository{
		vaultPath: ExpandPath(vaultPath),
		extractor: extractor,
		cache:     cache,
		log:       log,
		meta:      make(map[string]*metaEntry),
	}
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// ListDocuments returns every markdown file in the vault, sorted by path.
// Hidden directories are skipped.
func (r *Repository) ListDocuments() ([]domain.Document, error) {
	if info, err := os.Stat(r.vaultPath); err != nil || !info.IsDir() {
		return nil, &application.VaultError{Path: r.vaultPath, Reason: "not a directory"}
	}

	var docs []domain.Document
	err := filepath.Walk(r.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != r.vaultPath {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
			return nil
		}
		relPath, err := filepath.Rel(r.vaultPath, path)
		if err != nil {
			return nil
		}
		docs = append(docs, domain.Document{
			Path: filepath.ToSlash(relPath),
			Name: strings.TrimSuffix(info.Name(), filepath.Ext(info.Name())),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	domain.SortDocuments(docs)
	return docs, nil
}

// Tags returns the tag occurrences of a document; false when no structural
// index could be produced.
func (r *Repository) Tags(doc domain.Document) ([]domain.TagOccurrence, bool) {
	meta, err := r.metadata(doc)
	if err != nil {
		return nil, false
	}
	return meta.Tags, true
}

// ListItems returns the list-item index of a document; false when no
// structural index could be produced.
func (r *Repository) ListItems(doc domain.Document) ([]domain.ListItem, bool) {
	meta, err := r.metadata(doc)
	if err != nil {
		return nil, false
	}
	return meta.Items, true
}

// TagNames returns the flat tag name set of a document, or nil when no
// structural index could be produced.
func (r *Repository) TagNames(doc domain.Document) []string {
	meta, err := r.metadata(doc)
	if err != nil {
		return nil
	}
	return meta.TagNames()
}

// Content returns the raw text of a document.
func (r *Repository) Content(doc domain.Document) (string, error) {
	content, err := os.ReadFile(filepath.Join(r.vaultPath, filepath.FromSlash(doc.Path)))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// metadata returns the structural metadata of a document, memoized for the
// repository's lifetime. Within one summary build a document is only handled
// by a single worker, so the map lock is uncontended in practice.
func (r *Repository) metadata(doc domain.Document) (*domain.FileMetadata, error) {
	r.mu.Lock()
	if e, ok := r.meta[doc.Path]; ok {
		r.mu.Unlock()
		return e.meta, e.err
	}
	r.mu.Unlock()

	e := r.load(doc)

	r.mu.Lock()
	if prev, ok := r.meta[doc.Path]; ok {
		e = prev
	} else {
		r.meta[doc.Path] = e
	}
	r.mu.Unlock()
	return e.meta, e.err
}

func (r *Repository) load(doc domain.Document) *metaEntry {
	fullPath := filepath.Join(r.vaultPath, filepath.FromSlash(doc.Path))

	info, err := os.Stat(fullPath)
	if err != nil {
		return &metaEntry{err: &application.DocumentError{Path: doc.Path, Err: err}}
	}
	mtime := info.ModTime().Unix()

	if r.cache != nil {
		meta, err := r.cache.Lookup(doc.Path, mtime)
		if err == nil && meta != nil {
			return &metaEntry{meta: meta}
		}
		if err != nil {
			r.log.Debug("cache lookup failed", "doc", doc.Path, "err", err)
		}
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return &metaEntry{err: &application.DocumentError{Path: doc.Path, Err: err}}
	}

	meta, err := r.extractor.Extract(content)
	if err != nil {
		return &metaEntry{err: &application.DocumentError{Path: doc.Path, Err: err}}
	}

	if r.cache != nil {
		if err := r.storeCached(doc.Path, mtime, meta); err != nil {
			r.log.Debug("cache store failed", "doc", doc.Path, "err", err)
		}
	}

	return &metaEntry{meta: meta}
}

func (r *Repository) storeCached(path string, mtime int64, meta *domain.FileMetadata) error {
	tx, err := r.cache.BeginTx()
	if err != nil {
		return err
	}
	if err := tx.UpsertFile(path, mtime, meta); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
