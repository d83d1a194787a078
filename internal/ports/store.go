package ports

import "github.com/chmac/tag-summary/internal/domain"

// DocumentStore provides read-only access to a vault's documents and their
// structural metadata. The boolean returns on Tags and ListItems report
// whether a structural index is available for the document; false means the
// document contributes zero matches, not an error.
type DocumentStore interface {
	// ListDocuments enumerates every markdown document in the vault.
	ListDocuments() ([]domain.Document, error)

	// Tags returns the tag occurrences of a document.
	Tags(doc domain.Document) ([]domain.TagOccurrence, bool)

	// ListItems returns the flat, parent-indexed list-item index of a
	// document, ordered by start line.
	ListItems(doc domain.Document) ([]domain.ListItem, bool)

	// TagNames returns the flat set of tag names in a document, used only
	// for the coarse document-level filter.
	TagNames(doc domain.Document) []string

	// Content returns the raw text of a document.
	Content(doc domain.Document) (string, error)
}

// MetadataExtractor derives structural metadata from raw markdown content.
type MetadataExtractor interface {
	Extract(content []byte) (*domain.FileMetadata, error)
}
