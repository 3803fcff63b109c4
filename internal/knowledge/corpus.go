package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
)

// DocumentRecord is one extracted document: the original filename and
// its normalized text. Records are immutable for the life of a snapshot.
type DocumentRecord struct {
	Filename string
	Text     string
}

// Corpus is an immutable snapshot of the document set. The zero value is
// an empty corpus.
type Corpus struct {
	docs []DocumentRecord
}

// NewCorpus builds a snapshot from the given records. The slice is
// copied; corpus order is the ranking tiebreaker, so callers control it.
func NewCorpus(docs []DocumentRecord) *Corpus {
	copied := make([]DocumentRecord, len(docs))
	copy(copied, docs)
	return &Corpus{docs: copied}
}

// Len returns the number of documents in the snapshot.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Documents returns the snapshot's records in corpus order.
func (c *Corpus) Documents() []DocumentRecord {
	return c.docs
}

// textExtensions are the file types the loader accepts. Extraction from
// richer formats is an upstream concern; by the time files land in the
// knowledge directory they are plain text.
var textExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// LoadDir builds a corpus snapshot from every text file directly inside
// dir, in filename order. A missing directory is not an error: it yields
// an empty corpus so the server can start before any documents exist.
func LoadDir(dir string) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCorpus(nil), nil
		}
		return nil, fmt.Errorf("failed to read knowledge directory: %w", err)
	}

	var docs []DocumentRecord
	for _, entry := range entries {
		if entry.IsDir() || !textExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", entry.Name(), err)
		}

		text := normalizeText(string(data))
		if text == "" {
			continue
		}
		docs = append(docs, DocumentRecord{Filename: entry.Name(), Text: text})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return NewCorpus(docs), nil
}

// normalizeText collapses whitespace runs so substring matching is not
// defeated by line breaks inside extracted text.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Store owns the current corpus snapshot. Reads are lock-free; Reload
// swaps in a new snapshot atomically.
type Store struct {
	dir     string
	current atomic.Pointer[Corpus]
}

// NewStore creates a store over the given knowledge directory and loads
// the initial snapshot.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Corpus returns the current snapshot.
func (s *Store) Corpus() *Corpus {
	return s.current.Load()
}

// Reload builds a new snapshot from disk and swaps it in. In-flight
// searches keep using the snapshot they started with.
func (s *Store) Reload() (*Corpus, error) {
	c, err := LoadDir(s.dir)
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return c, nil
}
