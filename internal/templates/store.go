package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// ErrInvalidPageName is returned when a page name could refer to a file outside of the templates directory.
var ErrInvalidPageName = errors.New("invalid page name")

// StoreConfig is the configuration for a Store.
type StoreConfig struct {
	// Fs is the filesystem rooted at the templates directory.
	Fs afero.Fs
	// Logger is the logger.
	Logger logr.Logger
	// CacheSize is the maximum number of pages kept in memory. Zero disables the cache.
	// The cache is only used when Indexed is true.
	CacheSize int
	// Indexed makes the Store answer lookups from the Index built by Reload instead of checking the filesystem
	// on every request. It must only be set when the directory is watched, so that Reload is called on changes.
	Indexed bool
}

// Store reads error pages from the templates directory.
//
// Without indexing, every lookup goes to the filesystem, so changes to the directory are visible immediately.
// With indexing, lookups are answered from the last Index built by Reload and page contents are cached; both are
// replaced on every Reload. Until the first successful Reload, lookups go to the filesystem.
type Store struct {
	fs     afero.Fs
	logger logr.Logger
	cache  *lru.Cache[string, []byte]
	index  Index

	lock sync.RWMutex
	// generation is incremented by every successful Reload. Contents read under an older generation are not cached.
	generation uint64
	loaded     bool
	indexed    bool
}

// NewStore creates a new Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	s := &Store{
		fs:      cfg.Fs,
		logger:  cfg.Logger,
		indexed: cfg.Indexed,
		index:   Index{},
	}

	if cfg.Indexed && cfg.CacheSize > 0 {
		cache, err := lru.New[string, []byte](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create page cache: %w", err)
		}
		s.cache = cache
	}

	return s, nil
}

// Get returns the contents of the page with the given name.
// If the page doesn't exist, the returned error wraps fs.ErrNotExist.
func (s *Store) Get(name string) ([]byte, error) {
	if err := validatePageName(name); err != nil {
		return nil, err
	}

	s.lock.RLock()
	useIndex := s.indexed && s.loaded
	_, exists := s.index[name]
	generation := s.generation
	s.lock.RUnlock()

	if useIndex {
		if !exists {
			return nil, fmt.Errorf("page %q: %w", name, fs.ErrNotExist)
		}

		if s.cache != nil {
			if content, ok := s.cache.Get(name); ok {
				return content, nil
			}
		}
	}

	content, err := afero.ReadFile(s.fs, pagePath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read page %q: %w", name, err)
	}

	if useIndex && s.cache != nil {
		s.lock.RLock()
		if s.generation == generation {
			s.cache.Add(name, content)
		}
		s.lock.RUnlock()
	}

	return content, nil
}

// Exists returns true if the page with the given name exists.
func (s *Store) Exists(name string) bool {
	if validatePageName(name) != nil {
		return false
	}

	s.lock.RLock()
	useIndex := s.indexed && s.loaded
	_, exists := s.index[name]
	s.lock.RUnlock()

	if useIndex {
		return exists
	}

	info, err := s.fs.Stat(pagePath(name))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// Reload rescans the templates directory, replaces the Index and empties the cache.
// On error, the previous Index is kept.
func (s *Store) Reload() (Index, error) {
	idx, err := Scan(s.fs)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	s.index = idx
	s.loaded = true
	s.generation++
	if s.cache != nil {
		s.cache.Purge()
	}
	s.lock.Unlock()

	s.logger.V(1).Info("Indexed templates", "total", len(idx))

	return idx, nil
}

// Pages returns the pages of the last Index sorted by code and then by extension.
func (s *Store) Pages() []Page {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.index.Sorted()
}

// Scan builds an Index of the pages in the root of the filesystem.
// Symlinks are followed, so that directories mounted from a Kubernetes ConfigMap, where every file is a symlink into
// a ..data directory, are indexed too.
func Scan(fsys afero.Fs) (Index, error) {
	entries, err := afero.ReadDir(fsys, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	idx := make(Index, len(entries))

	for _, entry := range entries {
		page, ok := ParsePageName(entry.Name())
		if !ok {
			continue
		}

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			info, err = fsys.Stat(pagePath(entry.Name()))
			if err != nil {
				// a dangling symlink is not a page
				continue
			}
		}

		if !info.Mode().IsRegular() {
			continue
		}

		page.Size = info.Size()
		idx[page.Name] = page
	}

	return idx, nil
}

// ValidateDir returns an error if the path doesn't exist or is not a directory.
func ValidateDir(fsys afero.Fs, dir string) error {
	info, err := fsys.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("templates path %q does not exist", dir)
		}
		return fmt.Errorf("failed to read templates path %q: %w", dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("templates path %q is not a directory", dir)
	}

	return nil
}

func validatePageName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidPageName, name)
	}

	return nil
}

func pagePath(name string) string {
	return path.Join("/", name)
}
