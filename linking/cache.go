package linking

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
)

// Cache indexes offline annotation bundles by question uid, so merge
// policies can run over pre-fetched system output instead of live
// services.
type Cache struct {
	bundles map[string]Bundle
	logger  *slog.Logger
}

type cacheFile struct {
	Questions []Bundle `json:"questions"`
}

// NewCache builds an empty cache. A nil logger falls back to the
// default slog logger.
func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		bundles: make(map[string]Bundle),
		logger:  logger,
	}
}

// Load reads one joined-results file and indexes its bundles. Entries
// without a uid are assigned one, so they stay addressable.
func (c *Cache) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading annotation cache: %w", err)
	}
	return c.add(path, data)
}

// LoadGlob loads every file under dir matching the doublestar pattern,
// e.g. "annotations/**/*.json".
func (c *Cache) LoadGlob(dir, pattern string) error {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("globbing annotation cache: %w", err)
	}
	for _, match := range matches {
		data, err := fs.ReadFile(fsys, match)
		if err != nil {
			return fmt.Errorf("reading annotation cache: %w", err)
		}
		if err := c.add(match, data); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) add(path string, data []byte) error {
	var file cacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing annotation cache %s: %w", path, err)
	}
	for _, b := range file.Questions {
		if b.UID == "" {
			b.UID = uuid.NewString()
			c.logger.Warn("annotation bundle without uid, assigned one",
				"path", path,
				"uid", b.UID,
				"text", b.Text)
		}
		c.bundles[b.UID] = b
	}
	c.logger.Debug("annotation cache loaded",
		"path", path,
		"questions", len(file.Questions))
	return nil
}

// Bundle returns the cached bundle for a question uid.
func (c *Cache) Bundle(uid string) (Bundle, bool) {
	b, ok := c.bundles[uid]
	return b, ok
}

// Len reports the number of cached bundles.
func (c *Cache) Len() int { return len(c.bundles) }
