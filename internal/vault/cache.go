package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/veil-notes/veil/internal/logger"
	"github.com/veil-notes/veil/internal/metadata"
	"github.com/veil-notes/veil/internal/pathutil"
)

// Note is a vault file together with its decoded front matter.
type Note struct {
	Path       string
	Rel        string
	Title      string
	Tags       []string
	Date       string
	Record     *metadata.Record
	ModifiedAt time.Time
}

type cachedNote struct {
	note    Note
	modTime time.Time
	size    int64
}

const defaultCacheSize = 512

// Cache lazily parses note metadata and reuses it until the file changes on
// disk. It is the record source behind the visibility engine.
type Cache struct {
	mu   sync.Mutex
	dir  string
	lru  *noteLRU
	log  *logger.Logger
	stat func(string) (fs.FileInfo, error)
	read func(string) ([]byte, error)
}

// NewCache returns a metadata cache for the vault rooted at dir.
func NewCache(dir string, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{
		dir:  filepath.Clean(dir),
		lru:  newNoteLRU(defaultCacheSize),
		log:  log.With("vault"),
		stat: os.Stat,
		read: os.ReadFile,
	}
}

// Load returns the parsed note for path, refreshing the cached entry when the
// file changed on disk since it was last read.
func (c *Cache) Load(path string) (Note, error) {
	abs := c.abs(path)

	info, err := c.stat(abs)
	if err != nil {
		c.mu.Lock()
		c.lru.remove(abs)
		c.mu.Unlock()
		return Note{}, err
	}

	c.mu.Lock()
	if entry, ok := c.lru.get(abs); ok &&
		entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		note := entry.note
		c.mu.Unlock()
		return note, nil
	}
	c.mu.Unlock()

	data, err := c.read(abs)
	if err != nil {
		return Note{}, err
	}

	rec, body, parseErr := metadata.Parse(data)
	if parseErr != nil {
		c.log.Debug().Str("path", abs).Err(parseErr).Msg("front matter unreadable")
	}

	rel, relErr := pathutil.VaultRelative(c.dir, abs)
	if relErr != nil {
		rel = filepath.ToSlash(abs)
	}

	note := Note{
		Path:       abs,
		Rel:        rel,
		Title:      titleFor(abs, rec, body),
		Tags:       tagsFor(rec),
		Date:       dateFor(rec),
		Record:     rec,
		ModifiedAt: info.ModTime(),
	}

	c.mu.Lock()
	c.lru.put(abs, cachedNote{note: note, modTime: info.ModTime(), size: info.Size()})
	c.mu.Unlock()
	return note, nil
}

// Record implements the record source consumed by the visibility engine.
// Unreadable notes read as having no metadata.
func (c *Cache) Record(path string) *metadata.Record {
	note, err := c.Load(path)
	if err != nil {
		return nil
	}
	return note.Record
}

// Invalidate drops the cached entry for path so the next load re-reads it.
func (c *Cache) Invalidate(path string) {
	abs := c.abs(path)
	c.mu.Lock()
	c.lru.remove(abs)
	c.mu.Unlock()
}

// Len reports how many notes are currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}

func (c *Cache) abs(path string) string {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		return cleaned
	}
	return filepath.Join(c.dir, cleaned)
}

func titleFor(path string, rec *metadata.Record, body []byte) string {
	if title := rec.Get("title"); !title.IsAbsent() {
		if s := strings.TrimSpace(title.String()); s != "" {
			return s
		}
	}
	if heading := firstHeading(body); heading != "" {
		return heading
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func tagsFor(rec *metadata.Record) []string {
	val := rec.Get("tags")
	switch val.Kind() {
	case metadata.KindList:
		return val.Strings()
	case metadata.KindAbsent:
		return nil
	default:
		if s := strings.TrimSpace(val.String()); s != "" {
			return []string{s}
		}
		return nil
	}
}

func dateFor(rec *metadata.Record) string {
	for _, key := range []string{"date", "created"} {
		if v := rec.Get(key); !v.IsAbsent() {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func firstHeading(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	parser := goldmark.DefaultParser()
	reader := text.NewReader(body)
	document := parser.Parse(reader)

	var title string
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title = strings.TrimSpace(string(heading.Text(body)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
