package media

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

// Cache stores extracted audio under <dir>/.cache/audio/, indexed by a
// SQLite table keyed on source file identity plus extraction parameters.
// Keys hash path, size and mtime rather than content, so a re-downloaded
// file re-extracts and a renamed one does not hit.
type Cache struct {
	db  *sql.DB
	dir string
}

// OpenCache opens (or creates) the cache under workspaceDir/.cache.
func OpenCache(workspaceDir string) (*Cache, error) {
	dir := filepath.Join(workspaceDir, ".cache", "audio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(workspaceDir, ".cache", "media.db"))
	if err != nil {
		return nil, fmt.Errorf("open cache index: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS extractions (
		key TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return &Cache{db: db, dir: dir}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key derives the cache key for one extraction of sourcePath.
func (c *Cache) Key(sourcePath string, opts ExtractOptions) (string, error) {
	resolved, err := filepath.Abs(sourcePath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}

	params := map[string]string{
		"sample_rate": fmt.Sprintf("%d", whisperSampleRate),
		"start":       opts.Start,
		"duration":    opts.Duration,
	}
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d", resolved, info.Size(), info.ModTime().UnixNano())
	for _, k := range names {
		fmt.Fprintf(h, "|%s=%s", k, params[k])
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16], nil
}

// Lookup returns the cached file path for key. A stale row whose file has
// vanished is removed and reported as a miss.
func (c *Cache) Lookup(key string) (string, bool, error) {
	var path string
	err := c.db.QueryRow(`SELECT path FROM extractions WHERE key = ?`, key).Scan(&path)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query cache: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		_, _ = c.db.Exec(`DELETE FROM extractions WHERE key = ?`, key)
		return "", false, nil
	}
	return path, true, nil
}

// Store copies filePath into the cache and records it under key.
func (c *Cache) Store(key, filePath string) (string, error) {
	dest := filepath.Join(c.dir, key+filepath.Ext(filePath))
	if err := copyFile(filePath, dest); err != nil {
		return "", fmt.Errorf("store in cache: %w", err)
	}
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO extractions (key, path, created_at) VALUES (?, ?, ?)`,
		key, dest, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("index cache entry: %w", err)
	}
	return dest, nil
}

// LinkOrCopy symlinks source to dest, copying when symlinks are not
// available. Parent directories are created as needed.
func LinkOrCopy(source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return err
	}
	if err := os.Symlink(abs, dest); err == nil {
		return nil
	}
	return copyFile(source, dest)
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
