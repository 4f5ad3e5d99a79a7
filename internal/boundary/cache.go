package boundary

// Cache memoizes tagger lookups per language, including negative results,
// so a missing tagger is probed only once. Owned by whichever pipeline run
// constructs the Repairer; not safe for concurrent use.
type Cache struct {
	loader  LoaderFunc
	taggers map[string]Tagger
	probed  map[string]bool
}

// NewCache creates a tagger cache around an injected loader.
func NewCache(loader LoaderFunc) *Cache {
	return &Cache{
		loader:  loader,
		taggers: make(map[string]Tagger),
		probed:  make(map[string]bool),
	}
}

// Get returns the tagger for a language, or nil if none is available.
func (c *Cache) Get(language string) Tagger {
	if c == nil || c.loader == nil {
		return nil
	}
	if c.probed[language] {
		return c.taggers[language]
	}
	tagger := c.loader(language)
	c.probed[language] = true
	if tagger != nil {
		c.taggers[language] = tagger
	}
	return tagger
}
