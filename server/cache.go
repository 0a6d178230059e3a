package server

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/eringen/siteconfig"
)

type document struct {
	body []byte
	etag string
}

// documentCache holds the encoded site config per format. The record never
// changes, so entries are computed once and kept.
type documentCache struct {
	mu   sync.RWMutex
	site siteconfig.SiteConfig
	docs map[siteconfig.Format]document
}

func newDocumentCache(site siteconfig.SiteConfig) *documentCache {
	return &documentCache{
		site: site,
		docs: make(map[siteconfig.Format]document),
	}
}

// get tries a read lock first; only takes a write lock to encode a format
// that has not been served yet.
func (c *documentCache) get(f siteconfig.Format) (document, error) {
	c.mu.RLock()
	doc, ok := c.docs[f]
	c.mu.RUnlock()
	if ok {
		return doc, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if doc, ok := c.docs[f]; ok {
		return doc, nil
	}
	body, err := siteconfig.Marshal(c.site, f)
	if err != nil {
		return document{}, err
	}
	sum := sha256.Sum256(body)
	doc = document{
		body: body,
		etag: `"` + hex.EncodeToString(sum[:16]) + `"`,
	}
	c.docs[f] = doc
	return doc, nil
}
