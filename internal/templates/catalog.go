package templates

import (
	"sync"
	"time"

	"github.com/shineplatform/sitegen/internal/models"
)

// DefaultScanTTL bounds how long a directory scan result is served from cache.
const DefaultScanTTL = 5 * time.Minute

// Catalog answers "which templates exist". With a scan root configured it
// prefers a non-empty scan of that directory; otherwise it serves the registry.
type Catalog struct {
	registry *Registry
	root     string
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	cached    []models.TemplateInfo
	scannedAt time.Time
}

// NewCatalog creates a catalog. An empty root disables scanning.
func NewCatalog(registry *Registry, root string, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultScanTTL
	}
	return &Catalog{registry: registry, root: root, ttl: ttl, now: time.Now}
}

// Registry exposes the declarative registry backing the catalog.
func (c *Catalog) Registry() *Registry {
	return c.registry
}

// ListTemplates returns the scanned templates, or the registry list when no
// scan root is set or the scan found nothing.
func (c *Catalog) ListTemplates() []models.TemplateInfo {
	if c.root == "" {
		return c.registry.List()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if c.cached == nil || now.Sub(c.scannedAt) > c.ttl {
		c.cached = Scan(c.root)
		c.scannedAt = now
	}
	if len(c.cached) == 0 {
		return c.registry.List()
	}
	out := make([]models.TemplateInfo, len(c.cached))
	copy(out, c.cached)
	return out
}

// Sweep drops a scan result older than the TTL and reports whether it did.
func (c *Catalog) Sweep(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil || now.Sub(c.scannedAt) <= c.ttl {
		return false
	}
	c.cached = nil
	c.scannedAt = time.Time{}
	return true
}
