package catalog

import "sync"

// Hook function types for catalog load events
type (
	// ReloadHook is called after a new snapshot has been published
	ReloadHook func(report *LoadReport)

	// LoadFailedHook is called when a load is aborted and the previous
	// snapshot stays published
	LoadFailedHook func(err error)
)

// hooks manages event callbacks for catalog loads
type hooks struct {
	mu           sync.RWMutex
	onReload     []ReloadHook
	onLoadFailed []LoadFailedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnReload registers a callback for successful loads. Hooks run on the
// loading goroutine and must not call Load.
func (c *Catalog) OnReload(fn ReloadHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReload = append(c.hooks.onReload, fn)
}

// OnLoadFailed registers a callback for aborted loads.
func (c *Catalog) OnLoadFailed(fn LoadFailedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onLoadFailed = append(c.hooks.onLoadFailed, fn)
}

func (h *hooks) triggerReload(report *LoadReport) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onReload {
		hook(report)
	}
}

func (h *hooks) triggerLoadFailed(err error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onLoadFailed {
		hook(err)
	}
}
