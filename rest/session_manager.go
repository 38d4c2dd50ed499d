package rest

import (
	"sync"
	"time"

	"github.com/flowmap/flowmap/config"
	"github.com/flowmap/flowmap/editor"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/phase"
)

// collectorNotifier buffers save/clone notifications so the next state
// response can relay them to the admin app.
type collectorNotifier struct {
	mu      sync.Mutex
	pending []persistence.Notification
}

func (c *collectorNotifier) Add(n persistence.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, n)
}

func (c *collectorNotifier) Drain() []persistence.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	drained := c.pending
	c.pending = nil
	if drained == nil {
		drained = []persistence.Notification{}
	}
	return drained
}

type sessionEntry struct {
	session  *editor.Session
	notifier *collectorNotifier
	phases   *phase.State
}

type sessionManager struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	conf    config.Config
	api     persistence.ItemApi
	drafts  persistence.DraftStore
}

func newSessionManager(conf config.Config, api persistence.ItemApi, drafts persistence.DraftStore) *sessionManager {
	return &sessionManager{
		entries: make(map[string]*sessionEntry),
		conf:    conf,
		api:     api,
		drafts:  drafts,
	}
}

func (m *sessionManager) open() *sessionEntry {
	notifier := &collectorNotifier{}
	session := editor.NewSession(editor.Options{
		Api:              m.api,
		Collection:       m.conf.WorkflowCollection,
		Notifier:         notifier,
		Drafts:           m.drafts,
		ThemeId:          m.conf.ThemeId,
		DefaultEdgeType:  m.conf.DefaultEdgeType,
		DefaultNodeSize:  m.conf.DefaultNodeSize,
		AutosaveInterval: time.Duration(m.conf.AutosaveSeconds) * time.Second,
	})
	session.Start()

	entry := &sessionEntry{
		session:  session,
		notifier: notifier,
		phases:   phase.NewState(),
	}
	m.mu.Lock()
	m.entries[session.Id] = entry
	m.mu.Unlock()
	return entry
}

func (m *sessionManager) get(id string) (*sessionEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	return entry, ok
}

func (m *sessionManager) close(id string) bool {
	m.mu.Lock()
	entry, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return false
	}
	entry.session.Stop()
	return true
}

func (m *sessionManager) closeAll() {
	m.mu.Lock()
	entries := m.entries
	m.entries = make(map[string]*sessionEntry)
	m.mu.Unlock()
	for _, entry := range entries {
		entry.session.Stop()
	}
}
