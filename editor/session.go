package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flowmap/flowmap/graph"
	"github.com/flowmap/flowmap/logger"
	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/page"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/theme"
	"github.com/flowmap/flowmap/util"
	"go.uber.org/zap"
)

// FitViewRequest asks the rendering layer to animate the view onto a node.
type FitViewRequest struct {
	NodeId   string
	Duration time.Duration
	Padding  float64
	MaxZoom  float64
	MinZoom  float64
}

type Options struct {
	Api              persistence.ItemApi
	Collection       string
	Notifier         persistence.Notifier
	Drafts           persistence.DraftStore
	ThemeId          string
	DefaultEdgeType  string
	DefaultNodeSize  string
	AutosaveInterval time.Duration
	FitView          func(req FitViewRequest)
	OnChange         func(data model.FlowData)
}

const defaultEdgeTypeFallback = "bezier"
const defaultNodeSizeFallback = "medium"
const defaultAutosaveInterval = 5 * time.Second

// Session is one open editor instance over one workflow record. All state
// is owned by the session; concurrent callers are serialized by its lock.
type Session struct {
	Id string

	mu       sync.Mutex
	graph    *graph.Graph
	pages    *page.Manager
	theme    *theme.Context
	adapter  *persistence.Adapter
	drafts   persistence.DraftStore
	editMode bool

	defaultEdgeType string
	defaultNodeSize string

	follow followState

	fitView func(req FitViewRequest)

	dirty            bool
	autosaveInterval time.Duration
	autosave         *util.TickWorker
	notifyWorker     *util.Worker
	autosaveStop     chan struct{}
	wg               sync.WaitGroup

	onChange func(data model.FlowData)
}

func NewSession(opts Options) *Session {
	g := graph.NewGraph()
	pm := page.NewManager(g)

	s := &Session{
		Id:               uuid.New().String(),
		graph:            g,
		pages:            pm,
		theme:            theme.NewContext(opts.ThemeId),
		drafts:           opts.Drafts,
		defaultEdgeType:  opts.DefaultEdgeType,
		defaultNodeSize:  opts.DefaultNodeSize,
		autosaveInterval: opts.AutosaveInterval,
		fitView:          opts.FitView,
		onChange:         opts.OnChange,
	}
	if s.defaultEdgeType == "" {
		s.defaultEdgeType = defaultEdgeTypeFallback
	}
	if s.defaultNodeSize == "" {
		s.defaultNodeSize = defaultNodeSizeFallback
	}
	if s.autosaveInterval <= 0 {
		s.autosaveInterval = defaultAutosaveInterval
	}

	s.adapter = persistence.NewAdapter(g, pm, opts.Api, opts.Collection, opts.Notifier)
	s.adapter.OnChange(s.dispatchChange)

	s.notifyWorker = util.NewWorker("change-notifier-"+s.Id, &s.wg, s.handleChange, 64)
	s.autosaveStop = make(chan struct{})
	s.autosave = util.NewTickWorker("autosave-"+s.Id, s.autosaveInterval, s.autosaveStop, s.flushDraft, &s.wg)
	return s
}

// Start spins up the notification and autosave workers. Sessions used
// synchronously (tests) can skip it.
func (s *Session) Start() {
	s.notifyWorker.Start()
	s.autosave.Start()
}

func (s *Session) Stop() {
	if s.autosave.IsRunning() {
		s.autosave.Stop()
	}
	s.notifyWorker.Stop()
	s.wg.Wait()
}

// Graph exposes the underlying model for single-goroutine composition and
// tests; concurrent callers go through the locked Session methods instead.
func (s *Session) Graph() *graph.Graph {
	return s.graph
}

func (s *Session) Pages() *page.Manager {
	return s.pages
}

func (s *Session) Theme() *theme.Context {
	return s.theme
}

func (s *Session) Adapter() *persistence.Adapter {
	return s.adapter
}

func (s *Session) SetEditMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editMode = enabled
}

func (s *Session) IsEditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// dispatchChange hands diverged flow data to the notify worker so the
// change callback runs off the mutation path.
func (s *Session) dispatchChange(data model.FlowData) {
	select {
	case s.notifyWorker.Sender() <- data:
	default:
		// queue full; the next emit carries the newer state anyway
		logger.Debug("change notification dropped", zap.String("session", s.Id))
	}
}

func (s *Session) handleChange(action util.Action) error {
	data, ok := action.(model.FlowData)
	if !ok {
		return nil
	}
	if s.onChange != nil {
		s.onChange(data)
	}
	return nil
}

// markDirty records a pending edit for the autosave loop; rapid drag-stop
// bursts coalesce into a single draft write per tick.
func (s *Session) markDirty() {
	s.dirty = true
}

// flushDraft writes the current bundle to the draft store when something
// changed since the last tick. An unmodified session writes nothing.
func (s *Session) flushDraft() {
	s.mu.Lock()
	if !s.dirty || s.drafts == nil {
		s.mu.Unlock()
		return
	}
	s.dirty = false
	key := s.adapter.ItemId()
	if key == "" {
		key = s.Id
	}
	data := s.adapter.CurrentFlowData()
	s.mu.Unlock()

	if err := s.drafts.SaveDraft(key, data); err != nil {
		logger.Error("draft autosave failed", zap.String("workflow", key), zap.Error(err))
	}
}

// LoadRecord replaces the session's state with a host record. Records carry
// their own default edge type and node size; when set they override the
// service-level defaults for the rest of the session.
func (s *Session) LoadRecord(rec model.WorkflowRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.DefaultEdgeType != "" {
		s.defaultEdgeType = rec.DefaultEdgeType
	}
	if rec.DefaultNodeSize != "" {
		s.defaultNodeSize = rec.DefaultNodeSize
	}
	s.adapter.LoadRecord(rec)
}

func (s *Session) LoadFlowData(data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adapter.LoadFlowData(data)
}

// Save persists to the host and, on success, clears any draft for the
// record.
func (s *Session) Save(ctx context.Context, name string, description string) (*model.WorkflowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.adapter.SaveFlow(ctx, name, description)
	if err != nil {
		return nil, err
	}
	if saved != nil && s.drafts != nil {
		s.dirty = false
		if derr := s.drafts.DeleteDraft(saved.Id); derr != nil {
			logger.Warn("could not drop draft after save", zap.String("workflow", saved.Id), zap.Error(derr))
		}
	}
	return saved, nil
}

func (s *Session) Clone(ctx context.Context, name string) (*model.WorkflowRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adapter.CloneWorkflow(ctx, name)
}
