package inmem

import (
	"sync"

	"github.com/flowmap/flowmap/model"
	"github.com/flowmap/flowmap/persistence"
	"github.com/flowmap/flowmap/util"
)

var _ persistence.DraftStore = new(inMemDraftStore)

// inMemDraftStore keeps autosave snapshots in process memory; the default
// when no redis is configured, and what the tests run against.
type inMemDraftStore struct {
	mu             sync.RWMutex
	drafts         map[string][]byte
	encoderDecoder util.EncoderDecoder[model.FlowData]
}

func NewInMemDraftStore() *inMemDraftStore {
	return &inMemDraftStore{
		drafts:         make(map[string][]byte),
		encoderDecoder: util.NewJsonEncoderDecoder[model.FlowData](),
	}
}

func (s *inMemDraftStore) SaveDraft(workflowId string, data *model.FlowData) error {
	encoded, err := s.encoderDecoder.Encode(*data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[workflowId] = encoded
	return nil
}

func (s *inMemDraftStore) GetDraft(workflowId string) (*model.FlowData, error) {
	s.mu.RLock()
	encoded, ok := s.drafts[workflowId]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return s.encoderDecoder.Decode(encoded)
}

func (s *inMemDraftStore) DeleteDraft(workflowId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, workflowId)
	return nil
}
