package persistence

import (
	"time"

	"github.com/flowmap/flowmap/model"
	c "github.com/patrickmn/go-cache"
)

// RecordCache keeps recently loaded workflow records so reopening a
// session does not refetch from the host.
type RecordCache struct {
	cache *c.Cache
}

func NewRecordCache(ttl time.Duration) *RecordCache {
	return &RecordCache{
		cache: c.New(ttl, 10*time.Minute),
	}
}

func (rc *RecordCache) Put(rec model.WorkflowRecord) {
	if rec.Id == "" {
		return
	}
	rc.cache.Set(rec.Id, rec, c.DefaultExpiration)
}

func (rc *RecordCache) Get(id string) (model.WorkflowRecord, bool) {
	v, found := rc.cache.Get(id)
	if !found {
		return model.WorkflowRecord{}, false
	}
	rec, ok := v.(model.WorkflowRecord)
	return rec, ok
}

func (rc *RecordCache) Invalidate(id string) {
	rc.cache.Delete(id)
}
