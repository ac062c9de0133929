package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Store with the same observable semantics as
// Postgres: documents keyed by (collection, id), insertion-ordered scans,
// exact-match filters, no transactions. It backs the service tests and local
// runs that have no database at hand.
type Memory struct {
	mu   sync.Mutex
	seq  int64
	data map[string]map[string]memoryRecord
}

type memoryRecord struct {
	seq int64
	doc json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]memoryRecord)}
}

func (s *Memory) FindByID(_ context.Context, collection, id string, dest interface{}) error {
	s.mu.Lock()
	r, ok := s.data[collection][id]
	s.mu.Unlock()
	if !ok {
		return ErrNoRecord
	}
	return json.Unmarshal(r.doc, dest)
}

func (s *Memory) FindAll(_ context.Context, collection string, filter Filter, dest interface{}) error {
	s.mu.Lock()
	recs := make([]memoryRecord, 0, len(s.data[collection]))
	for _, r := range s.data[collection] {
		recs = append(recs, r)
	}
	s.mu.Unlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })

	docs := make([]json.RawMessage, 0, len(recs))
	for _, r := range recs {
		ok, err := matches(r.doc, filter)
		if err != nil {
			return err
		}
		if ok {
			docs = append(docs, r.doc)
		}
	}

	arr, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(arr, dest)
}

func (s *Memory) Insert(_ context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.NewString()
	b, err := withID(doc, id)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[collection] == nil {
		s.data[collection] = make(map[string]memoryRecord)
	}
	s.seq++
	s.data[collection][id] = memoryRecord{seq: s.seq, doc: b}
	return id, nil
}

func (s *Memory) UpdateFields(_ context.Context, collection, id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.data[collection][id]
	if !ok {
		return ErrNoRecord
	}

	m := make(map[string]interface{})
	if err := json.Unmarshal(r.doc, &m); err != nil {
		return err
	}
	for k, v := range fields {
		m[k] = v
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	s.data[collection][id] = memoryRecord{seq: r.seq, doc: b}
	return nil
}

func (s *Memory) DeleteByID(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return ErrNoRecord
	}
	delete(s.data[collection], id)
	return nil
}

// matches reports whether every filter field is present in doc with an equal
// JSON value.
func matches(doc json.RawMessage, filter Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}
	m := make(map[string]json.RawMessage)
	if err := json.Unmarshal(doc, &m); err != nil {
		return false, err
	}
	for k, v := range filter {
		want, err := json.Marshal(v)
		if err != nil {
			return false, err
		}
		got, ok := m[k]
		if !ok || !bytes.Equal(bytes.TrimSpace(got), want) {
			return false, nil
		}
	}
	return true, nil
}
