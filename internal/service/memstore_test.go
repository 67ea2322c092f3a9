package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sims/sims-backend/internal/model"
	"github.com/sims/sims-backend/internal/repository"
)

// memStudentStore is an in-memory StudentStore that enforces admission
// number uniqueness like the database constraint does.
type memStudentStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]model.Student
}

var _ StudentStore = (*memStudentStore)(nil)

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{rows: make(map[int64]model.Student)}
}

func (m *memStudentStore) taken(admission string, exceptID int64) bool {
	for id, s := range m.rows {
		if id != exceptID && s.AdmissionNumber == admission {
			return true
		}
	}
	return false
}

func (m *memStudentStore) Create(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken(s.AdmissionNumber, 0) {
		return repository.ErrDuplicateAdmissionNumber
	}
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.rows[s.ID] = *s
	return nil
}

func (m *memStudentStore) CreateBatch(ctx context.Context, students []*model.Student) error {
	m.mu.Lock()
	seen := map[string]bool{}
	for _, s := range students {
		if seen[s.AdmissionNumber] || m.taken(s.AdmissionNumber, 0) {
			m.mu.Unlock()
			return repository.ErrDuplicateAdmissionNumber
		}
		seen[s.AdmissionNumber] = true
	}
	m.mu.Unlock()
	for _, s := range students {
		if err := m.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *memStudentStore) GetByID(_ context.Context, id int64) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *memStudentStore) sorted(keep func(model.Student) bool) []model.Student {
	out := []model.Student{}
	for _, s := range m.rows {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStudentStore) List(_ context.Context) ([]model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(model.Student) bool { return true }), nil
}

func (m *memStudentStore) Search(_ context.Context, f model.StudentFilter) ([]model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(s model.Student) bool {
		if f.Query != nil {
			q := strings.ToLower(*f.Query)
			if !strings.Contains(strings.ToLower(s.FullName), q) &&
				!strings.Contains(strings.ToLower(s.AdmissionNumber), q) {
				return false
			}
		}
		if f.Grade != nil && s.Grade != *f.Grade {
			return false
		}
		if f.Stream != nil && s.Stream != *f.Stream {
			return false
		}
		return true
	}), nil
}

func (m *memStudentStore) Update(_ context.Context, s *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.rows[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if m.taken(s.AdmissionNumber, s.ID) {
		return repository.ErrDuplicateAdmissionNumber
	}
	s.CreatedAt = old.CreatedAt
	s.UpdatedAt = time.Now()
	m.rows[s.ID] = *s
	return nil
}

func (m *memStudentStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStudentStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

func fieldValue(s model.Student, field model.StudentField) string {
	switch field {
	case model.FieldGrade:
		return s.Grade
	case model.FieldGender:
		return s.Gender
	case model.FieldStream:
		return s.Stream
	}
	return ""
}

func (m *memStudentStore) CountWhere(_ context.Context, field model.StudentField, value string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.rows {
		if fieldValue(s, field) == value {
			n++
		}
	}
	return n, nil
}

func (m *memStudentStore) GroupCount(_ context.Context, field model.StudentField) ([]model.DistributionItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, s := range m.rows {
		counts[fieldValue(s, field)]++
	}
	items := []model.DistributionItem{}
	for v, n := range counts {
		items = append(items, model.DistributionItem{Value: v, Count: n})
	}
	return items, nil
}

// memSessionStore mirrors the Redis layout: one entry per token plus a
// per-user index.
type memSessionStore struct {
	mu     sync.Mutex
	owner  map[string]int64
	byUser map[int64]map[string]struct{}
}

var (
	_ SessionStore   = (*memSessionStore)(nil)
	_ SessionRevoker = (*memSessionStore)(nil)
)

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{owner: make(map[string]int64), byUser: make(map[int64]map[string]struct{})}
}

func (m *memSessionStore) Create(_ context.Context, jti string, userID int64, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner[jti] = userID
	if m.byUser[userID] == nil {
		m.byUser[userID] = make(map[string]struct{})
	}
	m.byUser[userID][jti] = struct{}{}
	return nil
}

func (m *memSessionStore) Exists(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.owner[jti]
	return ok, nil
}

func (m *memSessionStore) Delete(_ context.Context, jti string, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.owner, jti)
	delete(m.byUser[userID], jti)
	return nil
}

func (m *memSessionStore) DeleteByUser(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for jti := range m.byUser[userID] {
		if _, ok := m.owner[jti]; ok {
			delete(m.owner, jti)
			n++
		}
	}
	delete(m.byUser, userID)
	return n, nil
}
