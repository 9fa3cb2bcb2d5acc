package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ufukozendev/noobgg-sub002/internal/model"
	"github.com/ufukozendev/noobgg-sub002/internal/repository"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
)

// memStore is an in-memory Store keyed by id. Scopes and search are ignored.
type memStore[T any] struct {
	mu     sync.Mutex
	rows   map[uint]*T
	nextID uint
	idOf   func(*T) *uint
	calls  map[string]int
}

func newMemStore[T any](idOf func(*T) *uint) *memStore[T] {
	return &memStore[T]{rows: map[uint]*T{}, idOf: idOf, calls: map[string]int{}}
}

func (m *memStore[T]) List(_ context.Context, q repository.ListQuery) ([]T, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["List"]++

	ids := make([]uint, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []T{}
	for i := q.Page.Offset(); i < len(ids) && len(out) < q.Page.Limit; i++ {
		out = append(out, *m.rows[ids[i]])
	}
	return out, int64(len(ids)), nil
}

func (m *memStore[T]) FindByID(_ context.Context, id uint) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["FindByID"]++

	row, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memStore[T]) Create(_ context.Context, item *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Create"]++

	m.nextID++
	*m.idOf(item) = m.nextID
	cp := *item
	m.rows[m.nextID] = &cp
	return nil
}

func (m *memStore[T]) Update(_ context.Context, id uint, _ map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Update"]++

	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (m *memStore[T]) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Delete"]++

	if _, ok := m.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memStore[T]) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// versionedRows adds a row-version guarded write on top of memStore.
// lose makes the next n conditional writes report a lost race.
type versionedRows[T any] struct {
	*memStore[T]
	versionOf func(*T) *string
	lose      int
	writes    []map[string]interface{}
}

func (v *versionedRows[T]) UpdateVersioned(_ context.Context, id uint, expected, next string, updates map[string]interface{}) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	row, ok := v.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v.lose > 0 {
		v.lose--
		*v.versionOf(row) = *v.versionOf(row) + "x"
		return repository.ErrVersionMismatch
	}
	if *v.versionOf(row) != expected {
		return repository.ErrVersionMismatch
	}
	*v.versionOf(row) = next
	v.writes = append(v.writes, updates)
	return nil
}

type fakeLobbyStore struct {
	*versionedRows[model.Lobby]
	members map[uint][]model.LobbyMember
	// beforeWrite runs at the start of UpdateVersioned, ahead of the capacity check
	beforeWrite func()
}

func newFakeLobbyStore() *fakeLobbyStore {
	rows := newMemStore(func(l *model.Lobby) *uint { return &l.ID })
	return &fakeLobbyStore{
		versionedRows: &versionedRows[model.Lobby]{
			memStore:  rows,
			versionOf: func(l *model.Lobby) *string { return &l.RowVersion },
		},
		members: map[uint][]model.LobbyMember{},
	}
}

func (f *fakeLobbyStore) CreateWithOwner(ctx context.Context, lobby *model.Lobby, joinedAt time.Time) error {
	if err := f.Create(ctx, lobby); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[lobby.ID] = []model.LobbyMember{{LobbyID: lobby.ID, UserKey: lobby.OwnerKey, JoinedAt: joinedAt}}
	return nil
}

// UpdateVersioned rejects a max_team_size below the member count seen at write time
func (f *fakeLobbyStore) UpdateVersioned(ctx context.Context, id uint, expected, next string, updates map[string]interface{}) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	if size, ok := updates["max_team_size"].(int); ok {
		f.mu.Lock()
		count := len(f.members[id])
		f.mu.Unlock()
		if count > size {
			return repository.ErrBelowMembers
		}
	}
	return f.versionedRows.UpdateVersioned(ctx, id, expected, next, updates)
}

func (f *fakeLobbyStore) DeleteWithMembers(ctx context.Context, lobbyID uint) error {
	if err := f.Delete(ctx, lobbyID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, lobbyID)
	return nil
}

func (f *fakeLobbyStore) AddMember(_ context.Context, lobbyID uint, userKey string, joinedAt time.Time) (*model.LobbyMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lobby, ok := f.rows[lobbyID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, m := range f.members[lobbyID] {
		if m.UserKey == userKey {
			return nil, repository.ErrAlreadyExists
		}
	}
	if len(f.members[lobbyID]) >= lobby.MaxTeamSize {
		return nil, repository.ErrCapacity
	}
	m := model.LobbyMember{LobbyID: lobbyID, UserKey: userKey, JoinedAt: joinedAt}
	f.members[lobbyID] = append(f.members[lobbyID], m)
	return &m, nil
}

func (f *fakeLobbyStore) RemoveMember(_ context.Context, lobbyID uint, userKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.members[lobbyID]
	for i, m := range list {
		if m.UserKey == userKey {
			f.members[lobbyID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeLobbyStore) ListMembers(_ context.Context, lobbyID uint, page pagination.Request) ([]model.LobbyMember, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := f.members[lobbyID]
	out := []model.LobbyMember{}
	for i := page.Offset(); i < len(list) && len(out) < page.Limit; i++ {
		out = append(out, list[i])
	}
	return out, int64(len(list)), nil
}

func (f *fakeLobbyStore) CountMembers(_ context.Context, ids []uint) (map[uint]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[uint]int64, len(ids))
	for _, id := range ids {
		out[id] = int64(len(f.members[id]))
	}
	return out, nil
}

type fakeProfileStore struct {
	*versionedRows[model.UserProfile]
}

func newFakeProfileStore() *fakeProfileStore {
	rows := newMemStore(func(p *model.UserProfile) *uint { return &p.ID })
	return &fakeProfileStore{
		versionedRows: &versionedRows[model.UserProfile]{
			memStore:  rows,
			versionOf: func(p *model.UserProfile) *string { return &p.RowVersion },
		},
	}
}

func (f *fakeProfileStore) FindByUserKey(_ context.Context, userKey string) (*model.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.rows {
		if p.UserKey == userKey {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}
