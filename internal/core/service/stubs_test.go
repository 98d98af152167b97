package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/9rib/marketplace-api/internal/core/domain"
	"github.com/9rib/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory store shared by the stub repositories
// ---------------------------------------------------------------------------

type memStore struct {
	apps     map[string]domain.Application
	profiles map[string]domain.Profile
	artisans map[string]domain.ArtisanProfile // keyed by artisan id

	updateDecisionErr error
	upsertErr         error
	updateRoleErr     error
	findAppErr        error

	upserts int
}

func newMemStore() *memStore {
	return &memStore{
		apps:     make(map[string]domain.Application),
		profiles: make(map[string]domain.Profile),
		artisans: make(map[string]domain.ArtisanProfile),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.apps {
		c.apps[k] = v
	}
	for k, v := range s.profiles {
		c.profiles[k] = v
	}
	for k, v := range s.artisans {
		c.artisans[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.apps, s.profiles, s.artisans = from.apps, from.profiles, from.artisans
}

func (s *memStore) artisanByUser(userID string) (domain.ArtisanProfile, bool) {
	for _, a := range s.artisans {
		if a.UserID == userID {
			return a, true
		}
	}
	return domain.ArtisanProfile{}, false
}

func (s *memStore) addProfile(id string, role domain.Role) {
	s.profiles[id] = domain.Profile{ID: id, Email: id + "@9rib.ma", FullName: id, Role: role}
}

// ---------------------------------------------------------------------------
// Repositories
// ---------------------------------------------------------------------------

type stubAppRepo struct{ s *memStore }

func (r stubAppRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.apps[app.ID] = *app
	return nil
}

func (r stubAppRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	if r.s.findAppErr != nil {
		return nil, r.s.findAppErr
	}
	app, ok := r.s.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &app, nil
}

func (r stubAppRepo) List(_ context.Context, f ports.ListApplicationsFilter) ([]*domain.Application, int64, error) {
	var out []*domain.Application
	for _, a := range r.s.apps {
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r stubAppRepo) UpdateDecision(_ context.Context, app *domain.Application) error {
	if r.s.updateDecisionErr != nil {
		return r.s.updateDecisionErr
	}
	if _, ok := r.s.apps[app.ID]; !ok {
		return domain.ErrApplicationNotFound
	}
	r.s.apps[app.ID] = *app
	return nil
}

type stubProfileRepo struct{ s *memStore }

func (r stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	for _, existing := range r.s.profiles {
		if existing.Email == p.Email {
			return domain.ErrUserExists
		}
	}
	r.s.profiles[p.ID] = *p
	return nil
}

func (r stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return &p, nil
}

func (r stubProfileRepo) FindByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, p := range r.s.profiles {
		if p.Email == email {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := r.s.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.s.profiles[p.ID] = *p
	return nil
}

func (r stubProfileRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	if r.s.updateRoleErr != nil {
		return r.s.updateRoleErr
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Role = role
	r.s.profiles[id] = p
	return nil
}

type stubArtisanRepo struct{ s *memStore }

func (r stubArtisanRepo) UpsertByUser(_ context.Context, p *domain.ArtisanProfile) error {
	if r.s.upsertErr != nil {
		return r.s.upsertErr
	}
	r.s.upserts++
	if existing, ok := r.s.artisanByUser(p.UserID); ok {
		upd := *p
		upd.ID = existing.ID
		upd.CreatedAt = existing.CreatedAt
		r.s.artisans[existing.ID] = upd
		return nil
	}
	r.s.artisans[p.ID] = *p
	return nil
}

func (r stubArtisanRepo) FindByID(_ context.Context, id string) (*domain.ArtisanListing, error) {
	a, ok := r.s.artisans[id]
	if !ok {
		return nil, domain.ErrArtisanNotFound
	}
	return &domain.ArtisanListing{ArtisanProfile: a, OwnerName: r.s.profiles[a.UserID].FullName}, nil
}

func (r stubArtisanRepo) FindByUserID(_ context.Context, userID string) (*domain.ArtisanProfile, error) {
	a, ok := r.s.artisanByUser(userID)
	if !ok {
		return nil, domain.ErrArtisanNotFound
	}
	return &a, nil
}

func (r stubArtisanRepo) List(_ context.Context, q ports.ArtisanQuery) ([]*domain.ArtisanListing, int64, error) {
	var out []*domain.ArtisanListing
	for _, a := range r.s.artisans {
		if q.ActiveOnly && !a.IsActive {
			continue
		}
		if q.CategoryID != "" && a.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, &domain.ArtisanListing{ArtisanProfile: a})
	}
	return out, int64(len(out)), nil
}

func (r stubArtisanRepo) Top(_ context.Context, limit int) ([]*domain.ArtisanListing, error) {
	out, _, _ := r.List(context.Background(), ports.ArtisanQuery{ActiveOnly: true})
	sort.Slice(out, func(i, j int) bool { return out[i].RatingAverage > out[j].RatingAverage })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r stubArtisanRepo) Update(_ context.Context, p *domain.ArtisanProfile) error {
	if _, ok := r.s.artisans[p.ID]; !ok {
		return domain.ErrArtisanNotFound
	}
	r.s.artisans[p.ID] = *p
	return nil
}

func (r stubArtisanRepo) IncrementViews(_ context.Context, id string) error {
	a, ok := r.s.artisans[id]
	if !ok {
		return domain.ErrArtisanNotFound
	}
	a.ViewCount++
	r.s.artisans[id] = a
	return nil
}

// stubTx restores the store snapshot when fn fails, like a rolled back transaction.
type stubTx struct{ s *memStore }

func (t stubTx) WithinTransaction(ctx context.Context, fn func(context.Context, ports.TxRepositories) error) error {
	before := t.s.snapshot()
	err := fn(ctx, ports.TxRepositories{
		Applications: stubAppRepo{t.s},
		Artisans:     stubArtisanRepo{t.s},
		Profiles:     stubProfileRepo{t.s},
	})
	if err != nil {
		t.s.restore(before)
	}
	return err
}

// ---------------------------------------------------------------------------
// Side-effect stubs
// ---------------------------------------------------------------------------

type stubEvents struct {
	inserted []*domain.ApplicationEvent
	err      error
}

func (e *stubEvents) InsertEvent(_ context.Context, ev *domain.ApplicationEvent) error {
	if e.err != nil {
		return e.err
	}
	e.inserted = append(e.inserted, ev)
	return nil
}

func (e *stubEvents) History(_ context.Context, applicationID string) ([]*domain.ApplicationEvent, error) {
	var out []*domain.ApplicationEvent
	for _, ev := range e.inserted {
		if ev.ApplicationID == applicationID {
			out = append(out, ev)
		}
	}
	return out, nil
}

type stubQueue struct {
	mu   sync.Mutex
	jobs []ports.NotificationJob
}

func (q *stubQueue) Enqueue(job ports.NotificationJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
}

var discardLogger = zerolog.Nop()
