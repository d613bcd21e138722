package memory

import (
	"context"

	"agora/internal/core/site"
	"agora/internal/core/user"
	"agora/internal/ports/store"
	userPort "agora/internal/ports/user"

	"github.com/gofrs/uuid"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, person *user.Person, localUser *user.LocalUser) (*userPort.LocalUserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.persons {
		if p.Name == person.Name {
			return nil, store.ErrDuplicate
		}
	}
	if person.ID == uuid.Nil {
		person.ID = uuid.Must(uuid.NewV4())
	}
	if localUser.ID == uuid.Nil {
		localUser.ID = uuid.Must(uuid.NewV4())
	}
	localUser.PersonID = person.ID
	now := r.s.now()
	person.CreatedAt, localUser.CreatedAt = now, now

	p, lu := *person, *localUser
	r.s.persons[p.ID] = &p
	r.s.localUsers[lu.ID] = &lu
	return &userPort.LocalUserView{LocalUser: lu, Person: p}, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*userPort.LocalUserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, lu := range r.s.localUsers {
		if p := r.s.persons[lu.PersonID]; p != nil && p.Name == username {
			return &userPort.LocalUserView{LocalUser: *lu, Person: *p}, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *UserRepository) FindLocalUserView(ctx context.Context, localUserID uuid.UUID) (*userPort.LocalUserView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lu, ok := r.s.localUsers[localUserID]
	if !ok {
		return nil, store.ErrNotFound
	}
	p, ok := r.s.persons[lu.PersonID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &userPort.LocalUserView{LocalUser: *lu, Person: *p}, nil
}

func (r *UserRepository) Languages(ctx context.Context, localUserID uuid.UUID) ([]int32, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]int32(nil), r.s.userLanguages[localUserID]...), nil
}

// UpdatePerson overwrites a stored person, e.g. to ban it.
func (s *Store) UpdatePerson(p user.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons[p.ID] = &p
}

type SiteRepository struct{ s *Store }

func (r *SiteRepository) ReadLocalSite(ctx context.Context) (*site.LocalSite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.localSite == nil {
		return &site.LocalSite{Name: "agora"}, nil
	}
	ls := *r.s.localSite
	return &ls, nil
}
