package memory

import (
	"context"

	"agora/internal/core/community"
	communityPort "agora/internal/ports/community"
	"agora/internal/ports/store"

	"github.com/gofrs/uuid"
)

type CommunityRepository struct{ s *Store }

func (r *CommunityRepository) FindByID(ctx context.Context, id uuid.UUID) (*community.Community, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.communities[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CommunityRepository) Follow(ctx context.Context, f *community.Follower) (*community.Follower, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{f.CommunityID, f.PersonID}
	if _, exists := r.s.followers[k]; exists {
		return nil, store.ErrDuplicate
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	f.CreatedAt = r.s.now()
	row := *f
	r.s.followers[k] = &row
	return f, nil
}

func (r *CommunityRepository) Unfollow(ctx context.Context, personID, communityID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key{communityID, personID}
	if _, exists := r.s.followers[k]; !exists {
		return store.ErrNotFound
	}
	delete(r.s.followers, k)
	return nil
}

func (r *CommunityRepository) FindBan(ctx context.Context, personID, communityID uuid.UUID) (*community.PersonBan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bans[key{communityID, personID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *CommunityRepository) IsModerator(ctx context.Context, personID, communityID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.moderators[key{communityID, personID}], nil
}

func (r *CommunityRepository) Languages(ctx context.Context, communityID uuid.UUID) ([]int32, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]int32(nil), r.s.communityLanguages[communityID]...), nil
}

func (r *CommunityRepository) ReadView(ctx context.Context, communityID uuid.UUID, personID *uuid.UUID) (*communityPort.CommunityView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.communities[communityID]
	if !ok {
		return nil, store.ErrNotFound
	}

	view := &communityPort.CommunityView{Community: *c, Subscribed: communityPort.NotSubscribed}
	for k, f := range r.s.followers {
		if k.a == communityID && !f.Pending {
			view.Counts.Subscribers++
		}
	}
	for _, p := range r.s.posts {
		if p.CommunityID == communityID {
			view.Counts.Posts++
		}
	}
	if personID != nil {
		view.Subscribed = communityPort.SubscribedFrom(r.s.followers[key{communityID, *personID}])
	}
	return view, nil
}
