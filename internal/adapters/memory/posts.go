package memory

import (
	"context"
	"unicode/utf8"

	"agora/internal/core/post"
	postPort "agora/internal/ports/post"
	"agora/internal/ports/store"

	"github.com/gofrs/uuid"
)

type PostRepository struct{ s *Store }

func (r *PostRepository) CreateWithApID(ctx context.Context, p *post.Post, apID func(id uuid.UUID) (string, error)) (*post.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkLengths(p); err != nil {
		return nil, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	if _, exists := r.s.posts[p.ID]; exists {
		return nil, store.ErrDuplicate
	}
	id, err := apID(p.ID)
	if err != nil {
		return nil, err
	}
	if r.s.MaxApIDLength > 0 && utf8.RuneCountInString(id) > r.s.MaxApIDLength {
		return nil, &store.ValueTooLongError{Column: "ap_id"}
	}
	p.ApID = id
	now := r.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	row := *p
	r.s.posts[p.ID] = &row
	return p, nil
}

// checkLengths mirrors the varchar limits of the posts table.
func (s *Store) checkLengths(p *post.Post) error {
	if s.MaxNameLength > 0 && utf8.RuneCountInString(p.Name) > s.MaxNameLength {
		return &store.ValueTooLongError{Column: "name"}
	}
	if s.MaxURLLength <= 0 {
		return nil
	}
	for _, c := range []struct {
		column string
		value  *string
	}{
		{"url", p.URL},
		{"embed_video_url", p.EmbedVideoURL},
		{"thumbnail_url", p.ThumbnailURL},
	} {
		if c.value != nil && utf8.RuneCountInString(*c.value) > s.MaxURLLength {
			return &store.ValueTooLongError{Column: c.column}
		}
	}
	return nil
}

func (r *PostRepository) Like(ctx context.Context, like *post.Like) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[like.PostID]; !ok {
		return store.ErrNotFound
	}
	row := *like
	row.CreatedAt = r.s.now()
	r.s.likes[key{like.PostID, like.PersonID}] = &row
	return nil
}

func (r *PostRepository) MarkRead(ctx context.Context, personID, postID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[postID]; !ok {
		return store.ErrNotFound
	}
	r.s.reads[key{postID, personID}] = true
	return nil
}

func (r *PostRepository) ReadView(ctx context.Context, postID uuid.UUID, personID *uuid.UUID) (*postPort.PostView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postID]
	if !ok {
		return nil, store.ErrNotFound
	}
	view := &postPort.PostView{Post: *p}
	if c := r.s.communities[p.CommunityID]; c != nil {
		view.Community = *c
	}
	if creator := r.s.persons[p.CreatorID]; creator != nil {
		view.Creator = *creator
	}
	for k, l := range r.s.likes {
		if k.a != postID {
			continue
		}
		switch {
		case l.Score > 0:
			view.Counts.Upvotes++
		case l.Score < 0:
			view.Counts.Downvotes++
		}
	}
	view.Counts.Score = view.Counts.Upvotes - view.Counts.Downvotes
	if personID != nil {
		if l, ok := r.s.likes[key{postID, *personID}]; ok {
			score := l.Score
			view.MyVote = &score
		}
		view.Read = r.s.reads[key{postID, *personID}]
	}
	return view, nil
}
