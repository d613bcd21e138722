package community

import (
	"context"
	"time"

	"agora/internal/core/community"

	"github.com/gofrs/uuid"
)

// CommunityRepository پورت برای خواندن انجمن‌ها و مدیریت رابطه‌ی دنبال‌کردن
type CommunityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*community.Community, error)
	// Follow inserts the relation; store.ErrDuplicate when (person, community) already exists.
	Follow(ctx context.Context, f *community.Follower) (*community.Follower, error)
	// Unfollow deletes the relation; store.ErrNotFound when there was none.
	Unfollow(ctx context.Context, personID, communityID uuid.UUID) error
	FindBan(ctx context.Context, personID, communityID uuid.UUID) (*community.PersonBan, error)
	IsModerator(ctx context.Context, personID, communityID uuid.UUID) (bool, error)
	Languages(ctx context.Context, communityID uuid.UUID) ([]int32, error)
	ReadView(ctx context.Context, communityID uuid.UUID, personID *uuid.UUID) (*CommunityView, error)
}

// SubscribedType وضعیت عضویت از دید درخواست‌کننده
type SubscribedType string

const (
	NotSubscribed SubscribedType = "NotSubscribed"
	Pending       SubscribedType = "Pending"
	Subscribed    SubscribedType = "Subscribed"
)

// SubscribedFrom maps a follower row (or its absence) onto the caller-visible state.
func SubscribedFrom(f *community.Follower) SubscribedType {
	switch {
	case f == nil:
		return NotSubscribed
	case f.Pending:
		return Pending
	default:
		return Subscribed
	}
}

type CommunityCounts struct {
	Subscribers int64 `json:"subscribers"`
	Posts       int64 `json:"posts"`
}

type CommunityView struct {
	Community  community.Community
	Subscribed SubscribedType
	Counts     CommunityCounts
}

// DTOها برای UseCase
type FollowCommunity struct {
	CommunityID uuid.UUID `json:"community_id"`
	Follow      bool      `json:"follow"`
	Auth        string    `json:"auth"`
}

type CommunityDTO struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Title                   string    `json:"title"`
	ActorID                 string    `json:"actor_id"`
	Local                   bool      `json:"local"`
	PostingRestrictedToMods bool      `json:"posting_restricted_to_mods"`
	Deleted                 bool      `json:"deleted"`
	Removed                 bool      `json:"removed"`
	Published               time.Time `json:"published"`
}

type CommunityViewDTO struct {
	Community  CommunityDTO    `json:"community"`
	Subscribed SubscribedType  `json:"subscribed"`
	Counts     CommunityCounts `json:"counts"`
}

type CommunityResponse struct {
	CommunityView CommunityViewDTO `json:"community_view"`
}

func ToCommunityDTO(c community.Community) CommunityDTO {
	return CommunityDTO{
		ID:                      c.ID.String(),
		Name:                    c.Name,
		Title:                   c.Title,
		ActorID:                 c.ActorID,
		Local:                   c.Local,
		PostingRestrictedToMods: c.PostingRestrictedToMods,
		Deleted:                 c.Deleted,
		Removed:                 c.Removed,
		Published:               c.CreatedAt,
	}
}

func ToCommunityViewDTO(v *CommunityView) CommunityViewDTO {
	return CommunityViewDTO{
		Community:  ToCommunityDTO(v.Community),
		Subscribed: v.Subscribed,
		Counts:     v.Counts,
	}
}
