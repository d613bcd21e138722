package communityapp

import (
	"context"
	"errors"
	"time"

	"agora/internal/apperr"
	"agora/internal/core/community"
	communityPort "agora/internal/ports/community"
	"agora/internal/ports/store"
	userPort "agora/internal/ports/user"

	"github.com/gofrs/uuid"
)

// Guard بررسی‌های فقط‌خواندنی محرومیت و حذف انجمن
type Guard struct {
	Communities communityPort.CommunityRepository
	now         func() time.Time
}

func NewGuard(repo communityPort.CommunityRepository) *Guard {
	return &Guard{Communities: repo, now: time.Now}
}

// ReadCommunity loads a community, mapping absence to CommunityNotFound.
func (g *Guard) ReadCommunity(ctx context.Context, id uuid.UUID) (*community.Community, error) {
	c, err := g.Communities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.CodeCommunityNotFound, id.String())
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	return c, nil
}

func (g *Guard) CheckBan(ctx context.Context, personID, communityID uuid.UUID) error {
	ban, err := g.Communities.FindBan(ctx, personID, communityID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if ban.Active(g.now()) {
		return apperr.New(apperr.CodeBannedFromCommunity, "")
	}
	return nil
}

func (g *Guard) CheckDeletedOrRemoved(c *community.Community) error {
	if c.Deleted || c.Removed {
		return apperr.New(apperr.CodeCommunityRemoved, "")
	}
	return nil
}

// CheckCanParticipate is the ban check followed by the deleted/removed check.
func (g *Guard) CheckCanParticipate(ctx context.Context, personID uuid.UUID, c *community.Community) error {
	if err := g.CheckBan(ctx, personID, c.ID); err != nil {
		return err
	}
	return g.CheckDeletedOrRemoved(c)
}

// CheckCanPost enforces posting_restricted_to_mods: moderators and site admins only.
func (g *Guard) CheckCanPost(ctx context.Context, view *userPort.LocalUserView, c *community.Community) error {
	if !c.PostingRestrictedToMods || view.LocalUser.Admin {
		return nil
	}
	isMod, err := g.Communities.IsModerator(ctx, view.Person.ID, c.ID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err)
	}
	if !isMod {
		return apperr.New(apperr.CodePostingRestricted, "")
	}
	return nil
}
