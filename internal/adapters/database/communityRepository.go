package database

import (
	"context"
	"errors"

	"agora/internal/core/community"
	"agora/internal/core/post"
	communityPort "agora/internal/ports/community"
	"agora/internal/ports/store"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// CommunityRepositoryDatabase پیاده‌سازی CommunityRepository برای دیتابیس
type CommunityRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommunityRepositoryDatabase(db *gorm.DB) *CommunityRepositoryDatabase {
	return &CommunityRepositoryDatabase{db: db}
}

func (repo *CommunityRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*community.Community, error) {
	var c community.Community
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// Follow relies on the (community_id, person_id) unique index to reject a second row.
func (repo *CommunityRepositoryDatabase) Follow(ctx context.Context, f *community.Follower) (*community.Follower, error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	if err := repo.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, translateError(err)
	}
	return f, nil
}

func (repo *CommunityRepositoryDatabase) Unfollow(ctx context.Context, personID, communityID uuid.UUID) error {
	res := repo.db.WithContext(ctx).
		Where("person_id = ? AND community_id = ?", personID, communityID).
		Delete(&community.Follower{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (repo *CommunityRepositoryDatabase) FindBan(ctx context.Context, personID, communityID uuid.UUID) (*community.PersonBan, error) {
	var ban community.PersonBan
	err := repo.db.WithContext(ctx).
		Where("person_id = ? AND community_id = ?", personID, communityID).
		First(&ban).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ban, nil
}

func (repo *CommunityRepositoryDatabase) IsModerator(ctx context.Context, personID, communityID uuid.UUID) (bool, error) {
	var n int64
	err := repo.db.WithContext(ctx).Model(&community.Moderator{}).
		Where("person_id = ? AND community_id = ?", personID, communityID).
		Count(&n).Error
	if err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

func (repo *CommunityRepositoryDatabase) Languages(ctx context.Context, communityID uuid.UUID) ([]int32, error) {
	var langs []int32
	err := repo.db.WithContext(ctx).Model(&community.Language{}).
		Where("community_id = ?", communityID).
		Pluck("language_id", &langs).Error
	return langs, translateError(err)
}

func (repo *CommunityRepositoryDatabase) ReadView(ctx context.Context, communityID uuid.UUID, personID *uuid.UUID) (*communityPort.CommunityView, error) {
	db := repo.db.WithContext(ctx)

	c, err := repo.FindByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	view := &communityPort.CommunityView{Community: *c, Subscribed: communityPort.NotSubscribed}

	if err := db.Model(&community.Follower{}).
		Where("community_id = ? AND pending = ?", communityID, false).
		Count(&view.Counts.Subscribers).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&post.Post{}).
		Where("community_id = ?", communityID).
		Count(&view.Counts.Posts).Error; err != nil {
		return nil, translateError(err)
	}

	if personID != nil {
		var f community.Follower
		err := db.Where("community_id = ? AND person_id = ?", communityID, *personID).First(&f).Error
		switch {
		case err == nil:
			view.Subscribed = communityPort.SubscribedFrom(&f)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, translateError(err)
		}
	}
	return view, nil
}

var _ communityPort.CommunityRepository = (*CommunityRepositoryDatabase)(nil)
