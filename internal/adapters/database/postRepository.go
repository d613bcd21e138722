package database

import (
	"context"
	"errors"

	"agora/internal/core/post"
	postPort "agora/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// CreateWithApID درج پست و ثبت ap_id در یک تراکنش؛ با شکست هر مرحله ردیفی باقی نمی‌ماند
func (repo *PostRepositoryDatabase) CreateWithApID(ctx context.Context, p *post.Post, apID func(id uuid.UUID) (string, error)) (*post.Post, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return translateError(err)
		}
		id, err := apID(p.ID)
		if err != nil {
			return err
		}
		if err := tx.Model(&post.Post{}).Where("id = ?", p.ID).Update("ap_id", id).Error; err != nil {
			return translateError(err)
		}
		p.ApID = id
		return nil
	})
	if err != nil {
		p.ApID = ""
		return nil, err
	}
	return p, nil
}

// Like upserts the vote so a person has at most one row per post.
func (repo *PostRepositoryDatabase) Like(ctx context.Context, like *post.Like) error {
	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "person_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score"}),
	}).Create(like).Error
	return translateError(err)
}

func (repo *PostRepositoryDatabase) MarkRead(ctx context.Context, personID, postID uuid.UUID) error {
	read := &post.Read{PostID: postID, PersonID: personID}
	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(read).Error
	return translateError(err)
}

type voteCounts struct {
	Upvotes   int64
	Downvotes int64
}

func (repo *PostRepositoryDatabase) ReadView(ctx context.Context, postID uuid.UUID, personID *uuid.UUID) (*postPort.PostView, error) {
	db := repo.db.WithContext(ctx)

	var p post.Post
	if err := db.Where("id = ?", postID).First(&p).Error; err != nil {
		return nil, translateError(err)
	}
	view := &postPort.PostView{Post: p}

	if err := db.Where("id = ?", p.CreatorID).First(&view.Creator).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Where("id = ?", p.CommunityID).First(&view.Community).Error; err != nil {
		return nil, translateError(err)
	}

	var vc voteCounts
	err := db.Model(&post.Like{}).
		Select("COALESCE(SUM(CASE WHEN score > 0 THEN 1 ELSE 0 END), 0) AS upvotes, "+
			"COALESCE(SUM(CASE WHEN score < 0 THEN 1 ELSE 0 END), 0) AS downvotes").
		Where("post_id = ?", postID).
		Scan(&vc).Error
	if err != nil {
		return nil, translateError(err)
	}
	view.Counts = postPort.PostCounts{
		Score:     vc.Upvotes - vc.Downvotes,
		Upvotes:   vc.Upvotes,
		Downvotes: vc.Downvotes,
	}

	if personID != nil {
		var like post.Like
		err := db.Where("post_id = ? AND person_id = ?", postID, *personID).First(&like).Error
		switch {
		case err == nil:
			score := like.Score
			view.MyVote = &score
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, translateError(err)
		}

		var reads int64
		if err := db.Model(&post.Read{}).
			Where("post_id = ? AND person_id = ?", postID, *personID).
			Count(&reads).Error; err != nil {
			return nil, translateError(err)
		}
		view.Read = reads > 0
	}
	return view, nil
}

var _ postPort.PostRepository = (*PostRepositoryDatabase)(nil)
