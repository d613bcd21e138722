package post

import (
	"context"
	"time"

	"agora/internal/core/community"
	"agora/internal/core/post"
	"agora/internal/core/user"
	communityPort "agora/internal/ports/community"
	userPort "agora/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	// CreateWithApID inserts the row, fills in its ID and stores the ap_id built by apID,
	// all in one transaction: when apID or any write fails nothing is persisted.
	// Column overflows surface as *store.ValueTooLongError.
	CreateWithApID(ctx context.Context, p *post.Post, apID func(id uuid.UUID) (string, error)) (*post.Post, error)
	// Like upserts the (post, person) vote.
	Like(ctx context.Context, like *post.Like) error
	// MarkRead is a no-op when the read mark already exists.
	MarkRead(ctx context.Context, personID, postID uuid.UUID) error
	ReadView(ctx context.Context, postID uuid.UUID, personID *uuid.UUID) (*PostView, error)
}

type PostCounts struct {
	Score     int64 `json:"score"`
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

// PostView پست همراه با سازنده، انجمن و وضعیت از دید درخواست‌کننده
type PostView struct {
	Post      post.Post
	Creator   user.Person
	Community community.Community
	Counts    PostCounts
	MyVote    *int16
	Read      bool
}

// DTOها برای UseCase
type CreatePost struct {
	Name        string    `json:"name"`
	Body        *string   `json:"body,omitempty"`
	URL         *string   `json:"url,omitempty"`
	CommunityID uuid.UUID `json:"community_id"`
	NSFW        bool      `json:"nsfw"`
	LanguageID  *int32    `json:"language_id,omitempty"`
	Honeypot    *string   `json:"honeypot,omitempty"`
	Auth        string    `json:"auth"`
}

type PostDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	URL              *string   `json:"url,omitempty"`
	Body             *string   `json:"body,omitempty"`
	CreatorID        string    `json:"creator_id"`
	CommunityID      string    `json:"community_id"`
	NSFW             bool      `json:"nsfw"`
	EmbedTitle       *string   `json:"embed_title,omitempty"`
	EmbedDescription *string   `json:"embed_description,omitempty"`
	EmbedVideoURL    *string   `json:"embed_video_url,omitempty"`
	ThumbnailURL     *string   `json:"thumbnail_url,omitempty"`
	LanguageID       int32     `json:"language_id"`
	ApID             string    `json:"ap_id"`
	Local            bool      `json:"local"`
	Published        time.Time `json:"published"`
	Updated          time.Time `json:"updated"`
}

type PostViewDTO struct {
	Post      PostDTO                    `json:"post"`
	Creator   userPort.PersonDTO         `json:"creator"`
	Community communityPort.CommunityDTO `json:"community"`
	Counts    PostCounts                 `json:"counts"`
	MyVote    *int16                     `json:"my_vote,omitempty"`
	Read      bool                       `json:"read"`
}

type PostResponse struct {
	PostView PostViewDTO `json:"post_view"`
}

func ToPostDTO(p post.Post) PostDTO {
	return PostDTO{
		ID:               p.ID.String(),
		Name:             p.Name,
		URL:              p.URL,
		Body:             p.Body,
		CreatorID:        p.CreatorID.String(),
		CommunityID:      p.CommunityID.String(),
		NSFW:             p.NSFW,
		EmbedTitle:       p.EmbedTitle,
		EmbedDescription: p.EmbedDescription,
		EmbedVideoURL:    p.EmbedVideoURL,
		ThumbnailURL:     p.ThumbnailURL,
		LanguageID:       p.LanguageID,
		ApID:             p.ApID,
		Local:            p.Local,
		Published:        p.CreatedAt,
		Updated:          p.UpdatedAt,
	}
}

func ToPostViewDTO(v *PostView) PostViewDTO {
	return PostViewDTO{
		Post:      ToPostDTO(v.Post),
		Creator:   userPort.ToPersonDTO(v.Creator),
		Community: communityPort.ToCommunityDTO(v.Community),
		Counts:    v.Counts,
		MyVote:    v.MyVote,
		Read:      v.Read,
	}
}
