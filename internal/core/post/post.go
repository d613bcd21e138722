package post

import (
	"time"

	"github.com/gofrs/uuid"
)

// طول ستون‌ها؛ باید با تگ‌های gorm زیر یکی باشد
const (
	MaxNameLength = 200
	MaxURLLength  = 512
	MaxApIDLength = 255
)

type Post struct {
	ID               uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name             string    `gorm:"type:varchar(200);not null"`
	URL              *string   `gorm:"type:varchar(512)"`
	Body             *string   `gorm:"type:text"`
	CreatorID        uuid.UUID `gorm:"type:char(36);not null;index"`
	CommunityID      uuid.UUID `gorm:"type:char(36);not null;index"`
	NSFW             bool      `gorm:"not null;default:false"`
	EmbedTitle       *string   `gorm:"type:text"`
	EmbedDescription *string   `gorm:"type:text"`
	EmbedVideoURL    *string   `gorm:"type:varchar(512)"`
	ThumbnailURL     *string   `gorm:"type:varchar(512)"`
	LanguageID       int32     `gorm:"not null;default:0"`
	ApID             string    `gorm:"type:varchar(255);index"`
	Local            bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// Like رأی یک شخص به پست؛ برای هر (پست، شخص) حداکثر یک ردیف
type Like struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PersonID  uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Score     int16     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Like) TableName() string { return "post_likes" }

type Read struct {
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PersonID  uuid.UUID `gorm:"primaryKey;type:char(36)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Read) TableName() string { return "post_reads" }
