package community

import (
	"time"

	"github.com/gofrs/uuid"
)

// Community یک انجمن محلی یا آینه‌ی یک انجمن راه دور
type Community struct {
	ID                      uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name                    string    `gorm:"type:varchar(255);not null"`
	Title                   string    `gorm:"type:varchar(255);not null"`
	ActorID                 string    `gorm:"type:varchar(255);unique;not null"`
	Local                   bool      `gorm:"not null;default:true"`
	PostingRestrictedToMods bool      `gorm:"not null;default:false"`
	Deleted                 bool      `gorm:"not null;default:false"`
	Removed                 bool      `gorm:"not null;default:false"`
	CreatedAt               time.Time `gorm:"autoCreateTime"`
	UpdatedAt               time.Time `gorm:"autoUpdateTime"`
}

// Follower رابطه‌ی عضویت یک شخص در انجمن. Pending تا زمان پذیرش از سمت سرور راه دور true است.
type Follower struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	CommunityID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_community_person"`
	PersonID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_community_person"`
	Pending     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Follower) TableName() string { return "community_followers" }

type Moderator struct {
	CommunityID uuid.UUID `gorm:"primaryKey;type:char(36)"`
	PersonID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Moderator) TableName() string { return "community_moderators" }

// PersonBan محرومیت یک شخص از انجمن؛ Expires خالی یعنی دائمی
type PersonBan struct {
	CommunityID uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	PersonID    uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	Expires     *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (PersonBan) TableName() string { return "community_person_bans" }

// Active reports whether the ban still applies at now.
func (b PersonBan) Active(now time.Time) bool {
	return b.Expires == nil || b.Expires.After(now)
}

type Language struct {
	CommunityID uuid.UUID `gorm:"primaryKey;type:char(36)"`
	LanguageID  int32     `gorm:"primaryKey"`
}

func (Language) TableName() string { return "community_languages" }
