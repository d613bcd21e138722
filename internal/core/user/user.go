package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// Person هویت عمومی یک کاربر (محلی یا فدرال)
type Person struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name        string    `gorm:"type:varchar(255);unique;not null"`
	DisplayName string    `gorm:"type:varchar(255)"`
	ActorID     string    `gorm:"type:varchar(255);unique;not null"`
	Local       bool      `gorm:"not null;default:true"`
	Banned      bool      `gorm:"not null;default:false"`
	Deleted     bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// LocalUser حساب کاربری محلی که به یک Person تعلق دارد
type LocalUser struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	PersonID  uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	Person    Person    `gorm:"foreignkey:PersonID"`
	Password  string    `gorm:"not null"`
	Admin     bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// LocalUserLanguage زبان‌هایی که کاربر برای محتوا انتخاب کرده است
type LocalUserLanguage struct {
	LocalUserID uuid.UUID `gorm:"primaryKey;type:char(36)"`
	LanguageID  int32     `gorm:"primaryKey"`
}
