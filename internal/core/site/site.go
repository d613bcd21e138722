package site

import (
	"time"

	"github.com/gofrs/uuid"
)

// LocalSite تنظیمات سراسری همین نمونه‌ی سرور (یک ردیف)
type LocalSite struct {
	ID              uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name            string    `gorm:"type:varchar(255);not null"`
	SlurFilterRegex *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// Language a content language; ID 0 is reserved for "undetermined".
type Language struct {
	ID   int32  `gorm:"primaryKey;autoIncrement:false"`
	Code string `gorm:"type:varchar(3);not null"`
	Name string `gorm:"type:varchar(255);not null"`
}

const UndeterminedLanguage int32 = 0
