package database

import (
	"context"
	"errors"

	"agora/internal/core/site"

	"gorm.io/gorm"
)

type SiteRepositoryDatabase struct {
	db *gorm.DB
}

func NewSiteRepositoryDatabase(db *gorm.DB) *SiteRepositoryDatabase {
	return &SiteRepositoryDatabase{db: db}
}

// ReadLocalSite returns the single site row, or unfiltered defaults before one is configured.
func (repo *SiteRepositoryDatabase) ReadLocalSite(ctx context.Context) (*site.LocalSite, error) {
	var ls site.LocalSite
	err := repo.db.WithContext(ctx).Order("created_at").First(&ls).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &site.LocalSite{Name: "agora"}, nil
	}
	if err != nil {
		return nil, translateError(err)
	}
	return &ls, nil
}
