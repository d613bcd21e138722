package database

import (
	"context"
	"fmt"

	"agora/internal/core/community"
	"agora/internal/core/post"
	"agora/internal/core/site"
	"agora/internal/core/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models همه‌ی جدول‌هایی که AutoMigrate می‌سازد
func Models() []interface{} {
	return []interface{}{
		&user.Person{},
		&user.LocalUser{},
		&user.LocalUserLanguage{},
		&site.LocalSite{},
		&site.Language{},
		&community.Community{},
		&community.Follower{},
		&community.Moderator{},
		&community.PersonBan{},
		&community.Language{},
		&post.Post{},
		&post.Like{},
		&post.Read{},
	}
}

// Migrate creates the schema and the reserved undetermined language row.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	undetermined := site.Language{ID: site.UndeterminedLanguage, Code: "und", Name: "Undetermined"}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&undetermined).Error; err != nil {
		return fmt.Errorf("seeding languages: %w", err)
	}
	return nil
}
