package database

import (
	"context"

	"agora/internal/core/user"
	userPort "agora/internal/ports/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, person *user.Person, localUser *user.LocalUser) (*userPort.LocalUserView, error) {
	if person.ID == uuid.Nil {
		person.ID = uuid.Must(uuid.NewV4())
	}
	if localUser.ID == uuid.Nil {
		localUser.ID = uuid.Must(uuid.NewV4())
	}
	localUser.PersonID = person.ID

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(person).Error; err != nil {
			return err
		}
		return tx.Omit("Person").Create(localUser).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &userPort.LocalUserView{LocalUser: *localUser, Person: *person}, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*userPort.LocalUserView, error) {
	db := repo.db.WithContext(ctx)
	var lu user.LocalUser
	personIDs := db.Model(&user.Person{}).Select("id").Where("name = ?", username)
	if err := db.Preload("Person").Where("person_id IN (?)", personIDs).First(&lu).Error; err != nil {
		return nil, translateError(err)
	}
	return &userPort.LocalUserView{LocalUser: lu, Person: lu.Person}, nil
}

func (repo *UserRepositoryDatabase) FindLocalUserView(ctx context.Context, localUserID uuid.UUID) (*userPort.LocalUserView, error) {
	var lu user.LocalUser
	if err := repo.db.WithContext(ctx).Preload("Person").Where("id = ?", localUserID).First(&lu).Error; err != nil {
		return nil, translateError(err)
	}
	return &userPort.LocalUserView{LocalUser: lu, Person: lu.Person}, nil
}

func (repo *UserRepositoryDatabase) Languages(ctx context.Context, localUserID uuid.UUID) ([]int32, error) {
	var langs []int32
	err := repo.db.WithContext(ctx).Model(&user.LocalUserLanguage{}).
		Where("local_user_id = ?", localUserID).
		Pluck("language_id", &langs).Error
	return langs, translateError(err)
}
