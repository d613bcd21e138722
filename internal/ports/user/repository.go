package user

import (
	"context"

	"agora/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران محلی
type UserRepository interface {
	Create(ctx context.Context, person *user.Person, localUser *user.LocalUser) (*LocalUserView, error)
	FindByUsername(ctx context.Context, username string) (*LocalUserView, error)
	FindLocalUserView(ctx context.Context, localUserID uuid.UUID) (*LocalUserView, error)
	Languages(ctx context.Context, localUserID uuid.UUID) ([]int32, error)
}

// AuthGate resolves a credential into the acting local user.
type AuthGate interface {
	LocalUserViewFromJWT(ctx context.Context, token string) (*LocalUserView, error)
}

// LocalUserView کاربر محلی همراه با Person مالک آن
type LocalUserView struct {
	LocalUser user.LocalUser
	Person    user.Person
}

// DTOها برای UseCase
type LoginResponse struct {
	JWT       string `json:"jwt"`
	ExpiresAt int64  `json:"expires_at"`
}

type PersonDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	ActorID     string `json:"actor_id"`
	Local       bool   `json:"local"`
}

func ToPersonDTO(p user.Person) PersonDTO {
	return PersonDTO{
		ID:          p.ID.String(),
		Name:        p.Name,
		DisplayName: p.DisplayName,
		ActorID:     p.ActorID,
		Local:       p.Local,
	}
}
