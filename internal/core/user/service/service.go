package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agora/internal/apperr"
	"agora/internal/core/apub"
	userEntity "agora/internal/core/user"
	"agora/internal/ports/store"
	userPort "agora/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// UserService سرویس مدیریت کاربران و اعتبارسنجی توکن
type UserService struct {
	UserRepository      userPort.UserRepository
	jwtKey              []byte
	hostname            string
	protocolAndHostname string
	logger              *zap.Logger
	now                 func() time.Time
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, hostname, protocolAndHostname string, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		UserRepository:      repo,
		jwtKey:              jwtKey,
		hostname:            hostname,
		protocolAndHostname: protocolAndHostname,
		logger:              logger,
		now:                 time.Now,
	}
}

// LoginUser ورود کاربر و صدور توکن JWT
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	view, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Error("Error finding user", zap.String("username", username), zap.Error(err))
		}
		return nil, apperr.New(apperr.CodeIncorrectCredentials, "")
	}

	// مقایسه پسورد هش‌شده
	if err := bcrypt.CompareHashAndPassword([]byte(view.LocalUser.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.CodeIncorrectCredentials, "")
	}

	token, expiresAt, err := s.generateJWT(view.LocalUser.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, fmt.Errorf("signing token: %w", err))
	}
	return &userPort.LoginResponse{JWT: token, ExpiresAt: expiresAt}, nil
}

func (s *UserService) generateJWT(localUserID uuid.UUID) (string, int64, error) {
	expiresAt := s.now().Add(tokenTTL).Unix()
	claims := &jwt.StandardClaims{
		Subject:   localUserID.String(),
		Issuer:    s.hostname,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtKey)
	return signed, expiresAt, err
}

// RegisterUser ثبت‌نام کاربر جدید
func (s *UserService) RegisterUser(ctx context.Context, username, displayName, password string) (*userPort.PersonDTO, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.New(apperr.CodeValidationFailed, "username and password are required")
	}

	if existing, err := s.UserRepository.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperr.New(apperr.CodeUsernameTaken, "")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	actorID, err := apub.GenerateLocalEndpoint(apub.EndpointPerson, username, s.protocolAndHostname)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	person := &userEntity.Person{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        username,
		DisplayName: displayName,
		ActorID:     actorID,
		Local:       true,
	}
	localUser := &userEntity.LocalUser{
		ID:       uuid.Must(uuid.NewV4()),
		PersonID: person.ID,
		Password: string(hashedPassword),
	}

	view, err := s.UserRepository.Create(ctx, person, localUser)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.CodeUsernameTaken, "")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	s.logger.Info("Registered user", zap.String("username", username), zap.Stringer("person_id", view.Person.ID))
	dto := userPort.ToPersonDTO(view.Person)
	return &dto, nil
}

// LocalUserViewFromJWT resolves a credential into the acting local user. Any failure is Unauthorized.
func (s *UserService) LocalUserViewFromJWT(ctx context.Context, token string) (*userPort.LocalUserView, error) {
	if token == "" {
		return nil, apperr.New(apperr.CodeUnauthorized, "missing credential")
	}

	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Wrap(apperr.CodeUnauthorized, err)
	}
	if claims.Issuer != s.hostname {
		return nil, apperr.New(apperr.CodeUnauthorized, "foreign issuer")
	}

	localUserID, err := uuid.FromString(claims.Subject)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnauthorized, err)
	}

	view, err := s.UserRepository.FindLocalUserView(ctx, localUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.New(apperr.CodeUnauthorized, "unknown user")
		}
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	if view.Person.Banned {
		return nil, apperr.New(apperr.CodeUnauthorized, "site_ban")
	}
	if view.Person.Deleted {
		return nil, apperr.New(apperr.CodeUnauthorized, "deleted")
	}
	return view, nil
}
