package communityapp

import (
	"context"
	"fmt"

	"agora/internal/apperr"
	"agora/internal/core/site"
	communityPort "agora/internal/ports/community"
	userPort "agora/internal/ports/user"

	"github.com/gofrs/uuid"
)

// LanguageResolver تعیین و اعتبارسنجی زبان پست نسبت به زبان‌های مجاز انجمن
type LanguageResolver struct {
	Users       userPort.UserRepository
	Communities communityPort.CommunityRepository
}

func NewLanguageResolver(users userPort.UserRepository, communities communityPort.CommunityRepository) *LanguageResolver {
	return &LanguageResolver{Users: users, Communities: communities}
}

// Resolve returns the explicit language when given, otherwise the default for the
// user/community pair, and checks the result against the community's language set.
func (r *LanguageResolver) Resolve(ctx context.Context, requested *int32, localUserID, communityID uuid.UUID) (int32, error) {
	communityLangs, err := r.Communities.Languages(ctx, communityID)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeInternal, fmt.Errorf("community languages: %w", err))
	}

	var lang int32
	if requested != nil {
		lang = *requested
	} else {
		userLangs, err := r.Users.Languages(ctx, localUserID)
		if err != nil {
			return 0, apperr.Wrap(apperr.CodeInternal, fmt.Errorf("user languages: %w", err))
		}
		lang = DefaultPostLanguage(userLangs, communityLangs)
	}

	if !IsAllowedLanguage(lang, communityLangs) {
		return 0, apperr.New(apperr.CodeLanguageNotAllowed, fmt.Sprintf("language %d", lang))
	}
	return lang, nil
}

// DefaultPostLanguage picks the only language shared by user and community, else undetermined.
func DefaultPostLanguage(userLangs, communityLangs []int32) int32 {
	allowed := make(map[int32]bool, len(communityLangs))
	for _, l := range communityLangs {
		allowed[l] = true
	}

	var common []int32
	for _, l := range userLangs {
		if l == site.UndeterminedLanguage {
			continue
		}
		if len(communityLangs) == 0 || allowed[l] {
			common = append(common, l)
		}
	}
	if len(common) == 1 {
		return common[0]
	}
	return site.UndeterminedLanguage
}

// IsAllowedLanguage undetermined is always allowed, and an empty community set allows everything.
func IsAllowedLanguage(lang int32, communityLangs []int32) bool {
	if lang == site.UndeterminedLanguage || len(communityLangs) == 0 {
		return true
	}
	for _, l := range communityLangs {
		if l == lang {
			return true
		}
	}
	return false
}
