package communityapp

import (
	"context"
	"errors"

	"agora/internal/apperr"
	communityEntity "agora/internal/core/community"
	"agora/internal/metrics"
	communityPort "agora/internal/ports/community"
	"agora/internal/ports/store"
	userPort "agora/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FollowService جابه‌جایی وضعیت عضویت (شخص، انجمن) بین Absent، Pending و Accepted
type FollowService struct {
	Auth        userPort.AuthGate
	Communities communityPort.CommunityRepository
	Guard       *Guard
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

func NewFollowService(
	auth userPort.AuthGate,
	communities communityPort.CommunityRepository,
	guard *Guard,
	m *metrics.Metrics,
	logger *zap.Logger,
) *FollowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &FollowService{
		Auth:        auth,
		Communities: communities,
		Guard:       guard,
		Metrics:     m,
		Logger:      logger,
	}
}

// FollowCommunity دنبال کردن یا لغو دنبال کردن یک انجمن و بازگرداندن نمای تازه‌ی آن
func (s *FollowService) FollowCommunity(ctx context.Context, req communityPort.FollowCommunity) (*communityPort.CommunityResponse, error) {
	resp, err := s.followCommunity(ctx, req)
	if err != nil {
		s.Metrics.FollowFailures.WithLabelValues(string(apperr.CodeOf(err))).Inc()
		return nil, err
	}
	return resp, nil
}

func (s *FollowService) followCommunity(ctx context.Context, req communityPort.FollowCommunity) (*communityPort.CommunityResponse, error) {
	view, err := s.Auth.LocalUserViewFromJWT(ctx, req.Auth)
	if err != nil {
		return nil, err
	}
	personID := view.Person.ID

	c, err := s.Guard.ReadCommunity(ctx, req.CommunityID)
	if err != nil {
		return nil, err
	}

	if req.Follow {
		err = s.follow(ctx, personID, c)
	} else {
		err = s.unfollow(ctx, personID, c.ID)
	}
	if err != nil {
		return nil, err
	}

	cv, err := s.Communities.ReadView(ctx, c.ID, &personID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}
	return &communityPort.CommunityResponse{CommunityView: communityPort.ToCommunityViewDTO(cv)}, nil
}

// follow: local communities accept immediately after moderation checks; remote ones
// are recorded as pending until the remote instance accepts.
func (s *FollowService) follow(ctx context.Context, personID uuid.UUID, c *communityEntity.Community) error {
	if c.Local {
		if err := s.Guard.CheckCanParticipate(ctx, personID, c); err != nil {
			return err
		}
	}

	f := &communityEntity.Follower{
		ID:          uuid.Must(uuid.NewV4()),
		CommunityID: c.ID,
		PersonID:    personID,
		Pending:     !c.Local,
	}
	if _, err := s.Communities.Follow(ctx, f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return apperr.New(apperr.CodeAlreadyFollowing, "")
		}
		return apperr.Wrap(apperr.CodeInternal, err)
	}

	state := communityPort.SubscribedFrom(f)
	s.Metrics.FollowTransitions.WithLabelValues(string(state)).Inc()
	s.Logger.Info("Followed community",
		zap.Stringer("person_id", personID),
		zap.Stringer("community_id", c.ID),
		zap.String("state", string(state)))
	return nil
}

// unfollow همیشه مجاز است؛ بررسی محرومیت انجام نمی‌شود
func (s *FollowService) unfollow(ctx context.Context, personID, communityID uuid.UUID) error {
	if err := s.Communities.Unfollow(ctx, personID, communityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.CodeNotFollowing, "")
		}
		return apperr.Wrap(apperr.CodeInternal, err)
	}

	s.Metrics.FollowTransitions.WithLabelValues(string(communityPort.NotSubscribed)).Inc()
	s.Logger.Info("Unfollowed community", zap.Stringer("person_id", personID), zap.Stringer("community_id", communityID))
	return nil
}
