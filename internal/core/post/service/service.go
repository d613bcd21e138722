package postapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"agora/internal/apperr"
	"agora/internal/core/apub"
	communityapp "agora/internal/core/community/service"
	metadataapp "agora/internal/core/metadata/service"
	postEntity "agora/internal/core/post"
	"agora/internal/core/post/validation"
	"agora/internal/core/realtime"
	"agora/internal/metrics"
	postPort "agora/internal/ports/post"
	sitePort "agora/internal/ports/site"
	"agora/internal/ports/store"
	userPort "agora/internal/ports/user"
	"agora/internal/workers"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Dispatcher receives the fire-and-forget work that follows a successful create.
type Dispatcher interface {
	Enqueue(job workers.Job) bool
}

type Settings struct {
	ProtocolAndHostname string
	MaxTitleLength      int
}

type PostService struct {
	Auth           userPort.AuthGate
	SiteRepository sitePort.SiteRepository
	PostRepository postPort.PostRepository
	Guard          *communityapp.Guard
	Languages      *communityapp.LanguageResolver
	Enricher       *metadataapp.Enricher
	Validator      *validation.Validator
	Dispatcher     Dispatcher // تزریق شده
	Settings       Settings
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
}

func NewPostService(
	auth userPort.AuthGate,
	siteRepo sitePort.SiteRepository,
	postRepo postPort.PostRepository,
	guard *communityapp.Guard,
	languages *communityapp.LanguageResolver,
	enricher *metadataapp.Enricher,
	dispatcher Dispatcher,
	settings Settings,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &PostService{
		Auth:           auth,
		SiteRepository: siteRepo,
		PostRepository: postRepo,
		Guard:          guard,
		Languages:      languages,
		Enricher:       enricher,
		Validator:      validation.New(settings.MaxTitleLength),
		Dispatcher:     dispatcher,
		Settings:       settings,
		Metrics:        m,
		Logger:         logger,
	}
}

// CreatePost ایجاد پست جدید: اعتبارسنجی، غنی‌سازی، ذخیره، تخصیص شناسه‌ی فدرال و اطلاع‌رسانی
func (s *PostService) CreatePost(ctx context.Context, req postPort.CreatePost) (*postPort.PostResponse, error) {
	start := time.Now()
	resp, err := s.createPost(ctx, req)
	s.Metrics.PostCreateLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		s.Metrics.PostCreateFailures.WithLabelValues(string(apperr.CodeOf(err))).Inc()
		return nil, err
	}
	s.Metrics.PostsCreated.Inc()
	return resp, nil
}

func (s *PostService) createPost(ctx context.Context, req postPort.CreatePost) (*postPort.PostResponse, error) {
	view, err := s.Auth.LocalUserViewFromJWT(ctx, req.Auth)
	if err != nil {
		return nil, err
	}
	personID := view.Person.ID

	localSite, err := s.SiteRepository.ReadLocalSite(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, fmt.Errorf("reading local site: %w", err))
	}
	slurs, err := validation.BuildSlurRegex(localSite.SlurFilterRegex)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err)
	}

	if err := s.Validator.Check(req.Name, req.Body, req.Honeypot, slurs); err != nil {
		return nil, err
	}

	var url *string
	if req.URL != nil && strings.TrimSpace(*req.URL) != "" {
		cleaned, err := validation.CleanURL(*req.URL)
		if err != nil {
			return nil, err
		}
		url = &cleaned
	}

	c, err := s.Guard.ReadCommunity(ctx, req.CommunityID)
	if err != nil {
		return nil, err
	}
	if err := s.Guard.CheckCanParticipate(ctx, personID, c); err != nil {
		return nil, err
	}
	if err := s.Guard.CheckCanPost(ctx, view, c); err != nil {
		return nil, err
	}

	md := s.Enricher.Enrich(ctx, url)

	languageID, err := s.Languages.Resolve(ctx, req.LanguageID, view.LocalUser.ID, c.ID)
	if err != nil {
		return nil, err
	}

	form := &postEntity.Post{
		Name:             strings.TrimSpace(req.Name),
		URL:              url,
		Body:             req.Body,
		CommunityID:      c.ID,
		CreatorID:        personID,
		NSFW:             req.NSFW,
		EmbedTitle:       md.Title,
		EmbedDescription: md.Description,
		EmbedVideoURL:    md.EmbedVideoURL,
		ThumbnailURL:     md.ThumbnailURL,
		LanguageID:       languageID,
		Local:            true,
	}

	inserted, err := s.PostRepository.CreateWithApID(ctx, form, s.localApID)
	if err != nil {
		if s.titleOverflow(form.Name, err) {
			return nil, apperr.Wrap(apperr.CodeTitleTooLong, err)
		}
		s.Logger.Error("Could not store post",
			zap.Stringer("community_id", c.ID),
			zap.Error(err))
		return nil, apperr.Wrap(apperr.CodeCreateFailed, err)
	}

	// نقطه‌ی ثبت نهایی؛ از اینجا به بعد هیچ خطایی درخواست را شکست نمی‌دهد
	engaged := s.bootstrapEngagement(ctx, personID, inserted.ID)
	s.dispatch(inserted, personID)

	s.Logger.Info("📝 Created post",
		zap.Stringer("post_id", inserted.ID),
		zap.String("ap_id", inserted.ApID),
		zap.Stringer("community_id", c.ID),
		zap.Stringer("creator_id", personID))

	pv, err := s.PostRepository.ReadView(ctx, inserted.ID, &personID)
	if err != nil {
		s.Logger.Warn("Could not read post view, assembling from created row",
			zap.Stringer("post_id", inserted.ID), zap.Error(err))
		pv = &postPort.PostView{
			Post:      *inserted,
			Creator:   view.Person,
			Community: *c,
			Read:      engaged.read,
		}
		if engaged.voted {
			score := int16(1)
			pv.MyVote = &score
			pv.Counts = postPort.PostCounts{Score: 1, Upvotes: 1}
		}
	}
	return &postPort.PostResponse{PostView: postPort.ToPostViewDTO(pv)}, nil
}

// localApID شناسه‌ی فدرال پست؛ درون تراکنش درج فراخوانی می‌شود
func (s *PostService) localApID(postID uuid.UUID) (string, error) {
	apID, err := apub.GenerateLocalEndpoint(apub.EndpointPost, postID.String(), s.Settings.ProtocolAndHostname)
	if err != nil {
		return "", fmt.Errorf("building ap_id: %w", err)
	}
	return apID, nil
}

// titleOverflow reports whether a storage length error is about the post name.
// Drivers that do not name the column fall back to measuring the name itself.
func (s *PostService) titleOverflow(name string, err error) bool {
	if !errors.Is(err, store.ErrValueTooLong) {
		return false
	}
	if column := store.TooLongColumn(err); column != "" {
		return column == "name"
	}
	return utf8.RuneCountInString(name) > postEntity.MaxNameLength
}

type engagement struct {
	voted bool
	read  bool
}

// bootstrapEngagement سازنده به پست خودش رأی مثبت می‌دهد و آن را خوانده‌شده علامت می‌زند
func (s *PostService) bootstrapEngagement(ctx context.Context, personID, postID uuid.UUID) engagement {
	var e engagement
	like := &postEntity.Like{PostID: postID, PersonID: personID, Score: 1}
	if err := s.PostRepository.Like(ctx, like); err != nil {
		s.Metrics.EngagementFailures.Inc()
		s.Logger.Warn("Could not record creator upvote", zap.Stringer("post_id", postID), zap.Error(err))
	} else {
		e.voted = true
	}
	if err := s.PostRepository.MarkRead(ctx, personID, postID); err != nil {
		s.Metrics.EngagementFailures.Inc()
		s.Logger.Warn("Could not mark post as read", zap.Stringer("post_id", postID), zap.Error(err))
	} else {
		e.read = true
	}
	return e
}

func (s *PostService) dispatch(p *postEntity.Post, personID uuid.UUID) {
	if s.Dispatcher == nil {
		return
	}
	postID, communityID := p.ID, p.CommunityID
	s.Dispatcher.Enqueue(workers.Job{
		Source: p.ApID,
		Target: p.URL,
		Event: realtime.Event{
			Op:          realtime.OpCreatePost,
			PostID:      &postID,
			CommunityID: &communityID,
			PersonID:    &personID,
		},
	})
}
