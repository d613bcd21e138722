package memory

import (
	"sync"
	"time"

	"agora/internal/core/community"
	"agora/internal/core/post"
	"agora/internal/core/site"
	"agora/internal/core/user"

	"github.com/gofrs/uuid"
)

type key struct {
	a, b uuid.UUID
}

// Store نگه‌داری همه‌ی داده‌ها در حافظه با همان کلیدهای یکتای دیتابیس
type Store struct {
	mu sync.Mutex

	// محدودیت ستون‌های جدول posts؛ صفر یعنی بدون محدودیت
	MaxNameLength int
	MaxURLLength  int
	MaxApIDLength int

	localSite          *site.LocalSite
	persons            map[uuid.UUID]*user.Person
	localUsers         map[uuid.UUID]*user.LocalUser
	userLanguages      map[uuid.UUID][]int32
	communities        map[uuid.UUID]*community.Community
	communityLanguages map[uuid.UUID][]int32
	moderators         map[key]bool
	bans               map[key]*community.PersonBan
	followers          map[key]*community.Follower
	posts              map[uuid.UUID]*post.Post
	likes              map[key]*post.Like
	reads              map[key]bool

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		MaxNameLength:      post.MaxNameLength,
		MaxURLLength:       post.MaxURLLength,
		MaxApIDLength:      post.MaxApIDLength,
		persons:            make(map[uuid.UUID]*user.Person),
		localUsers:         make(map[uuid.UUID]*user.LocalUser),
		userLanguages:      make(map[uuid.UUID][]int32),
		communities:        make(map[uuid.UUID]*community.Community),
		communityLanguages: make(map[uuid.UUID][]int32),
		moderators:         make(map[key]bool),
		bans:               make(map[key]*community.PersonBan),
		followers:          make(map[key]*community.Follower),
		posts:              make(map[uuid.UUID]*post.Post),
		likes:              make(map[key]*post.Like),
		reads:              make(map[key]bool),
		now:                time.Now,
	}
}

func (s *Store) Users() *UserRepository            { return &UserRepository{s} }
func (s *Store) Site() *SiteRepository             { return &SiteRepository{s} }
func (s *Store) Communities() *CommunityRepository { return &CommunityRepository{s} }
func (s *Store) Posts() *PostRepository            { return &PostRepository{s} }

// SetLocalSite replaces the local site row.
func (s *Store) SetLocalSite(ls site.LocalSite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localSite = &ls
}

// AddCommunity inserts c, assigning an ID when it has none.
func (s *Store) AddCommunity(c community.Community) community.Community {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.communities[c.ID] = &c
	return c
}

func (s *Store) SetCommunityLanguages(communityID uuid.UUID, languages ...int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.communityLanguages[communityID] = append([]int32(nil), languages...)
}

func (s *Store) SetUserLanguages(localUserID uuid.UUID, languages ...int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userLanguages[localUserID] = append([]int32(nil), languages...)
}

func (s *Store) AddModerator(communityID, personID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moderators[key{communityID, personID}] = true
}

func (s *Store) AddBan(ban community.PersonBan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[key{ban.CommunityID, ban.PersonID}] = &ban
}

// PostCount تعداد پست‌های ذخیره‌شده
func (s *Store) PostCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *Store) LikeCount(postID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.likes {
		if k.a == postID {
			n++
		}
	}
	return n
}

func (s *Store) FindLike(postID, personID uuid.UUID) (post.Like, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.likes[key{postID, personID}]
	if !ok {
		return post.Like{}, false
	}
	return *l, true
}

func (s *Store) ReadCount(postID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.reads {
		if k.a == postID {
			n++
		}
	}
	return n
}

func (s *Store) FollowerCount(communityID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.followers {
		if k.a == communityID {
			n++
		}
	}
	return n
}
