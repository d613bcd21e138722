package realtime

import "github.com/gofrs/uuid"

// Op the closed set of user operations that can be announced to realtime subscribers.
type Op string

const (
	OpCreatePost      Op = "CreatePost"
	OpFollowCommunity Op = "FollowCommunity"
)

func (o Op) Valid() bool {
	switch o {
	case OpCreatePost, OpFollowCommunity:
		return true
	}
	return false
}

// Event رویدادی که برای مشترکین بلادرنگ ارسال می‌شود
type Event struct {
	Op          Op          `json:"op"`
	PostID      *uuid.UUID  `json:"post_id,omitempty"`
	CommunityID *uuid.UUID  `json:"community_id,omitempty"`
	PersonID    *uuid.UUID  `json:"person_id,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}
