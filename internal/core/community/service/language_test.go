package communityapp

import (
	"context"
	"testing"

	"agora/internal/adapters/memory"
	"agora/internal/apperr"
	"agora/internal/core/community"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }

func TestDefaultPostLanguage(t *testing.T) {
	tests := []struct {
		name      string
		user      []int32
		community []int32
		want      int32
	}{
		{"single common language", []int32{0, 37, 40}, []int32{37}, 37},
		{"several common languages", []int32{37, 40}, []int32{37, 40}, 0},
		{"nothing in common", []int32{37}, []int32{40}, 0},
		{"community allows all", []int32{37}, nil, 37},
		{"user has none", nil, []int32{37}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultPostLanguage(tt.user, tt.community))
		})
	}
}

func TestIsAllowedLanguage(t *testing.T) {
	assert.True(t, IsAllowedLanguage(0, []int32{37}))
	assert.True(t, IsAllowedLanguage(40, nil))
	assert.True(t, IsAllowedLanguage(37, []int32{37, 40}))
	assert.False(t, IsAllowedLanguage(41, []int32{37, 40}))
}

func TestResolve(t *testing.T) {
	st := memory.NewStore()
	c := st.AddCommunity(community.Community{Name: "go", ActorID: "https://example.org/c/go", Local: true})
	st.SetCommunityLanguages(c.ID, 37, 40)
	localUserID := uuid.Must(uuid.NewV4())
	st.SetUserLanguages(localUserID, 40, 52)

	r := NewLanguageResolver(st.Users(), st.Communities())
	ctx := context.Background()

	lang, err := r.Resolve(ctx, nil, localUserID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(40), lang)

	lang, err = r.Resolve(ctx, int32Ptr(37), localUserID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(37), lang)

	_, err = r.Resolve(ctx, int32Ptr(52), localUserID, c.ID)
	assert.Equal(t, apperr.CodeLanguageNotAllowed, apperr.CodeOf(err))
}
