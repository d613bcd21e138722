package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!doctype html>
<html><head>
<title>Fallback title</title>
<meta property="og:title" content="Open Graph title">
<meta name="description" content="Plain description">
<meta property="og:video" content="/media/clip.mp4">
<meta property="og:image" content="/static/cover.png">
</head><body><p>hello</p></body></html>`

func TestFetchExtractsOpenGraph(t *testing.T) {
	userAgent := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent <- r.UserAgent()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, articlePage)
	}))
	defer srv.Close()

	f := NewMetadataFetcher(srv.Client(), "agora-test")
	md, err := f.Fetch(context.Background(), srv.URL+"/article")
	require.NoError(t, err)

	assert.Equal(t, "agora-test", <-userAgent)
	assert.Equal(t, "Open Graph title", *md.Title)
	assert.Equal(t, "Plain description", *md.Description)
	assert.Equal(t, srv.URL+"/media/clip.mp4", *md.EmbedVideoURL)
	assert.Equal(t, srv.URL+"/static/cover.png", *md.ThumbnailURL)
}

func TestFetchFallsBackToTitleElement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title> Just a title </title></head></html>`)
	}))
	defer srv.Close()

	md, err := NewMetadataFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Just a title", *md.Title)
	assert.Nil(t, md.Description)
	assert.Nil(t, md.EmbedVideoURL)
	assert.Nil(t, md.ThumbnailURL)
}

func TestFetchImageIsItsOwnThumbnail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	target := srv.URL + "/cat.png"
	md, err := NewMetadataFetcher(srv.Client(), "").Fetch(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, target, *md.ThumbnailURL)
	assert.Nil(t, md.Title)
}

func TestFetchOtherContentIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	md, err := NewMetadataFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.True(t, md.Empty())
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := NewMetadataFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "410")
}

func TestFetchHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewMetadataFetcher(srv.Client(), "").Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestParseMetadataTruncatedBody(t *testing.T) {
	page := `<html><head><meta property="og:title" content="Big page"></head><body>` +
		strings.Repeat("<p>filler</p>", maxBodySize/8) + `</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	md, err := NewMetadataFetcher(srv.Client(), "").Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Big page", *md.Title)
}
