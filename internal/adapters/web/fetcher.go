package web

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"agora/internal/core/metadata"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MetadataFetcher صفحه‌ی لینک را دریافت و تگ‌های Open Graph آن را استخراج می‌کند
type MetadataFetcher struct {
	Client    *http.Client
	UserAgent string
}

func NewMetadataFetcher(client *http.Client, userAgent string) *MetadataFetcher {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &MetadataFetcher{Client: client, UserAgent: userAgent}
}

func (f *MetadataFetcher) Fetch(ctx context.Context, rawURL string) (*metadata.SiteMetadata, error) {
	req, err := newRequest(ctx, http.MethodGet, rawURL, f.UserAgent, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,image/*;q=0.8,*/*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetching %s: status %d", rawURL, resp.StatusCode)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		thumb := rawURL
		return &metadata.SiteMetadata{ThumbnailURL: &thumb}, nil
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return parseMetadata(io.LimitReader(resp.Body, maxBodySize), resp.Request.URL)
	default:
		return &metadata.SiteMetadata{}, nil
	}
}

// parseMetadata prefers Open Graph properties and falls back to <title> and the description meta tag.
func parseMetadata(r io.Reader, base *url.URL) (*metadata.SiteMetadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	meta := map[string]string{}
	var title string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Meta:
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				if content := strings.TrimSpace(attr(n, "content")); key != "" && content != "" {
					if _, seen := meta[key]; !seen {
						meta[key] = content
					}
				}
			case atom.Title:
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	md := &metadata.SiteMetadata{
		Title:         firstNonEmpty(meta["og:title"], title),
		Description:   firstNonEmpty(meta["og:description"], meta["description"]),
		EmbedVideoURL: resolve(base, firstNonEmpty(meta["og:video:url"], meta["og:video"])),
		ThumbnailURL:  resolve(base, firstNonEmpty(meta["og:image"])),
	}
	return md, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func firstNonEmpty(values ...string) *string {
	for _, v := range values {
		if v != "" {
			return &v
		}
	}
	return nil
}

// resolve makes ref absolute against base; non-http results are dropped.
func resolve(base *url.URL, ref *string) *string {
	if ref == nil {
		return nil
	}
	u, err := url.Parse(*ref)
	if err != nil {
		return nil
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	s := u.String()
	return &s
}
