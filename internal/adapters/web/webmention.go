package web

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	notifyPort "agora/internal/ports/notify"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WebmentionSender به صفحه‌ی مقصد اطلاع می‌دهد که پست جدید به آن لینک داده است
type WebmentionSender struct {
	Client    *http.Client
	UserAgent string
}

func NewWebmentionSender(client *http.Client, userAgent string) *WebmentionSender {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &WebmentionSender{Client: client, UserAgent: userAgent}
}

// Notify discovers the target's endpoint and posts source/target to it.
// It returns notify.ErrNoEndpoint when the target advertises none.
func (s *WebmentionSender) Notify(ctx context.Context, source, target string) error {
	endpoint, err := s.discover(ctx, target)
	if err != nil {
		return err
	}

	form := url.Values{"source": {source}, "target": {target}}
	req, err := newRequest(ctx, http.MethodPost, endpoint, s.UserAgent, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webmention to %s: %w", endpoint, err)
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webmention endpoint %s answered %d", endpoint, resp.StatusCode)
	}
	return nil
}

func (s *WebmentionSender) discover(ctx context.Context, target string) (string, error) {
	req, err := newRequest(ctx, http.MethodGet, target, s.UserAgent, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", target, err)
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("fetching %s: status %d", target, resp.StatusCode)
	}

	base := resp.Request.URL
	if ref, ok := endpointFromLinkHeader(resp.Header.Values("Link")); ok {
		return resolveEndpoint(base, ref)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "text/html" && mediaType != "application/xhtml+xml" {
		return "", notifyPort.ErrNoEndpoint
	}
	ref, ok, err := endpointFromHTML(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", notifyPort.ErrNoEndpoint
	}
	return resolveEndpoint(base, ref)
}

// endpointFromLinkHeader finds the first `<uri>; rel="webmention"` entry.
func endpointFromLinkHeader(values []string) (string, bool) {
	for _, value := range values {
		for _, link := range strings.Split(value, ",") {
			parts := strings.Split(link, ";")
			ref := strings.TrimSpace(parts[0])
			if !strings.HasPrefix(ref, "<") || !strings.HasSuffix(ref, ">") {
				continue
			}
			for _, param := range parts[1:] {
				name, val, found := strings.Cut(strings.TrimSpace(param), "=")
				if !found || !strings.EqualFold(strings.TrimSpace(name), "rel") {
					continue
				}
				if hasRel(strings.Trim(strings.TrimSpace(val), `"`), "webmention") {
					return ref[1 : len(ref)-1], true
				}
			}
		}
	}
	return "", false
}

// endpointFromHTML returns the href of the first <link> or <a> with rel=webmention in document order.
func endpointFromHTML(r io.Reader) (string, bool, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", false, fmt.Errorf("parsing html: %w", err)
	}

	var (
		found bool
		href  string
	)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Link || n.DataAtom == atom.A) {
			if hasRel(attr(n, "rel"), "webmention") && hasAttr(n, "href") {
				found, href = true, attr(n, "href")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return href, found, nil
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return true
		}
	}
	return false
}

func hasRel(rel, want string) bool {
	for _, r := range strings.Fields(rel) {
		if strings.EqualFold(r, want) {
			return true
		}
	}
	return false
}

// resolveEndpoint an empty href means the target page itself.
func resolveEndpoint(base *url.URL, ref string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("invalid webmention endpoint %q: %w", ref, err)
	}
	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("unsupported webmention endpoint %q", resolved)
	}
	return resolved.String(), nil
}
