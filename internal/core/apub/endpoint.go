package apub

import (
	"fmt"
	"net/url"
	"strings"
)

// EndpointType نوع شیء‌ای که شناسه‌ی فدرال برایش ساخته می‌شود
type EndpointType int

const (
	EndpointCommunity EndpointType = iota
	EndpointPerson
	EndpointPost
	EndpointComment
)

func (t EndpointType) segment() string {
	switch t {
	case EndpointCommunity:
		return "c"
	case EndpointPerson:
		return "u"
	case EndpointPost:
		return "post"
	default:
		return "comment"
	}
}

// GenerateLocalEndpoint builds the globally addressable id of a local object,
// e.g. https://example.org/post/<id>.
func GenerateLocalEndpoint(t EndpointType, name, protocolAndHostname string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty %s identifier", t.segment())
	}
	base := strings.TrimRight(protocolAndHostname, "/")
	raw := fmt.Sprintf("%s/%s/%s", base, t.segment(), url.PathEscape(name))
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", fmt.Errorf("invalid endpoint %q: missing scheme or host", raw)
	}
	return u.String(), nil
}
