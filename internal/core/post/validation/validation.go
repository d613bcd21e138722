package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"agora/internal/apperr"
	"agora/internal/core/post"
)

// Validator بررسی محتوای پست پیش از هر کار پرهزینه
type Validator struct {
	MaxTitleLength int
}

func New(maxTitleLength int) *Validator {
	return &Validator{MaxTitleLength: maxTitleLength}
}

// BuildSlurRegex compiles the site denylist case-insensitively. An empty pattern yields nil.
func BuildSlurRegex(pattern *string) (*regexp.Regexp, error) {
	if pattern == nil || strings.TrimSpace(*pattern) == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + *pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling slur filter: %w", err)
	}
	return re, nil
}

// Check runs slur(name), slur(body), honeypot, title shape, in that order.
func (v *Validator) Check(name string, body, honeypot *string, slurs *regexp.Regexp) error {
	if err := CheckSlurs(name, slurs); err != nil {
		return err
	}
	if body != nil {
		if err := CheckSlurs(*body, slurs); err != nil {
			return err
		}
	}
	if honeypot != nil && *honeypot != "" {
		return apperr.New(apperr.CodeValidationFailed, "")
	}
	return v.CheckTitle(name)
}

func CheckSlurs(text string, slurs *regexp.Regexp) error {
	if slurs == nil {
		return nil
	}
	matches := slurs.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	var words []string
	for _, m := range matches {
		w := strings.ToLower(m)
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return apperr.New(apperr.CodeContainsSlurs, strings.Join(words, ", "))
}

// CheckTitle تیتر باید پس از trim خالی نباشد، قابل چاپ باشد و از حداکثر طول بیشتر نشود
func (v *Validator) CheckTitle(name string) error {
	title := strings.TrimSpace(name)
	if title == "" || strings.ContainsAny(title, "\r\n") || !hasWord(title) {
		return apperr.New(apperr.CodeInvalidPostTitle, "")
	}
	for _, r := range title {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return apperr.New(apperr.CodeInvalidPostTitle, "")
		}
	}
	if v.MaxTitleLength > 0 && utf8.RuneCountInString(title) > v.MaxTitleLength {
		return apperr.New(apperr.CodeTitleTooLong, fmt.Sprintf("max %d characters", v.MaxTitleLength))
	}
	return nil
}

// hasWord reports whether s contains at least three consecutive non-space runes.
func hasWord(s string) bool {
	run := 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			run = 0
			continue
		}
		run++
		if run >= 3 {
			return true
		}
	}
	return false
}

var trackingParams = map[string]bool{
	"fbclid": true,
	"gclid":  true,
}

// CleanURL checks that raw is an absolute http(s) URL and strips tracking parameters.
func CleanURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", apperr.New(apperr.CodeInvalidURL, raw)
	}

	q := u.Query()
	changed := false
	for key := range q {
		if strings.HasPrefix(strings.ToLower(key), "utm_") || trackingParams[strings.ToLower(key)] {
			q.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	cleaned := u.String()
	if utf8.RuneCountInString(cleaned) > post.MaxURLLength {
		return "", apperr.New(apperr.CodeInvalidURL, "url longer than the url column")
	}
	return cleaned, nil
}
