package apperr

import (
	"errors"
	"net/http"
)

// Kind گروه‌بندی خطاها برای تصمیم‌گیری درباره‌ی وضعیت پاسخ
type Kind int

const (
	KindInternal Kind = iota
	KindAuthorization
	KindValidation
	KindConflict
	KindNotFound
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	default:
		return "internal"
	}
}

// Code is the stable, user-facing error identifier.
type Code string

const (
	CodeUnauthorized         Code = "unauthorized"
	CodeBannedFromCommunity  Code = "banned_from_community"
	CodeCommunityRemoved     Code = "community_deleted_or_removed"
	CodePostingRestricted    Code = "only_mods_can_post_in_community"
	CodeContainsSlurs        Code = "slurs"
	CodeInvalidPostTitle     Code = "invalid_post_title"
	CodeValidationFailed     Code = "validation_failed"
	CodeInvalidURL           Code = "invalid_url"
	CodeLanguageNotAllowed   Code = "language_not_allowed"
	CodeTitleTooLong         Code = "post_title_too_long"
	CodeCreateFailed         Code = "couldnt_create_post"
	CodeAlreadyFollowing     Code = "community_follower_already_exists"
	CodeNotFollowing         Code = "not_following_community"
	CodeCommunityNotFound    Code = "couldnt_find_community"
	CodeUsernameTaken        Code = "username_already_exists"
	CodeIncorrectCredentials Code = "incorrect_login"
	CodeInternal             Code = "internal_error"
)

var kinds = map[Code]Kind{
	CodeUnauthorized:         KindAuthorization,
	CodeBannedFromCommunity:  KindAuthorization,
	CodeCommunityRemoved:     KindAuthorization,
	CodePostingRestricted:    KindAuthorization,
	CodeIncorrectCredentials: KindAuthorization,
	CodeContainsSlurs:        KindValidation,
	CodeInvalidPostTitle:     KindValidation,
	CodeValidationFailed:     KindValidation,
	CodeInvalidURL:           KindValidation,
	CodeLanguageNotAllowed:   KindValidation,
	CodeTitleTooLong:         KindValidation,
	CodeAlreadyFollowing:     KindConflict,
	CodeNotFollowing:         KindConflict,
	CodeUsernameTaken:        KindConflict,
	CodeCommunityNotFound:    KindNotFound,
	CodeCreateFailed:         KindPersistence,
	CodeInternal:             KindInternal,
}

// Kind returns the category the code belongs to.
func (c Code) Kind() Kind {
	if k, ok := kinds[c]; ok {
		return k
	}
	return KindInternal
}

// Error خطای قابل نمایش به کاربر همراه با علت اصلی
type Error struct {
	Code   Code
	Detail string
	Err    error
}

func New(code Code, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by code, so errors.Is(err, apperr.New(code, "")) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) Kind() Kind { return e.Code.Kind() }

// CodeOf extracts the code from err, falling back to CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error onto the response status used by the HTTP adapter.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind() {
	case KindAuthorization:
		if e.Code == CodeUnauthorized || e.Code == CodeIncorrectCredentials {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
