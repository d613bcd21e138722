package store

import (
	"errors"
	"fmt"
)

// خطاهای مشترک لایه‌ی ذخیره‌سازی؛ آداپترها خطاهای درایور را به این‌ها ترجمه می‌کنند
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate key")
	ErrValueTooLong = errors.New("value too long for column")
)

// ValueTooLongError names the overflowing column when the driver reports it.
// It matches ErrValueTooLong under errors.Is.
type ValueTooLongError struct {
	Column string
}

func (e *ValueTooLongError) Error() string {
	if e.Column == "" {
		return ErrValueTooLong.Error()
	}
	return fmt.Sprintf("%s %q", ErrValueTooLong, e.Column)
}

func (e *ValueTooLongError) Is(target error) bool { return target == ErrValueTooLong }

// TooLongColumn returns the overflowing column carried by err, or "" when unknown.
func TooLongColumn(err error) string {
	var e *ValueTooLongError
	if errors.As(err, &e) {
		return e.Column
	}
	return ""
}
