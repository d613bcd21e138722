package database

import (
	"errors"
	"fmt"
	"regexp"

	"agora/internal/ports/store"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	mysqlDuplicateEntry = 1062
	mysqlDataTooLong    = 1406

	pgUniqueViolation   = "23505"
	pgStringDataTooLong = "22001"
)

// MySQL: "Data too long for column 'name' at row 1"
var mysqlColumnPattern = regexp.MustCompile(`for column '([^']+)'`)

func mysqlColumn(message string) string {
	if m := mysqlColumnPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	return ""
}

// translateError خطاهای درایور را به خطاهای مشترک لایه‌ی ذخیره‌سازی تبدیل می‌کند
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case mysqlDataTooLong:
			return fmt.Errorf("%w: %w", &store.ValueTooLongError{Column: mysqlColumn(myErr.Message)}, err)
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", store.ErrDuplicate, err)
		case pgStringDataTooLong:
			return fmt.Errorf("%w: %w", &store.ValueTooLongError{Column: pgErr.ColumnName}, err)
		}
	}
	return err
}
