package store

import (
	"errors"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/go-sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrConstraintViolation хранилище отвергло запись: уникальность, внешний ключ, check.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStorage прочие ошибки хранилища.
	ErrStorage = errors.New("storage error")
	// ErrUnknownField у типа записи нет такой колонки.
	ErrUnknownField = errors.New("unknown field")
	// ErrReadOnlyField колонку нельзя менять через Update (первичный ключ).
	ErrReadOnlyField = errors.New("read-only field")
	// ErrInvalidValue значение не приводится к типу колонки.
	ErrInvalidValue = errors.New("invalid value")
	// ErrForeignModel тип записи не входит в каталог сессии.
	ErrForeignModel = errors.New("model does not belong to session catalog")
	ErrSessionClosed = errors.New("session closed")
)

// FieldError ошибка одного поля. Update собирает их через errors.Join и продолжает с остальными полями.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return fmt.Sprintf("field %q: %v", e.Field, e.Err) }

func (e *FieldError) Unwrap() error { return e.Err }

// classify переводит ошибку драйвера в ErrConstraintViolation или ErrStorage.
// Исходная ошибка не оборачивается, наружу уходит только её текст.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isConstraint(err) {
		return fmt.Errorf("%w: %s", ErrConstraintViolation, err.Error())
	}
	return fmt.Errorf("%w: %s", ErrStorage, err.Error())
}

func isConstraint(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// класс 23: integrity_constraint_violation
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1048, 1062, 1451, 1452, 3819:
			return true
		}
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// SQLITE_CONSTRAINT и расширенные коды
		return liteErr.Code()&0xff == 19
	}
	return false
}
