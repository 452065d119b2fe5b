package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ErrConstraintViolation},
		{"gorm foreign key wrapped", fmt.Errorf("insert school: %w", gorm.ErrForeignKeyViolated), ErrConstraintViolation},
		{"gorm check", gorm.ErrCheckConstraintViolated, ErrConstraintViolation},
		{"postgres unique", &pgconn.PgError{Code: "23505", Message: "duplicate key value"}, ErrConstraintViolation},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, ErrConstraintViolation},
		{"postgres syntax", &pgconn.PgError{Code: "42601"}, ErrStorage},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, ErrConstraintViolation},
		{"mysql fk", &mysql.MySQLError{Number: 1452}, ErrConstraintViolation},
		{"mysql gone away", &mysql.MySQLError{Number: 2006}, ErrStorage},
		{"plain", errors.New("connection refused"), ErrStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			require.Error(t, got)
			assert.ErrorIs(t, got, tc.want)
			assert.Contains(t, got.Error(), tc.err.Error())

			// ошибка драйвера наружу не уходит
			var pgErr *pgconn.PgError
			assert.False(t, errors.As(got, &pgErr))
			var myErr *mysql.MySQLError
			assert.False(t, errors.As(got, &myErr))
		})
	}
	assert.NoError(t, classify(nil))
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Field: "bad_field", Err: ErrUnknownField}
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, `field "bad_field": unknown field`, err.Error())

	joined := errors.Join(err, &FieldError{Field: "id", Err: ErrReadOnlyField})
	assert.ErrorIs(t, joined, ErrReadOnlyField)
	var fe *FieldError
	require.ErrorAs(t, joined, &fe)
	assert.Equal(t, "bad_field", fe.Field)
}

type (
	alpha struct{ ID uint }
	beta  struct{ ID uint }
)

func TestCatalog(t *testing.T) {
	c := NewCatalog("test", &alpha{})
	assert.Equal(t, "test", c.Name())
	assert.True(t, c.Owns(&alpha{}))
	assert.True(t, c.Owns(alpha{}))
	assert.False(t, c.Owns(&beta{}))

	models := c.Models()
	models[0] = &beta{}
	assert.IsType(t, &alpha{}, c.Models()[0])

	var nilCatalog *Catalog
	assert.False(t, nilCatalog.Owns(&alpha{}))
}

func TestFieldsKeysSorted(t *testing.T) {
	f := Fields{"name": 1, "address": 2, "id": 3}
	assert.Equal(t, []string{"address", "id", "name"}, f.Keys())
}
