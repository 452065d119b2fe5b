package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Fields значения колонок по имени. Ключ это имя колонки (school_id) или поля Go (SchoolID).
type Fields map[string]any

// Keys возвращает ключи в отсортированном порядке.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// schemaOf разбирает схему GORM для типа записи и проверяет, что тип из каталога сессии.
func (s *Session) schemaOf(model any) (*schema.Schema, error) {
	if !s.catalog.Owns(model) {
		return nil, fmt.Errorf("%w: %T in %q", ErrForeignModel, model, s.catalog.Name())
	}
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("%w: parse %T: %s", ErrStorage, model, err.Error())
	}
	return stmt.Schema, nil
}

// lookupField находит колонку. Поля ассоциаций колонками не считаются.
func lookupField(sch *schema.Schema, name string) (*schema.Field, error) {
	f := sch.LookUpField(name)
	if f == nil || f.DBName == "" {
		return nil, &FieldError{Field: name, Err: fmt.Errorf("%w for %s", ErrUnknownField, sch.Table)}
	}
	return f, nil
}

// conditions переводит Fields в условия равенства по именам колонок.
func conditions(sch *schema.Schema, fields Fields) (map[string]any, error) {
	cond := make(map[string]any, len(fields))
	for _, name := range fields.Keys() {
		f, err := lookupField(sch, name)
		if err != nil {
			return nil, err
		}
		cond[f.DBName] = fields[name]
	}
	return cond, nil
}

// assign записывает значение поля в запись. Возвращает имя колонки и итоговое значение.
func assign(ctx context.Context, sch *schema.Schema, rv reflect.Value, name string, value any, allowPK bool) (string, any, error) {
	f, err := lookupField(sch, name)
	if err != nil {
		return "", nil, err
	}
	if f.PrimaryKey && !allowPK {
		return "", nil, &FieldError{Field: name, Err: ErrReadOnlyField}
	}
	if err := f.Set(ctx, rv, value); err != nil {
		return "", nil, &FieldError{Field: name, Err: fmt.Errorf("%w: %s", ErrInvalidValue, err.Error())}
	}
	v, _ := f.ValueOf(ctx, rv)
	return f.DBName, v, nil
}

func primaryKey(ctx context.Context, sch *schema.Schema, rv reflect.Value) any {
	if sch.PrioritizedPrimaryField == nil {
		return nil
	}
	v, _ := sch.PrioritizedPrimaryField.ValueOf(ctx, rv)
	return v
}
