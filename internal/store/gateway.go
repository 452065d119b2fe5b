// Package store общий шлюз хранения для всех типов записей каталога:
// Create, Exist, ExistOrCreate и Update работают с любым типом через Fields.
//
// Операции не пропускают наружу ошибки драйвера. Отказ хранилища
// логируется и возвращается как ErrConstraintViolation или ErrStorage
// вместе с nil вместо записи. Повторов нет: решение за вызывающим.
package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Create строит запись T из fields и вставляет её в транзакцию сессии.
// При commit=true сессия коммитится сразу, иначе запись ждёт внешнего Commit.
func Create[T any](ctx context.Context, s *Session, commit bool, fields Fields) (*T, error) {
	rec := new(T)
	log := s.entry("create", rec)
	log.WithField("fields", fields).Debug("creating record")

	sch, err := s.schemaOf(rec)
	if err != nil {
		log.WithError(err).Error("create rejected")
		return nil, err
	}
	rv := reflect.ValueOf(rec).Elem()
	for _, name := range fields.Keys() {
		if _, _, err := assign(ctx, sch, rv, name, fields[name], true); err != nil {
			log.WithError(err).Error("create rejected")
			return nil, err
		}
	}

	tx, err := s.writer(ctx)
	if err != nil {
		log.WithError(err).Error("create failed")
		return nil, err
	}
	err = s.guarded(tx, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(rec).Error
	})
	if err != nil {
		err = classify(err)
		log.WithError(err).Error("create failed")
		return nil, err
	}
	if commit {
		if err := s.Commit(); err != nil {
			return nil, err
		}
	}
	log.WithField("id", primaryKey(ctx, sch, rv)).Debug("record created")
	return rec, nil
}

// Exist ищет первую по первичному ключу запись T, у которой все fields совпадают.
// (nil, nil) означает, что такой записи нет.
func Exist[T any](ctx context.Context, s *Session, fields Fields) (*T, error) {
	rec := new(T)
	log := s.entry("exist", rec).WithField("fields", fields)

	sch, err := s.schemaOf(rec)
	if err != nil {
		log.WithError(err).Error("lookup rejected")
		return nil, err
	}
	cond, err := conditions(sch, fields)
	if err != nil {
		log.WithError(err).Error("lookup rejected")
		return nil, err
	}
	q, err := s.reader(ctx)
	if err != nil {
		return nil, err
	}
	if len(cond) > 0 {
		q = q.Where(cond)
	}
	err = q.First(rec).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Debug("not exist")
		return nil, nil
	case err != nil:
		err = classify(err)
		log.WithError(err).Error("lookup failed")
		return nil, err
	}
	log.WithField("id", primaryKey(ctx, sch, reflect.ValueOf(rec).Elem())).Debug("already exists")
	return rec, nil
}

// ExistOrCreate возвращает существующую запись или создаёт новую.
//
// fields должны содержать уникальный ключ типа, иначе повторный вызов может найти
// другую запись или создать дубль. Две сессии могут одновременно не найти запись
// и обе попытаться вставить: проигравшая получит ErrConstraintViolation
// и должна перечитать запись через Exist.
func ExistOrCreate[T any](ctx context.Context, s *Session, commit bool, fields Fields) (*T, error) {
	rec, err := Exist[T](ctx, s, fields)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	return Create[T](ctx, s, commit, fields)
}

// Update выставляет поля записи по одному. Неверное поле логируется и пропускается,
// остальные применяются; ошибки полей собираются в errors.Join из *FieldError.
// Применённые колонки пишутся одним UPDATE. Запись возвращается всегда.
func Update[T any](ctx context.Context, s *Session, record *T, commit bool, fields Fields) (*T, error) {
	log := s.entry("update", record)
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidValue)
	}
	sch, err := s.schemaOf(record)
	if err != nil {
		log.WithError(err).Error("update rejected")
		return record, err
	}
	rv := reflect.ValueOf(record).Elem()
	log = log.WithField("id", primaryKey(ctx, sch, rv))

	var errs []error
	cols := make(map[string]any, len(fields))
	for _, name := range fields.Keys() {
		col, v, err := assign(ctx, sch, rv, name, fields[name], false)
		if err != nil {
			log.WithFields(logrus.Fields{"field": name, "value": fields[name]}).WithError(err).Error("update field failed")
			errs = append(errs, err)
			continue
		}
		log.WithFields(logrus.Fields{"field": name, "value": fields[name]}).Debug("update field")
		cols[col] = v
	}

	if len(cols) > 0 {
		tx, err := s.writer(ctx)
		if err != nil {
			return record, errors.Join(append(errs, err)...)
		}
		err = s.guarded(tx, func(tx *gorm.DB) error {
			return tx.Model(record).Omit(clause.Associations).Updates(cols).Error
		})
		if err != nil {
			err = classify(err)
			log.WithError(err).Error("update failed")
			return record, errors.Join(append(errs, err)...)
		}
	}
	if commit {
		if err := s.Commit(); err != nil {
			errs = append(errs, err)
		}
	}
	return record, errors.Join(errs...)
}

func (s *Session) entry(op string, model any) *logrus.Entry {
	return s.log.WithFields(logrus.Fields{"op": op, "model": indirectType(model).Name()})
}
