package store

import (
	"context"
	"fmt"

	"schoolnet/internal/logs"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Session единица работы: копит незакоммиченные записи в одной транзакции,
// которая открывается при первой записи и закрывается Commit или Rollback.
//
// Session не потокобезопасна. Одна сессия на запрос или запуск скрипта.
type Session struct {
	id      string
	db      *gorm.DB
	tx      *gorm.DB
	catalog *Catalog
	log     *logrus.Entry

	savepoints int
	pending    int
	closed     bool
}

type Option func(*Session)

// WithLogger подменяет логгер сессии (по умолчанию logs.Logger).
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = l.WithField("session", s.id)
	}
}

func NewSession(db *gorm.DB, catalog *Catalog, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		db:      db,
		catalog: catalog,
	}
	s.log = logs.Logger.WithField("session", s.id)
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.WithField("catalog", catalog.Name())
	return s
}

// WithSession открывает сессию на время fn: при nil коммитит, иначе откатывает.
func WithSession(ctx context.Context, db *gorm.DB, catalog *Catalog, fn func(*Session) error, opts ...Option) (err error) {
	s := NewSession(db, catalog, opts...)
	defer func() {
		if r := recover(); r != nil {
			_ = s.Close()
			panic(r)
		}
	}()
	if err := fn(s); err != nil {
		if rbErr := s.Close(); rbErr != nil {
			s.log.WithError(rbErr).Warn("rollback failed")
		}
		return err
	}
	if err := s.Commit(); err != nil {
		_ = s.Close()
		return err
	}
	return s.Close()
}

func (s *Session) ID() string { return s.id }

func (s *Session) Catalog() *Catalog { return s.catalog }

// Pending число записей, ждущих Commit.
func (s *Session) Pending() int { return s.pending }

// Commit фиксирует транзакцию. Без открытой транзакции ничего не делает.
func (s *Session) Commit() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	n := s.pending
	s.pending = 0
	if err := tx.Commit().Error; err != nil {
		err = classify(err)
		s.log.WithError(err).Error("commit failed")
		return err
	}
	s.log.WithField("records", n).Debug("committed")
	return nil
}

// Rollback отбрасывает всё, что не было закоммичено.
func (s *Session) Rollback() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	n := s.pending
	s.pending = 0
	if err := tx.Rollback().Error; err != nil {
		return fmt.Errorf("%w: %s", ErrStorage, err.Error())
	}
	s.log.WithField("records", n).Debug("rolled back")
	return nil
}

// Close откатывает незакоммиченное и закрывает сессию. Повторный вызов безопасен.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	err := s.Rollback()
	s.closed = true
	return err
}

// writer возвращает хэндл транзакции, открывая её при необходимости.
func (s *Session) writer(ctx context.Context) (*gorm.DB, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx == nil {
		tx := s.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return nil, classify(tx.Error)
		}
		s.tx = tx
		s.log.Debug("transaction started")
	}
	return s.tx.WithContext(ctx), nil
}

// reader читает через открытую транзакцию, чтобы видеть свои же незакоммиченные записи.
func (s *Session) reader(ctx context.Context) (*gorm.DB, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.tx != nil {
		return s.tx.WithContext(ctx), nil
	}
	return s.db.WithContext(ctx), nil
}

// guarded выполняет fn под точкой сохранения. При ошибке откатывается только fn,
// транзакция сессии остаётся рабочей (PostgreSQL иначе блокирует её до ROLLBACK).
func (s *Session) guarded(tx *gorm.DB, fn func(*gorm.DB) error) error {
	s.savepoints++
	name := fmt.Sprintf("sp_%d", s.savepoints)
	if err := tx.SavePoint(name).Error; err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Session(&gorm.Session{}).RollbackTo(name).Error; rbErr != nil {
			s.log.WithError(rbErr).Warnf("rollback to %s failed", name)
		}
		return err
	}
	s.pending++
	return nil
}
