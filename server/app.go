package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolnet/config"
	"schoolnet/internal/db"
	"schoolnet/internal/health"
	"schoolnet/internal/logs"
	"schoolnet/internal/middleware"
	"schoolnet/internal/models"
	"schoolnet/internal/store"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// App служебный процесс: миграция схемы и /healthz, /readyz для эксплуатации.
// Доступ к данным идёт через internal/store, HTTP API данных здесь нет.
type App struct {
	cfg        *config.Config
	Router     *mux.Router
	httpServer *http.Server

	db       *gorm.DB
	legacyDB *gorm.DB
	ctx      context.Context
	cancel   context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) error {
	a.cfg = cfg

	// 1) Логи
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	// 2) Новая схема (обязательна)
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN, db.Options{
		LogLevel:     a.cfg.Database.LogLevel,
		SlowQuery:    a.cfg.Database.SlowQuery,
		MaxOpenConns: a.cfg.Database.MaxOpenConns,
	})
	if err != nil {
		return err
	}
	a.db = d
	if a.cfg.Database.AutoMigrate {
		if err := db.MigrateCatalog(a.db); err != nil {
			return err
		}
	}

	// 3) Старая схема (опционально, только чтение при переносе)
	if a.cfg.Legacy.DSN != "" {
		ld, err := db.Open(a.cfg.Legacy.Driver, a.cfg.Legacy.DSN, db.Options{LogLevel: a.cfg.Database.LogLevel})
		if err != nil {
			return err
		}
		a.legacyDB = ld
		if a.cfg.Legacy.Migrate {
			if err := db.MigrateLegacy(a.legacyDB); err != nil {
				logs.Logger.Warnf("legacy migration: %v", err)
			}
		}
	}

	// 4) Роутер + middleware
	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)

	health.RegisterRoutesWithDB(a.Router, map[string]*gorm.DB{
		models.Catalog().Name(): a.db,
		"legacy":                a.legacyDB,
	})

	_ = a.Router.Walk(func(rt *mux.Route, r *mux.Router, ancestors []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		logs.Logger.Debugf("route: %-6v %s", methods, path)
		return nil
	})
	return nil
}

// DB подключение к новой схеме.
func (a *App) DB() *gorm.DB { return a.db }

// LegacyDB подключение к старой схеме или nil.
func (a *App) LegacyDB() *gorm.DB { return a.legacyDB }

// NewSession единица работы над новой схемой.
func (a *App) NewSession() *store.Session {
	return store.NewSession(a.db, models.Catalog())
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; a.cancel() }()

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-a.ctx.Done():
	case err := <-errCh:
		a.cancel()
		a.Close()
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.httpServer.Shutdown(ctx)
	a.Close()
	return nil
}

// Close закрывает пулы соединений.
func (a *App) Close() {
	for _, d := range []*gorm.DB{a.db, a.legacyDB} {
		if d == nil {
			continue
		}
		if sqlDB, err := d.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
