package legacy_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"schoolnet/internal/db"
	"schoolnet/internal/legacy"
	"schoolnet/internal/models"
	"schoolnet/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *store.Session) {
	t.Helper()
	gdb, err := db.Open("sqlite", filepath.Join(t.TempDir(), "legacy.db"), db.Options{LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, db.MigrateLegacy(gdb))

	l := logrus.New()
	l.SetOutput(io.Discard)
	s := legacy.NewSession(gdb, store.WithLogger(l))
	t.Cleanup(func() {
		_ = s.Close()
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb, s
}

func TestLegacy_SchoolWithRouter(t *testing.T) {
	ctx := context.Background()
	gdb, s := setup(t)
	now := time.Now()

	school, err := store.ExistOrCreate[legacy.OldSchool](ctx, s, true, store.Fields{
		"school":     "1234",
		"name":       "Lincoln",
		"address":    "Main st. 1",
		"district":   "North",
		"created_at": now,
		"updated_at": now,
	})
	require.NoError(t, err)
	again, err := store.ExistOrCreate[legacy.OldSchool](ctx, s, true, store.Fields{"school": "1234"})
	require.NoError(t, err)
	assert.Equal(t, school.ID, again.ID)

	_, err = store.Create[legacy.OldRouter](ctx, s, true, store.Fields{
		"serial":     "FTX0001",
		"school_id":  school.ID,
		"ip":         "10.1.1.1",
		"model":      "C1111",
		"created_at": now,
		"updated_at": now,
	})
	require.NoError(t, err)

	var loaded legacy.OldSchool
	require.NoError(t, gdb.Preload("Router").First(&loaded, school.ID).Error)
	require.NotNil(t, loaded.Router)
	assert.Equal(t, "FTX0001", loaded.Router.Serial)
	assert.Equal(t, "<School: Lincoln, address: Main st. 1>", loaded.String())
}

func TestLegacy_StringKeys(t *testing.T) {
	ctx := context.Background()
	_, s := setup(t)

	w, err := store.ExistOrCreate[legacy.OldWLC](ctx, s, true, store.Fields{"name": "wlc-1", "wlc_ip": "10.2.2.2"})
	require.NoError(t, err)
	same, err := store.ExistOrCreate[legacy.OldWLC](ctx, s, true, store.Fields{"name": "wlc-1", "wlc_ip": "10.2.2.2"})
	require.NoError(t, err)
	assert.Equal(t, w.Name, same.Name)

	_, err = store.Create[legacy.OldDistrict](ctx, s, true, store.Fields{"domain": "north.edu", "district": "North"})
	require.NoError(t, err)
	_, err = store.Create[legacy.OldDistrict](ctx, s, true, store.Fields{"domain": "north2.edu", "district": "North"})
	assert.ErrorIs(t, err, store.ErrConstraintViolation)

	// строковый school_id у коммутатора ни на что не ссылается
	_, err = store.Create[legacy.OldSwitch](ctx, s, true, store.Fields{
		"serial": "FOC0001", "school_id": "no-such-school", "created_at": time.Now(), "updated_at": time.Now(),
	})
	require.NoError(t, err)
}

func TestLegacy_RejectsCatalogModels(t *testing.T) {
	_, s := setup(t)

	d, err := store.Create[models.District](context.Background(), s, true, store.Fields{"name": "North"})
	assert.Nil(t, d)
	assert.ErrorIs(t, err, store.ErrForeignModel)
	assert.Equal(t, "legacy", s.Catalog().Name())
}
