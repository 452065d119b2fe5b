package devconn

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"schoolnet/internal/db"
	"schoolnet/internal/ipam"
	"schoolnet/internal/models"
	"schoolnet/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cred = models.Credentials{
	Username:   "admin",
	Password:   "pass",
	Secret:     "enable",
	DeviceType: "cisco_ios",
	Platform:   "cisco_iosxe",
	Transport:  "ssh2",
}

func TestParams(t *testing.T) {
	netmiko, scrapli, err := Default{}.Params(cred, " 10.0.1.1 ")
	require.NoError(t, err)

	assert.Equal(t, Netmiko{
		"device_type": "cisco_ios",
		"host":        "10.0.1.1",
		"username":    "admin",
		"password":    "pass",
		"secret":      "enable",
	}, netmiko)

	assert.Equal(t, "10.0.1.1", scrapli["host"])
	assert.Equal(t, "admin", scrapli["auth_username"])
	assert.Equal(t, "pass", scrapli["auth_password"])
	assert.Equal(t, "enable", scrapli["auth_secondary"])
	assert.Equal(t, false, scrapli["auth_strict_key"])
	assert.Equal(t, DefaultSocketTimeout, scrapli["timeout_socket"])
	assert.Equal(t, DefaultTransportTimeout, scrapli["timeout_transport"])
	assert.Equal(t, "cisco_iosxe", scrapli["platform"])
	assert.Equal(t, "ssh2", scrapli["transport"])
}

func TestParams_CustomTimeouts(t *testing.T) {
	_, scrapli, err := Default{SocketTimeout: 3, TransportTimeout: 7}.Params(cred, "10.0.1.1")
	require.NoError(t, err)
	assert.Equal(t, 3, scrapli["timeout_socket"])
	assert.Equal(t, 7, scrapli["timeout_transport"])
}

func TestParams_BadHost(t *testing.T) {
	_, _, err := Default{}.Params(cred, "router.local")
	assert.ErrorIs(t, err, ipam.ErrInvalidAddress)
}

func TestForDevice(t *testing.T) {
	ctx := context.Background()
	gdb, err := db.Open("sqlite", filepath.Join(t.TempDir(), "catalog.db"), db.Options{LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, db.MigrateCatalog(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	l := logrus.New()
	l.SetOutput(io.Discard)
	s := store.NewSession(gdb, models.Catalog(), store.WithLogger(l))
	defer s.Close()

	c, err := store.Create[models.Credentials](ctx, s, false, store.Fields{
		"username": "admin", "password": "pass", "device_type": "cisco_ios", "platform": "cisco_iosxe", "transport": "ssh2",
	})
	require.NoError(t, err)
	vendor, err := store.Create[models.Vendor](ctx, s, false, store.Fields{"name": "Cisco"})
	require.NoError(t, err)
	withCred, err := store.Create[models.Model](ctx, s, false, store.Fields{
		"name": "C1111-8P", "vendor_id": vendor.ID, "credentials_id": c.ID,
	})
	require.NoError(t, err)
	bare, err := store.Create[models.Model](ctx, s, true, store.Fields{"name": "C9200L", "vendor_id": vendor.ID})
	require.NoError(t, err)

	netmiko, scrapli, err := ForDevice(ctx, s, Default{}, &withCred.ID, models.INET("10.0.1.1"))
	require.NoError(t, err)
	assert.Equal(t, "cisco_ios", netmiko["device_type"])
	assert.Equal(t, "cisco_iosxe", scrapli["platform"])

	_, _, err = ForDevice(ctx, s, Default{}, &bare.ID, models.INET("10.0.1.2"))
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, _, err = ForDevice(ctx, s, Default{}, nil, models.INET("10.0.1.3"))
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = CredentialsFor(ctx, s, 9999)
	assert.Error(t, err)
}
