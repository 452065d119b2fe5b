// Package devconn собирает параметры подключения к устройству для внешней
// автоматизации (netmiko и scrapli) из Credentials, привязанных к модели.
package devconn

import (
	"context"
	"errors"
	"fmt"

	"schoolnet/internal/ipam"
	"schoolnet/internal/models"
	"schoolnet/internal/store"
)

const (
	DefaultSocketTimeout    = 10 // секунды
	DefaultTransportTimeout = 30
)

var ErrNoCredentials = errors.New("model has no credentials")

// Netmiko параметры ConnectHandler: device_type, host, username, password, secret.
type Netmiko map[string]any

// Scrapli параметры драйвера scrapli.
type Scrapli map[string]any

// Builder граница с внешним инструментом автоматизации.
type Builder interface {
	Params(cred models.Credentials, host string) (Netmiko, Scrapli, error)
}

// Default реализация Builder. Нулевые таймауты заменяются значениями по умолчанию.
type Default struct {
	SocketTimeout    int
	TransportTimeout int
}

var _ Builder = Default{}

func (d Default) Params(cred models.Credentials, host string) (Netmiko, Scrapli, error) {
	ip, err := ipam.NormalizeIP(host)
	if err != nil {
		return nil, nil, err
	}
	socket, transport := d.SocketTimeout, d.TransportTimeout
	if socket <= 0 {
		socket = DefaultSocketTimeout
	}
	if transport <= 0 {
		transport = DefaultTransportTimeout
	}

	netmiko := Netmiko{
		"device_type": cred.DeviceType,
		"host":        ip,
		"username":    cred.Username,
		"password":    cred.Password,
		"secret":      cred.Secret,
	}
	scrapli := Scrapli{
		"host":              ip,
		"auth_username":     cred.Username,
		"auth_password":     cred.Password,
		"auth_secondary":    cred.Secret,
		"auth_strict_key":   false,
		"timeout_socket":    socket,
		"timeout_transport": transport,
		"platform":          cred.Platform,
		"transport":         cred.Transport,
	}
	return netmiko, scrapli, nil
}

// CredentialsFor находит Credentials модели через шлюз хранения.
func CredentialsFor(ctx context.Context, s *store.Session, modelID uint) (*models.Credentials, error) {
	m, err := store.Exist[models.Model](ctx, s, store.Fields{"id": modelID})
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("model %d not found", modelID)
	}
	if m.CredentialsID == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, m)
	}
	cred, err := store.Exist[models.Credentials](ctx, s, store.Fields{"id": *m.CredentialsID})
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: credentials %d missing", ErrNoCredentials, *m.CredentialsID)
	}
	return cred, nil
}

// ForDevice параметры для устройства по его модели и адресу управления.
func ForDevice(ctx context.Context, s *store.Session, b Builder, modelID *uint, host models.INET) (Netmiko, Scrapli, error) {
	if modelID == nil {
		return nil, nil, fmt.Errorf("%w: device has no model", ErrNoCredentials)
	}
	cred, err := CredentialsFor(ctx, s, *modelID)
	if err != nil {
		return nil, nil, err
	}
	return b.Params(*cred, string(host))
}
