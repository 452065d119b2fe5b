package models

import (
	"database/sql/driver"
	"fmt"
	"net"
	"net/netip"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// INET хранит одиночный адрес в канонической форме (см. ipam.NormalizeIP).
// На PostgreSQL колонка получает родной тип inet, на остальных диалектах varchar.
type INET string

// CIDR хранит префикс сети в канонической форме (см. ipam.NormalizeNetwork).
type CIDR string

// MACAddr хранит MAC-адрес в виде xx:xx:xx:xx:xx:xx.
type MACAddr string

func (INET) GormDataType() string    { return "inet" }
func (CIDR) GormDataType() string    { return "cidr" }
func (MACAddr) GormDataType() string { return "macaddr" }

func (INET) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dialectType(db, "inet", "varchar(45)")
}

func (CIDR) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dialectType(db, "cidr", "varchar(49)")
}

func (MACAddr) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return dialectType(db, "macaddr", "varchar(17)")
}

func dialectType(db *gorm.DB, pg, other string) string {
	if db.Dialector.Name() == "postgres" {
		return pg
	}
	return other
}

// Пустое значение пишется как NULL: inet/cidr не принимают пустую строку.
func (a INET) Value() (driver.Value, error)    { return textValue(string(a)) }
func (c CIDR) Value() (driver.Value, error)    { return textValue(string(c)) }
func (m MACAddr) Value() (driver.Value, error) { return textValue(string(m)) }

func (a *INET) Scan(v any) error {
	s, err := scanText(v, true)
	*a = INET(s)
	return err
}

func (c *CIDR) Scan(v any) error {
	s, err := scanText(v, false)
	*c = CIDR(s)
	return err
}

func (m *MACAddr) Scan(v any) error {
	s, err := scanText(v, false)
	*m = MACAddr(s)
	return err
}

func textValue(s string) (driver.Value, error) {
	if s == "" {
		return nil, nil
	}
	return s, nil
}

// scanText приводит то, что вернул драйвер, к тексту колонки.
// pgx может отдать inet как netip.Prefix, тогда хостовой адрес печатается без /32.
func scanText(v any, host bool) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case netip.Prefix:
		if host && t.IsSingleIP() {
			return t.Addr().String(), nil
		}
		return t.String(), nil
	case netip.Addr:
		return t.String(), nil
	case net.HardwareAddr:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("models: unsupported column value %T", v)
	}
}
