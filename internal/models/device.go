package models

import (
	"fmt"
	"time"
)

// Router пограничный маршрутизатор школы.
type Router struct {
	ID        uint       `gorm:"primaryKey"`
	SchoolID  uint       `gorm:"column:school_id;not null;index"`
	Name      string     `gorm:"size:255;uniqueIndex;not null"`
	SN        string     `gorm:"column:sn;size:255;uniqueIndex;not null"`
	IP        INET       `gorm:"column:ip;uniqueIndex;not null"`
	ModelID   *uint      `gorm:"column:model_id;index"`
	OSVersion string     `gorm:"column:os_version;size:255"`
	Created   time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated   *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
	Model  *Model  `gorm:"foreignKey:ModelID"`
}

func (Router) TableName() string { return "router" }

func (r Router) String() string { return fmt.Sprintf("Router(name='%s', ip='%s')", r.Name, r.IP) }

type Switch struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:255;uniqueIndex;not null"`
	SN        string     `gorm:"column:sn;size:255;uniqueIndex;not null"`
	IP        INET       `gorm:"column:ip;uniqueIndex;not null"`
	MAC       MACAddr    `gorm:"column:mac"`
	ModelID   *uint      `gorm:"column:model_id;index"`
	OSVersion string     `gorm:"column:os_version;size:255"`
	SchoolID  uint       `gorm:"column:school_id;not null;index"`
	Created   time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated   *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
	Model  *Model  `gorm:"foreignKey:ModelID"`
}

func (Switch) TableName() string { return "switch" }

func (s Switch) String() string { return fmt.Sprintf("Switch(name='%s', ip='%s')", s.Name, s.IP) }

// AP точка доступа. Идентифицируется по MAC и серийному номеру, IP может быть не назначен.
type AP struct {
	ID       uint       `gorm:"primaryKey"`
	MAC      MACAddr    `gorm:"column:mac;uniqueIndex;not null"`
	SN       string     `gorm:"column:sn;size:255;uniqueIndex;not null"`
	Name     string     `gorm:"size:255;not null"`
	IP       INET       `gorm:"column:ip"`
	SchoolID *uint      `gorm:"column:school_id;index"`
	ModelID  *uint      `gorm:"column:model_id;index"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated  *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
	Model  *Model  `gorm:"foreignKey:ModelID"`
}

func (AP) TableName() string { return "ap" }

func (a AP) String() string { return fmt.Sprintf("AP(name='%s', mac='%s')", a.Name, a.MAC) }

type Vendor struct {
	ID      uint       `gorm:"primaryKey"`
	Name    string     `gorm:"size:255;uniqueIndex;not null"`
	Created time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated *time.Time `gorm:"column:updated"`

	Models []Model `gorm:"foreignKey:VendorID"`
}

func (Vendor) TableName() string { return "vendor" }

func (v Vendor) String() string { return fmt.Sprintf("Vendor(name='%s')", v.Name) }

// Model модель оборудования. Через Credentials определяется, как подключаться к устройствам этой модели.
type Model struct {
	ID            uint       `gorm:"primaryKey"`
	VendorID      uint       `gorm:"column:vendor_id;not null;index"`
	Name          string     `gorm:"size:255;uniqueIndex;not null"`
	CredentialsID *uint      `gorm:"column:credentials_id;index"`
	Created       time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated       *time.Time `gorm:"column:updated"`

	Vendor      *Vendor      `gorm:"foreignKey:VendorID"`
	Credentials *Credentials `gorm:"foreignKey:CredentialsID"`
	Routers     []Router     `gorm:"foreignKey:ModelID"`
	Switches    []Switch     `gorm:"foreignKey:ModelID"`
	APs         []AP         `gorm:"foreignKey:ModelID"`
}

func (Model) TableName() string { return "model" }

func (m Model) String() string { return fmt.Sprintf("Model(name='%s')", m.Name) }

// Credentials учётные данные и идентификаторы драйверов для внешней автоматизации.
// DeviceType относится к netmiko, Platform и Transport к scrapli.
type Credentials struct {
	ID         uint       `gorm:"primaryKey"`
	Username   string     `gorm:"size:255"`
	Password   string     `gorm:"size:255"`
	Secret     string     `gorm:"size:255"`
	DeviceType string     `gorm:"column:device_type;size:64"`
	Platform   string     `gorm:"size:64"`
	Transport  string     `gorm:"size:32"`
	Created    time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated    *time.Time `gorm:"column:updated"`

	Models []Model `gorm:"foreignKey:CredentialsID"`
}

func (Credentials) TableName() string { return "credentials" }

// String не печатает секреты.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials(id=%d, username='%s', device_type='%s')", c.ID, c.Username, c.DeviceType)
}
