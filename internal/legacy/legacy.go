// Package legacy плоская схема до миграции. Только источник для переноса в каталог
// internal/models: строковые поля, без типизации адресов, единственная связь
// OldSchool → OldRouter. Соответствие старых и новых записей здесь не хранится.
package legacy

import (
	"fmt"
	"time"

	"schoolnet/internal/store"

	"gorm.io/gorm"
)

type OldSchool struct {
	ID                        uint       `gorm:"primaryKey"`
	Name                      string     `gorm:"column:name"`
	District                  string     `gorm:"column:district"`
	Address                   string     `gorm:"column:address"`
	School                    string     `gorm:"column:school;uniqueIndex;not null"`
	MGTS                      string     `gorm:"column:mgts"`
	RT                        string     `gorm:"column:rt"`
	NetPak                    string     `gorm:"column:net_pak"`
	NetInner                  string     `gorm:"column:net_inner"`
	VWLC                      string     `gorm:"column:vwlc"`
	OldMGTS                   string     `gorm:"column:old_mgts"`
	Prime                     string     `gorm:"column:prime"`
	DSZN                      string     `gorm:"column:dszn"`
	Project                   string     `gorm:"column:project"`
	SwCount                   int        `gorm:"column:sw_count"`
	APCount                   int        `gorm:"column:ap_count"`
	CreatedAt                 time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt                 time.Time  `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	FormerID                  int        `gorm:"column:former_id;default:0"`
	SchSwCount                int        `gorm:"column:sch_sw_count"`
	EduDCID                   int        `gorm:"column:edu_dc_id"`
	PNR                       *time.Time `gorm:"column:pnr"`
	Finish                    *time.Time `gorm:"column:finish"`
	ParentID                  *int       `gorm:"column:parent_id"`
	CrtGenerated              bool       `gorm:"column:crt_generated"`
	SchoolFullName            string     `gorm:"column:school_full_name"`
	SchoolBuildingFullAddress string     `gorm:"column:school_building_full_address"`
	EKIS                      string     `gorm:"column:ekis"`
	PanelsCount               int        `gorm:"column:panels_count"`
	UniqueAddressID           int        `gorm:"column:unique_address_id"`
	ZBF                       bool       `gorm:"column:zbf;default:false"`
	SchAllPakNets             string     `gorm:"column:sch_all_pak_nets"`

	Router *OldRouter `gorm:"foreignKey:SchoolID"`
}

func (OldSchool) TableName() string { return "schools" }

func (s OldSchool) String() string {
	return fmt.Sprintf("<School: %s, address: %s>", s.Name, s.Address)
}

type OldRouter struct {
	ID        uint      `gorm:"primaryKey"`
	Serial    string    `gorm:"column:serial;not null"`
	School    string    `gorm:"column:school"`
	Model     string    `gorm:"column:model"`
	Name      string    `gorm:"column:name"`
	Location  string    `gorm:"column:location"`
	IP        string    `gorm:"column:ip"`
	OS        string    `gorm:"column:os"`
	ZHostID   string    `gorm:"column:z_hostid"`
	Vendor    string    `gorm:"column:vendor"`
	Type      string    `gorm:"column:type"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	SchoolID  *uint     `gorm:"column:school_id;index"`
}

func (OldRouter) TableName() string { return "router" }

func (r OldRouter) String() string {
	return fmt.Sprintf("<Router: %s, name: %s, ip: %s>", r.Model, r.Name, r.IP)
}

// OldSwitch school_id в старой схеме строковый и ни на что не ссылается.
type OldSwitch struct {
	ID           uint      `gorm:"primaryKey"`
	Serial       string    `gorm:"column:serial;not null"`
	School       string    `gorm:"column:school"`
	Model        string    `gorm:"column:model"`
	Name         string    `gorm:"column:name"`
	Location     string    `gorm:"column:location"`
	IP           string    `gorm:"column:ip"`
	OS           string    `gorm:"column:os"`
	ZHostID      string    `gorm:"column:z_hostid"`
	Type         string    `gorm:"column:type"`
	Vendor       string    `gorm:"column:vendor"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	SchoolID     string    `gorm:"column:school_id"`
	CrtGenerated bool      `gorm:"column:crt_generated"`
}

func (OldSwitch) TableName() string { return "switch" }

func (s OldSwitch) String() string { return fmt.Sprintf("<Switch: %s, ip: %s>", s.Name, s.IP) }

type OldWLC struct {
	Name            string `gorm:"column:name;primaryKey"`
	WLCIP           string `gorm:"column:wlc_ip"`
	WLCOption       string `gorm:"column:wlc_option"`
	RadiusPrimary   int    `gorm:"column:radius_primary"`
	RadiusSecondary int    `gorm:"column:radius_secondary"`
}

func (OldWLC) TableName() string { return "wlc" }

func (w OldWLC) String() string { return fmt.Sprintf("<WLC: %s, ip: %s>", w.Name, w.WLCIP) }

// OldDistrict таблица domains: округ и его домен.
type OldDistrict struct {
	Domain    string `gorm:"column:domain;primaryKey"`
	District  string `gorm:"column:district;uniqueIndex"`
	ShortName string `gorm:"column:shortname"`
}

func (OldDistrict) TableName() string { return "domains" }

func (d OldDistrict) String() string {
	return fmt.Sprintf("<OldDistrict: %s, domain: %s>", d.District, d.Domain)
}

type OldPrime struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:name"`
	IP   string `gorm:"column:ip"`
}

func (OldPrime) TableName() string { return "prime" }

func (p OldPrime) String() string { return fmt.Sprintf("<OldPrime: %s, ip: %s>", p.Name, p.IP) }

var Tables = []any{
	&OldSchool{},
	&OldRouter{},
	&OldSwitch{},
	&OldWLC{},
	&OldDistrict{},
	&OldPrime{},
}

var catalog = store.NewCatalog("legacy", Tables...)

func Catalog() *store.Catalog { return catalog }

// NewSession сессия над старой БД. Типы internal/models в ней отвергаются с store.ErrForeignModel.
func NewSession(db *gorm.DB, opts ...store.Option) *store.Session {
	return store.NewSession(db, catalog, opts...)
}
