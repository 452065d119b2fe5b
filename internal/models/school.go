package models

import (
	"fmt"
	"time"
)

// School одна площадка. Обязательна ссылка на Prime, остальные ссылки могут быть пустыми.
type School struct {
	ID         uint       `gorm:"primaryKey"`
	Name       string     `gorm:"size:255;uniqueIndex;not null"`
	ShortName  string     `gorm:"column:short_name;size:255"`
	FullName   string     `gorm:"column:full_name;size:255"`
	Address    string     `gorm:"size:255"`
	DistrictID *uint      `gorm:"column:district_id;index"`
	WLCID      *uint      `gorm:"column:wlc_id;index"`
	PrimeID    uint       `gorm:"column:prime_id;not null;index"`
	ProjectID  *uint      `gorm:"column:project_id;index"`
	Active     *bool      `gorm:"not null;default:true"`
	Created    time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated    *time.Time `gorm:"column:updated"`

	District *District `gorm:"foreignKey:DistrictID"`
	WLC      *WLC      `gorm:"foreignKey:WLCID"`
	Prime    *Prime    `gorm:"foreignKey:PrimeID"`
	Project  *Project  `gorm:"foreignKey:ProjectID"`

	Routers  []Router `gorm:"foreignKey:SchoolID"`
	Switches []Switch `gorm:"foreignKey:SchoolID"`
	APs      []AP     `gorm:"foreignKey:SchoolID"`
	SchNets  []SchNet `gorm:"foreignKey:SchoolID"`

	// по одной записи на школу, уникальность держит индекс school_id
	KMSNet   *KMSNet   `gorm:"foreignKey:SchoolID"`
	UsersNet *UsersNet `gorm:"foreignKey:SchoolID"`
	RTNet    *RTNet    `gorm:"foreignKey:SchoolID"`
	MGTSNet  *MGTSNet  `gorm:"foreignKey:SchoolID"`
}

func (School) TableName() string { return "school" }

func (s School) String() string {
	return fmt.Sprintf("School(name='%s', address='%s')", s.Name, s.Address)
}

// District административный округ.
type District struct {
	ID       uint       `gorm:"primaryKey"`
	Name     string     `gorm:"size:255;uniqueIndex;not null"`
	NameEn   string     `gorm:"column:name_en;size:255;uniqueIndex;not null"`
	FullName string     `gorm:"column:full_name;size:255;uniqueIndex;not null"`
	FQDN     string     `gorm:"column:fqdn;size:255"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated  *time.Time `gorm:"column:updated"`

	Schools []School `gorm:"foreignKey:DistrictID"`
}

func (District) TableName() string { return "district" }

func (d District) String() string { return fmt.Sprintf("District(name='%s')", d.Name) }

// Project год/очередь проекта, к которому привязаны школы.
type Project struct {
	ID      uint       `gorm:"primaryKey"`
	Name    string     `gorm:"size:255;uniqueIndex;not null"`
	Created time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated *time.Time `gorm:"column:updated"`

	Schools []School `gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string { return "project" }

func (p Project) String() string { return fmt.Sprintf("Project(name='%s')", p.Name) }
