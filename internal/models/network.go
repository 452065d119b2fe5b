package models

import (
	"fmt"
	"time"
)

// Сетевые выделения школы. KMSNet, UsersNet, RTNet и MGTSNet допускают одну строку на школу,
// SchNet много строк, но не больше одной на пару (school_id, network):
// этот составной индекс создаёт db.MigrateSchNetUniqueIndex.

// KMSNet базовая сеть КМС и подсети VLAN 30/60/70.
type KMSNet struct {
	ID       uint       `gorm:"primaryKey"`
	SchoolID uint       `gorm:"column:school_id;uniqueIndex;not null"`
	Network  CIDR       `gorm:"column:network;uniqueIndex;not null"`
	Vlan30   CIDR       `gorm:"column:vlan30"`
	Vlan60   CIDR       `gorm:"column:vlan60"`
	Vlan70   CIDR       `gorm:"column:vlan70"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated  *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
}

func (KMSNet) TableName() string { return "kms_net" }

func (n KMSNet) String() string { return fmt.Sprintf("KMSNet(network='%s')", n.Network) }

// UsersNet внутренняя пользовательская сеть школы, VLAN 40/50.
type UsersNet struct {
	ID       uint       `gorm:"primaryKey"`
	SchoolID uint       `gorm:"column:school_id;uniqueIndex;not null"`
	Network  CIDR       `gorm:"column:network;not null"`
	Vlan40   CIDR       `gorm:"column:vlan40"`
	Vlan50   CIDR       `gorm:"column:vlan50"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated  *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
}

func (UsersNet) TableName() string { return "users_net" }

func (n UsersNet) String() string { return fmt.Sprintf("UsersNet(network='%s')", n.Network) }

type RTNet struct {
	ID       uint       `gorm:"primaryKey"`
	SchoolID uint       `gorm:"column:school_id;uniqueIndex;not null"`
	Network  CIDR       `gorm:"column:network;uniqueIndex;not null"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated  *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
}

func (RTNet) TableName() string { return "rt_net" }

func (n RTNet) String() string { return fmt.Sprintf("RTNet(network='%s')", n.Network) }

type MGTSNet struct {
	ID       uint       `gorm:"primaryKey"`
	SchoolID uint       `gorm:"column:school_id;uniqueIndex;not null"`
	Network  CIDR       `gorm:"column:network;uniqueIndex;not null"`
	Created  time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated  *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
}

func (MGTSNet) TableName() string { return "mgts_net" }

func (n MGTSNet) String() string { return fmt.Sprintf("MGTSNet(network='%s')", n.Network) }

// SchNet произвольная сеть школы с описанием. Kms помечает сети КМС.
type SchNet struct {
	ID          uint       `gorm:"primaryKey"`
	SchoolID    uint       `gorm:"column:school_id;not null;index"`
	Network     INET       `gorm:"column:network;not null"`
	Description string     `gorm:"size:255"`
	Kms         bool       `gorm:"column:kms;not null;default:false"`
	Created     time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated     *time.Time `gorm:"column:updated"`

	School *School `gorm:"foreignKey:SchoolID"`
}

func (SchNet) TableName() string { return "sch_net" }

func (n SchNet) String() string { return fmt.Sprintf("SchNet(network='%s')", n.Network) }
