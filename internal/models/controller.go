package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrStackMasterCycle возвращается, если цепочка stack master у Prime замыкается.
// Оборачивает gorm.ErrCheckConstraintViolated, поэтому шлюз считает её нарушением ограничения.
var ErrStackMasterCycle = fmt.Errorf("%w: prime stack master cycle", gorm.ErrCheckConstraintViolated)

// WLC контроллер беспроводной сети, обслуживает много школ.
type WLC struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:255;uniqueIndex;not null"`
	IP        INET       `gorm:"column:ip;uniqueIndex;not null"`
	Option43  string     `gorm:"column:option_43;size:255;uniqueIndex;not null"`
	MgmtIP    INET       `gorm:"column:mgmt_ip;uniqueIndex;not null"`
	OSVersion string     `gorm:"column:os_version;size:60"`
	Created   time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated   *time.Time `gorm:"column:updated"`

	Schools []School `gorm:"foreignKey:WLCID"`
}

func (WLC) TableName() string { return "wlc" }

func (w WLC) String() string { return fmt.Sprintf("WLC(name='%s', ip='%s')", w.Name, w.IP) }

// Prime платформа управления. Несколько Prime могут работать в стеке,
// тогда StackMasterID указывает на ведущий.
type Prime struct {
	ID            uint       `gorm:"primaryKey"`
	Name          string     `gorm:"size:255;uniqueIndex;not null"`
	IP            INET       `gorm:"column:ip;uniqueIndex;not null"`
	StackMasterID *uint      `gorm:"column:stack_master_id;index"`
	Created       time.Time  `gorm:"column:created;not null;autoCreateTime"`
	Updated       *time.Time `gorm:"column:updated"`

	StackMaster *Prime   `gorm:"foreignKey:StackMasterID"`
	Schools     []School `gorm:"foreignKey:PrimeID"`
}

func (Prime) TableName() string { return "prime" }

func (p Prime) String() string { return fmt.Sprintf("Prime(name='%s', ip='%s')", p.Name, p.IP) }

// BeforeSave проходит по цепочке stack master в той же транзакции.
// БД сама такой цикл не увидит: внешний ключ проверяет только существование строки.
func (p *Prime) BeforeSave(tx *gorm.DB) error {
	if p.StackMasterID == nil {
		return nil
	}
	seen := make(map[uint]struct{})
	next := *p.StackMasterID
	for {
		if p.ID != 0 && next == p.ID {
			return ErrStackMasterCycle
		}
		if _, ok := seen[next]; ok {
			return ErrStackMasterCycle
		}
		seen[next] = struct{}{}

		var master Prime
		err := tx.Session(&gorm.Session{NewDB: true}).
			Select("id", "stack_master_id").
			Take(&master, next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// несуществующий мастер отсечёт внешний ключ
			return nil
		}
		if err != nil {
			return err
		}
		if master.StackMasterID == nil {
			return nil
		}
		next = *master.StackMasterID
	}
}
