// internal/db/migrations.go
package db

import (
	"fmt"

	"schoolnet/internal/legacy"
	"schoolnet/internal/models"

	"gorm.io/gorm"
)

const schNetUniqueIndex = "sch_net_school_id_network_unique"

// MigrateCatalog создаёт или дополняет таблицы новой схемы
// вместе с составным уникальным индексом sch_net.
func MigrateCatalog(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(models.Catalog().Models()...); err != nil {
		return fmt.Errorf("automigrate catalog: %w", err)
	}
	return MigrateSchNetUniqueIndex(db)
}

// MigrateLegacy нужна только для тестовых и пустых стендов: боевую старую схему
// ведёт старое приложение.
func MigrateLegacy(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(legacy.Catalog().Models()...); err != nil {
		return fmt.Errorf("automigrate legacy: %w", err)
	}
	return nil
}

// MigrateSchNetUniqueIndex не больше одной строки sch_net на пару (school_id, network).
func MigrateSchNetUniqueIndex(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if db.Migrator().HasIndex(&models.SchNet{}, schNetUniqueIndex) {
		return nil
	}
	dialect := db.Dialector.Name()

	switch dialect {
	case "mysql":
		return db.Exec("CREATE UNIQUE INDEX `" + schNetUniqueIndex + "` ON `sch_net` (`school_id`, `network`)").Error

	case "postgres", "sqlite":
		return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ` + schNetUniqueIndex + ` ON "sch_net" ("school_id", "network")`).Error

	default:
		return fmt.Errorf("unsupported dialect: %s", dialect)
	}
}
