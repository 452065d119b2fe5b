package models

import "schoolnet/internal/store"

// Tables все таблицы новой схемы, справочники раньше зависимых.
var Tables = []any{
	&Credentials{},
	&Vendor{},
	&Model{},
	&District{},
	&Project{},
	&WLC{},
	&Prime{},
	&School{},
	&Router{},
	&Switch{},
	&AP{},
	&KMSNet{},
	&UsersNet{},
	&RTNet{},
	&MGTSNet{},
	&SchNet{},
}

var catalog = store.NewCatalog("catalog", Tables...)

// Catalog каталог новой схемы для store.NewSession.
func Catalog() *store.Catalog { return catalog }
