package store

import "reflect"

// Catalog набор типов записей одной схемы. Сессия привязана к одному каталогу,
// поэтому типы новой и старой схемы не смешиваются в одной единице работы.
type Catalog struct {
	name   string
	models []any
	types  map[reflect.Type]struct{}
}

// NewCatalog регистрирует модели в порядке, удобном для AutoMigrate.
func NewCatalog(name string, models ...any) *Catalog {
	c := &Catalog{name: name, types: make(map[reflect.Type]struct{}, len(models))}
	for _, m := range models {
		c.models = append(c.models, m)
		c.types[indirectType(m)] = struct{}{}
	}
	return c
}

func (c *Catalog) Name() string { return c.name }

// Models возвращает копию списка моделей.
func (c *Catalog) Models() []any {
	out := make([]any, len(c.models))
	copy(out, c.models)
	return out
}

// Owns сообщает, входит ли тип значения в каталог. Указатели разыменовываются.
func (c *Catalog) Owns(model any) bool {
	if c == nil {
		return false
	}
	_, ok := c.types[indirectType(model)]
	return ok
}

func indirectType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
