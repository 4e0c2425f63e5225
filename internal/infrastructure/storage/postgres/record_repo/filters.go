package record_repo

import "fieldserve/internal/domain/filter"

// Shorthand constructors for translating typed list filters into
// advanced filter items.

func eqFilter(field string, value any) filter.Item {
	return filter.Item{Field: field, Operator: filter.Equal, Value: value}
}

func gteFilter(field string, value any) filter.Item {
	return filter.Item{Field: field, Operator: filter.GreaterOrEqual, Value: value}
}

func lteFilter(field string, value any) filter.Item {
	return filter.Item{Field: field, Operator: filter.LessOrEqual, Value: value}
}
