package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel inserts the exported fields of model that carry a db tag.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return Insert(table, cols, vals, suffix)
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.Indirect(reflect.ValueOf(model))
	if !value.IsValid() || value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a non-nil struct, got %T", model)
	}

	typ := value.Type()
	var cols []string
	var vals []any
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
