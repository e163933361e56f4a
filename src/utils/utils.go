package utils

import (
	"reflect"
	"strings"
)

// GetFields returns the exported struct fields of t in declaration order.
func GetFields(t any) []reflect.StructField {
	typeOf := reflect.TypeOf(t)
	if typeOf.Kind() == reflect.Pointer {
		typeOf = typeOf.Elem()
	}
	var result []reflect.StructField
	for i := 0; i < typeOf.NumField(); i++ {
		field := typeOf.Field(i)
		if field.IsExported() {
			result = append(result, field)
		}
	}
	return result
}

func ParquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(entry), "=")
		if !found || key == "" {
			continue
		}
		result[key] = value
	}
	return result
}

// ColumnNames resolves the parquet column name of every field, falling back to the Go name.
func ColumnNames(fields []reflect.StructField) []string {
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		name, ok := ParquetTagToKeyValue(field.Tag.Get("parquet"))["name"]
		if !ok {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}
