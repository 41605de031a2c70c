// Package internal provides internal implementation for the configx package.
package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// BindToStruct binds snapshot values to struct fields using env and default tags.
// Keys absent from the snapshot fall back to the default tag; an empty value keeps the field's zero value.
func BindToStruct(snapshot map[string]string, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.IsNil() || targetValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil pointer to struct")
	}

	return bindStructFields(snapshot, targetValue.Elem())
}

func bindStructFields(snapshot map[string]string, structValue reflect.Value) error {
	structType := structValue.Type()

	for i := 0; i < structValue.NumField(); i++ {
		field := structValue.Field(i)
		fieldType := structType.Field(i)

		if !field.CanSet() {
			continue
		}

		envTag := fieldType.Tag.Get("env")

		// Nested structs without their own key are walked recursively.
		if field.Kind() == reflect.Struct && envTag == "" && field.Type() != reflect.TypeOf(time.Time{}) {
			if err := bindStructFields(snapshot, field); err != nil {
				return fmt.Errorf("bind nested struct %s: %w", fieldType.Name, err)
			}
			continue
		}

		if envTag == "" {
			continue
		}

		value, exists := snapshot[envTag]
		if !exists {
			value = fieldType.Tag.Get("default")
		}

		if err := setFieldValue(field, value); err != nil {
			return fmt.Errorf("field %s (%s=%q): %w", fieldType.Name, envTag, value, err)
		}
	}

	return nil
}

// setFieldValue sets a field value from a string.
func setFieldValue(field reflect.Value, value string) error {
	if value == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(duration))
			return nil
		}
		intValue, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(uintValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		parts := strings.Split(value, ",")
		items := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = reflect.Append(items, reflect.ValueOf(p))
			}
		}
		field.Set(items)
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
