package models

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Optional representa un campo que puede estar presente con valor o ausente.
// Reemplaza el uso de punteros y nulls para los campos opcionales de los registros.
type Optional[T any] struct {
	value   T
	present bool
}

// Some crea un Optional presente con el valor dado
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None crea un Optional ausente
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr convierte un puntero en Optional (nil = ausente)
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get retorna el valor y si está presente
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent retorna true si el campo tiene valor
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse retorna el valor o el default si está ausente
func (o Optional[T]) OrElse(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// Ptr retorna un puntero al valor, o nil si está ausente
func (o Optional[T]) Ptr() *T {
	if !o.present {
		return nil
	}
	v := o.value
	return &v
}

// MarshalJSON serializa el valor, o null si está ausente
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON interpreta null como ausente
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Scan implementa sql.Scanner; NULL se lee como ausente
func (o *Optional[T]) Scan(src any) error {
	if src == nil {
		*o = None[T]()
		return nil
	}
	var v T
	if scanner, ok := any(&v).(sql.Scanner); ok {
		if err := scanner.Scan(src); err != nil {
			return err
		}
		*o = Some(v)
		return nil
	}
	switch p := any(&v).(type) {
	case *string:
		switch s := src.(type) {
		case string:
			*p = s
		case []byte:
			*p = string(s)
		default:
			return fmt.Errorf("cannot scan %T into optional string", src)
		}
	case *time.Time:
		t, ok := src.(time.Time)
		if !ok {
			return fmt.Errorf("cannot scan %T into optional time", src)
		}
		*p = t.UTC()
	case *bool:
		b, ok := src.(bool)
		if !ok {
			return fmt.Errorf("cannot scan %T into optional bool", src)
		}
		*p = b
	default:
		return fmt.Errorf("unsupported optional type %T", v)
	}
	*o = Some(v)
	return nil
}

// Value implementa driver.Valuer; un campo ausente se escribe como NULL
func (o Optional[T]) Value() (driver.Value, error) {
	if !o.present {
		return nil, nil
	}
	if valuer, ok := any(o.value).(driver.Valuer); ok {
		return valuer.Value()
	}
	return driver.DefaultParameterConverter.ConvertValue(o.value)
}
