package logx

import "time"

// Field is one key-value pair of an entry.
type Field struct {
	Key   string
	Value any
}

// Any keeps value as is.
func Any(key string, value any) Field { return Field{Key: key, Value: value} }

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Strings copies value, so later mutation of the slice does not alter the entry.
func Strings(key string, value []string) Field {
	return Field{Key: key, Value: append([]string(nil), value...)}
}

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field, used for ids.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Int64s copies value like Strings does.
func Int64s(key string, value []int64) Field {
	return Field{Key: key, Value: append([]int64(nil), value...)}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

// Time creates a time.Time field.
func Time(key string, value time.Time) Field { return Field{Key: key, Value: value} }

// Duration creates a time.Duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err stores the error text under "err". A nil error stays nil.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "err", Value: nil}
	}
	return Field{Key: "err", Value: err.Error()}
}
