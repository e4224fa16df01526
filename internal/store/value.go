package store

import "strconv"

// Value is a tagged scalar accepted by the write operations. The tag is
// checked against the column's declared type before any statement runs.
type Value struct {
	typ     ColumnType
	intVal  int64
	textVal string
}

// Int builds an integer-typed value
func Int(v int64) Value {
	return Value{typ: TypeInteger, intVal: v}
}

// Text builds a text-typed value
func Text(s string) Value {
	return Value{typ: TypeText, textVal: s}
}

// Type returns the value's scalar tag
func (v Value) Type() ColumnType {
	return v.typ
}

// arg returns the value as a driver argument
func (v Value) arg() any {
	if v.typ == TypeInteger {
		return v.intVal
	}
	return v.textVal
}

func (v Value) String() string {
	if v.typ == TypeInteger {
		return strconv.FormatInt(v.intVal, 10)
	}
	return v.textVal
}
