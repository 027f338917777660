package interp

import (
	"math"
	"strconv"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKNil is the nil value; the zero Value is nil.
	VKNil ValueKind = iota
	// VKBool represents a boolean value.
	VKBool
	// VKNumber represents a float64 number.
	VKNumber
	// VKString represents an immutable string.
	VKString
	// VKNative represents a host function.
	VKNative
	// VKFunction represents a user function or a bound method.
	VKFunction
	// VKClass represents a class object.
	VKClass
	// VKInstance represents an instance of a class.
	VKInstance
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKNil:
		return "nil"
	case VKBool:
		return "bool"
	case VKNumber:
		return "number"
	case VKString:
		return "string"
	case VKNative:
		return "native fn"
	case VKFunction:
		return "function"
	case VKClass:
		return "class"
	case VKInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union: exactly the field selected by Kind is
// meaningful. Objects are shared by pointer.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Num    float64
	Str    string
	Native *Native
	Fn     *Function
	Class  *Class
	Inst   *Instance
}

func Nil() Value                     { return Value{} }
func MakeBool(b bool) Value          { return Value{Kind: VKBool, Bool: b} }
func MakeNumber(n float64) Value     { return Value{Kind: VKNumber, Num: n} }
func MakeString(s string) Value      { return Value{Kind: VKString, Str: s} }
func MakeNative(n *Native) Value     { return Value{Kind: VKNative, Native: n} }
func MakeFunction(f *Function) Value { return Value{Kind: VKFunction, Fn: f} }
func MakeClass(c *Class) Value       { return Value{Kind: VKClass, Class: c} }
func MakeInstance(i *Instance) Value { return Value{Kind: VKInstance, Inst: i} }
func (v Value) IsNil() bool          { return v.Kind == VKNil }
func (v Value) IsNumber() bool       { return v.Kind == VKNumber }
func (v Value) IsString() bool       { return v.Kind == VKString }

// Truthy: only nil and false are falsy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case VKNil:
		return false
	case VKBool:
		return v.Bool
	default:
		return true
	}
}

// Equal compares primitives by value and objects by identity.
// NaN is not equal to itself.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case VKNil:
		return true
	case VKBool:
		return v.Bool == other.Bool
	case VKNumber:
		return v.Num == other.Num
	case VKString:
		return v.Str == other.Str
	case VKNative:
		return v.Native == other.Native
	case VKFunction:
		return v.Fn == other.Fn
	case VKClass:
		return v.Class == other.Class
	case VKInstance:
		return v.Inst == other.Inst
	}
	return false
}

// String returns the display form written by `print`.
func (v Value) String() string {
	switch v.Kind {
	case VKNil:
		return "nil"
	case VKBool:
		return strconv.FormatBool(v.Bool)
	case VKNumber:
		return FormatNumber(v.Num)
	case VKString:
		return v.Str
	case VKNative:
		return v.Native.String()
	case VKFunction:
		return v.Fn.String()
	case VKClass:
		return v.Class.String()
	case VKInstance:
		return v.Inst.String()
	}
	return "<invalid>"
}

// FormatNumber prints the shortest decimal that round-trips; integral values
// carry no fractional part. Magnitudes from 1e21 up switch to exponent form.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	}
	if math.Abs(n) >= 1e21 {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
