package lang

import "strconv"

// Kind identifies the type of a bound [Value].
type Kind int

const (
	// KindString is a string value. It is also the fallback for bare
	// identifiers and unrecognized literals.
	KindString Kind = iota

	// KindBool is a boolean literal (true, -true, false, -false).
	KindBool

	// KindNull is the null literal.
	KindNull

	// KindContainer marks a name initialized with {} or [].
	KindContainer

	// KindNumber is an integer counter (only linenum produces one).
	KindNumber
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindContainer:
		return "Container"
	case KindNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// Value is a variable binding's value. The zero Value is the empty string.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	Num  int
}

// String returns a string [Value].
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool returns a boolean [Value].
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number returns an integer [Value].
func Number(n int) Value { return Value{Kind: KindNumber, Num: n} }

// Null is the null [Value].
var Null = Value{Kind: KindNull}

// Container is the empty container marker.
var Container = Value{Kind: KindContainer}

// Function is the string bound to declared function names. No callable is
// modeled, so a declared name compares equal to the literal function.
var Function = String("function")

// String returns the value formatted the way it reads in a document.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNull:
		return "null"
	case KindContainer:
		return "{}"
	case KindNumber:
		return strconv.Itoa(v.Num)
	default:
		return v.Str
	}
}

// ToNative converts a Value to its native Go type.
func (v Value) ToNative() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNull:
		return nil
	case KindContainer:
		return map[string]any{}
	case KindNumber:
		return v.Num
	default:
		return v.Str
	}
}

// Equal reports whether v and w hold the same value. Values of different
// kinds are never equal.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindBool:
		return v.Bool == w.Bool
	case KindNull, KindContainer:
		return true
	case KindNumber:
		return v.Num == w.Num
	default:
		return v.Str == w.Str
	}
}
