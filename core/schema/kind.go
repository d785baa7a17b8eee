package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// KindName identifies a parameter kind. See the Kind* constants.
type KindName string

const (
	KindBool   KindName = "Bool"
	KindUint8  KindName = "Uint8"
	KindUint16 KindName = "Uint16"
	KindUint32 KindName = "Uint32"
	KindUint64 KindName = "Uint64"
	KindInt8   KindName = "Int8"
	KindInt16  KindName = "Int16"
	KindInt32  KindName = "Int32"
	KindInt64  KindName = "Int64"
	KindFloat  KindName = "Float"
	KindDouble KindName = "Double"
	KindString KindName = "String"
	KindEnum   KindName = "Enum" // requires Values
)

// Kind is the declared type of a parameter or output value.
//
// Scalar kinds carry only a name. Enum additionally carries the ordered list
// of values the parameter may take; two Enum kinds are interchangeable only
// when their value lists match element for element.
type Kind struct {
	Name   KindName
	Values []string // enum values, in declared order
}

// Predeclared scalar kinds.
var (
	Bool   = Kind{Name: KindBool}
	Uint8  = Kind{Name: KindUint8}
	Uint16 = Kind{Name: KindUint16}
	Uint32 = Kind{Name: KindUint32}
	Uint64 = Kind{Name: KindUint64}
	Int8   = Kind{Name: KindInt8}
	Int16  = Kind{Name: KindInt16}
	Int32  = Kind{Name: KindInt32}
	Int64  = Kind{Name: KindInt64}
	Float  = Kind{Name: KindFloat}
	Double = Kind{Name: KindDouble}
	String = Kind{Name: KindString}
)

// EnumOf returns an Enum kind that allows exactly the given values.
func EnumOf(values ...string) Kind {
	return Kind{Name: KindEnum, Values: values}
}

// Equal reports whether k and other describe the same kind. Enum kinds
// compare their value lists element for element; order matters.
func (k Kind) Equal(other Kind) bool {
	if k.Name != other.Name {
		return false
	}
	if len(k.Values) != len(other.Values) {
		return false
	}
	for i := range k.Values {
		if k.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}

// Allows reports whether value is one of an Enum kind's declared values.
// It is false for every non-Enum kind.
func (k Kind) Allows(value string) bool {
	if k.Name != KindEnum {
		return false
	}
	for _, v := range k.Values {
		if v == value {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	if k.Name == KindEnum {
		return fmt.Sprintf("Enum(%s)", strings.Join(k.Values, ", "))
	}
	return string(k.Name)
}

// MarshalJSON encodes scalar kinds as a bare name string ("Uint32") and Enum
// as a single-key object listing its values ({"Enum": ["A", "B"]}).
func (k Kind) MarshalJSON() ([]byte, error) {
	if k.Name == KindEnum {
		values := k.Values
		if values == nil {
			values = []string{}
		}
		return json.Marshal(map[string][]string{string(KindEnum): values})
	}
	if !isValidKindName(k.Name) {
		return nil, fmt.Errorf("unknown parameter kind %q", k.Name)
	}
	return json.Marshal(string(k.Name))
}

// UnmarshalJSON accepts either wire form produced by MarshalJSON. A bare
// "Enum" string is rejected; enum kinds must spell out their values.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		kn := KindName(name)
		if kn == KindEnum || !isValidKindName(kn) {
			return fmt.Errorf("unknown parameter kind %q", name)
		}
		*k = Kind{Name: kn}
		return nil
	}

	var tagged map[string][]string
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("parse parameter kind: %w", err)
	}
	values, ok := tagged[string(KindEnum)]
	if !ok || len(tagged) != 1 {
		return fmt.Errorf("parse parameter kind: want a kind name or an %q object", KindEnum)
	}
	*k = Kind{Name: KindEnum, Values: values}
	return nil
}

// isValidKindName checks if a kind name is one of the closed set.
func isValidKindName(n KindName) bool {
	switch n {
	case KindBool, KindUint8, KindUint16, KindUint32, KindUint64,
		KindInt8, KindInt16, KindInt32, KindInt64,
		KindFloat, KindDouble, KindString, KindEnum:
		return true
	default:
		return false
	}
}
