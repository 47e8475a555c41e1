package domain

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

var ErrAttributeNotFound = &Error{Code: ENOTFOUND, Message: "Attribute not found"}

// AttributeType enumerates the value types an attribute can declare. The type
// decides which storage column holds a product's value for the attribute.
type AttributeType string

const (
	AttributeString  AttributeType = "string"
	AttributeInt     AttributeType = "int"
	AttributeDecimal AttributeType = "decimal"
	AttributeBool    AttributeType = "bool"
)

// ValidAttributeType reports whether t is one of the declared types.
func ValidAttributeType(t AttributeType) bool {
	switch t {
	case AttributeString, AttributeInt, AttributeDecimal, AttributeBool:
		return true
	}
	return false
}

// Attribute is a dynamic product characteristic (EAV definition row).
type Attribute struct {
	ID   int64
	Name string
	Code string
	Type AttributeType
}

// AttrValue is a typed attribute value: a tagged union over the four storage
// columns. Exactly the variant matching Type is meaningful.
type AttrValue struct {
	Type AttributeType
	Str  string
	Int  int64
	Dec  decimal.Decimal
	Bool bool
}

// StrValue builds a string-typed value.
func StrValue(s string) AttrValue { return AttrValue{Type: AttributeString, Str: s} }

// IntValue builds an int-typed value.
func IntValue(i int64) AttrValue { return AttrValue{Type: AttributeInt, Int: i} }

// DecValue builds a decimal-typed value.
func DecValue(d decimal.Decimal) AttrValue { return AttrValue{Type: AttributeDecimal, Dec: d} }

// BoolValue builds a bool-typed value.
func BoolValue(b bool) AttrValue { return AttrValue{Type: AttributeBool, Bool: b} }

// ParseAttrValue parses a raw query-string value according to the attribute's
// declared type. Returns an EINVALID error when the raw value does not fit.
func ParseAttrValue(t AttributeType, raw string) (AttrValue, error) {
	switch t {
	case AttributeString:
		return StrValue(raw), nil
	case AttributeInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return AttrValue{}, Invalid("attribute.parse", fmt.Sprintf("invalid integer value: %s", raw))
		}
		return IntValue(i), nil
	case AttributeDecimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return AttrValue{}, Invalid("attribute.parse", fmt.Sprintf("invalid decimal value: %s", raw))
		}
		return DecValue(d), nil
	case AttributeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return AttrValue{}, Invalid("attribute.parse", fmt.Sprintf("invalid boolean value: %s", raw))
		}
		return BoolValue(b), nil
	}
	return AttrValue{}, Invalid("attribute.parse", fmt.Sprintf("unknown attribute type: %s", t))
}

// Scalar returns the variant's value as an interface for serialization.
func (v AttrValue) Scalar() interface{} {
	switch v.Type {
	case AttributeString:
		return v.Str
	case AttributeInt:
		return v.Int
	case AttributeDecimal:
		return v.Dec
	case AttributeBool:
		return v.Bool
	}
	return nil
}

// ProductAttributeValue is one product's value for one attribute, joined with
// the attribute definition for serialization.
type ProductAttributeValue struct {
	AttributeID int64
	Code        string
	Name        string
	Value       AttrValue
}

// CreateAttributeParams are the inputs for defining an attribute.
type CreateAttributeParams struct {
	Name string
	Code string
	Type AttributeType
}

// AttributeService manages EAV attribute definitions.
type AttributeService interface {
	List(ctx context.Context) ([]Attribute, error)
	Create(ctx context.Context, params CreateAttributeParams) (*Attribute, error)
	Delete(ctx context.Context, id int64) error
}
