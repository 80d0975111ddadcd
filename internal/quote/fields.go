package quote

import (
	"fmt"
	"slices"
	"strings"
)

// Field names a part of the specification that a plant can fail to satisfy.
type Field string

const (
	FieldSizeFormat  Field = "size_format"
	FieldQuantity    Field = "quantity"
	FieldColour      Field = "colour"
	FieldWeight      Field = "weight"
	FieldInnerSleeve Field = "inner_sleeve"
	FieldJacket      Field = "jacket"
	FieldInserts     Field = "inserts"
	FieldShrinkWrap  Field = "shrink_wrap"
)

var fieldOrder = []Field{
	FieldSizeFormat,
	FieldQuantity,
	FieldColour,
	FieldWeight,
	FieldInnerSleeve,
	FieldJacket,
	FieldInserts,
	FieldShrinkWrap,
}

func packagingField(t PackagingType) Field {
	return Field(t)
}

// Message returns the buyer-facing explanation for a failing field.
func (f Field) Message() string {
	switch f {
	case FieldSizeFormat:
		return "This plant does not press this size and format."
	case FieldQuantity:
		return "This quantity is below the minimum for this configuration."
	case FieldColour:
		return "This colour is not offered by this plant."
	case FieldWeight:
		return "This weight is not offered by this plant."
	case FieldInnerSleeve:
		return "This inner sleeve is not available for this quantity."
	case FieldJacket:
		return "This jacket is not available for this quantity."
	case FieldInserts:
		return "This insert option is not available for this quantity."
	case FieldShrinkWrap:
		return "This shrink wrap option is not available for this quantity."
	default:
		return "This option is not available."
	}
}

// QuantityMessage names the minimum when the plant has one for the
// configuration.
func QuantityMessage(minimum int) string {
	if minimum <= 0 {
		return FieldQuantity.Message()
	}
	return fmt.Sprintf("The minimum order for this configuration is %d units.", minimum)
}

// Failures is the set of fields a plant cannot satisfy. It is kept in a fixed
// field order so results are deterministic.
type Failures []Field

func (fs Failures) Has(f Field) bool {
	return slices.Contains(fs, f)
}

func (fs Failures) Empty() bool {
	return len(fs) == 0
}

func (fs Failures) Strings() []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, string(f))
	}
	return out
}

func (fs Failures) String() string {
	return strings.Join(fs.Strings(), ",")
}

func (fs Failures) add(f Field) Failures {
	if fs.Has(f) {
		return fs
	}
	fs = append(fs, f)
	slices.SortStableFunc(fs, func(a, b Field) int {
		return slices.Index(fieldOrder, a) - slices.Index(fieldOrder, b)
	})
	return fs
}
