package quote

// Package quote resolves per-plant vinyl pressing quotes from a price catalogue.

import "strings"

type Size string

const (
	Size7  Size = "7"
	Size10 Size = "10"
	Size12 Size = "12"
)

type Format string

const (
	Format1LP Format = "1LP"
	Format2LP Format = "2LP"
	Format3LP Format = "3LP"
)

// DefaultColour and DefaultWeight are the implicit free options. A plant never
// needs a catalogue row for them and they never add cost, even if a row exists.
const (
	DefaultColour = "black"
	DefaultWeight = "140gm"
)

type PackagingType string

const (
	InnerSleeve PackagingType = "inner_sleeve"
	Jacket      PackagingType = "jacket"
	Inserts     PackagingType = "inserts"
	ShrinkWrap  PackagingType = "shrink_wrap"
)

// PackagingTypes lists every packaging component in evaluation order.
var PackagingTypes = []PackagingType{InnerSleeve, Jacket, Inserts, ShrinkWrap}

func ParsePackagingType(value string) (PackagingType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("-", "_", " ", "_")
	normalized = replacer.Replace(normalized)

	switch normalized {
	case "inner_sleeve", "innersleeve":
		return InnerSleeve, true
	case "jacket":
		return Jacket, true
	case "inserts", "insert":
		return Inserts, true
	case "shrink_wrap", "shrinkwrap":
		return ShrinkWrap, true
	default:
		return "", false
	}
}

// ParseSize trims value and reports whether it is a pressable size.
func ParseSize(value string) (Size, bool) {
	s := Size(strings.TrimSpace(value))
	return s, ValidSize(s)
}

// ParseFormat accepts formats case-insensitively ("2lp" is 2LP).
func ParseFormat(value string) (Format, bool) {
	f := Format(strings.ToUpper(strings.TrimSpace(value)))
	return f, ValidFormat(f)
}

func ValidSize(s Size) bool {
	switch s {
	case Size7, Size10, Size12:
		return true
	default:
		return false
	}
}

func ValidFormat(f Format) bool {
	switch f {
	case Format1LP, Format2LP, Format3LP:
		return true
	default:
		return false
	}
}

// Specification is the buyer's requested pressing.
type Specification struct {
	Quantity    int
	Size        Size
	Format      Format
	Weight      string
	Colour      string
	InnerSleeve string
	Jacket      string
	Inserts     string
	ShrinkWrap  string
}

// Packaging returns the option selected for the given packaging type.
func (s Specification) Packaging(t PackagingType) string {
	switch t {
	case InnerSleeve:
		return s.InnerSleeve
	case Jacket:
		return s.Jacket
	case Inserts:
		return s.Inserts
	case ShrinkWrap:
		return s.ShrinkWrap
	default:
		return ""
	}
}

// noneOptions are packaging labels that mean "leave this component out".
var noneOptions = map[PackagingType][]string{
	Inserts:    {"no insert", "no inserts", "none", "no"},
	ShrinkWrap: {"no", "none", "no shrink wrap"},
}

// IsNoneOption reports whether option opts the buyer out of the packaging type.
// Such options always cost zero.
func IsNoneOption(t PackagingType, option string) bool {
	normalized := normalizeOption(option)
	for _, label := range noneOptions[t] {
		if normalized == label {
			return true
		}
	}
	return false
}

func isImplicitDefault(field Field, value string) bool {
	switch field {
	case FieldColour:
		return normalizeOption(value) == DefaultColour
	case FieldWeight:
		return normalizeOption(value) == DefaultWeight
	default:
		return false
	}
}

// OptionKey is the form catalogue lookups compare option values in: case and
// runs of whitespace are ignored, so "Splatter " and "splatter" are the same
// option.
func OptionKey(value string) string {
	return normalizeOption(value)
}

func normalizeOption(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
