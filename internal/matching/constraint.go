package matching

import (
	"strconv"
	"strings"
)

const anyValue = "any"

// Constraint is an employer requirement on a single field.
// The zero value places no constraint.
type Constraint struct {
	value string
	set   bool
}

// NoConstraint returns a constraint that allows every value.
func NoConstraint() Constraint {
	return Constraint{}
}

// ParseConstraint reads an employer value. Empty values and "Any" place no constraint.
func ParseConstraint(raw string) Constraint {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, anyValue) {
		return NoConstraint()
	}
	return Constraint{value: value, set: true}
}

// IsSet reports whether the constraint restricts anything.
func (c Constraint) IsSet() bool { return c.set }

// Value returns the required value, or "" when the constraint is not set.
func (c Constraint) Value() string { return c.value }

// Allows reports whether actual satisfies the constraint, ignoring case.
func (c Constraint) Allows(actual string) bool {
	if !c.set {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(actual), c.value)
}

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// ParseRange parses "min-max". Anything else, including "Any", is reported as not ok.
func ParseRange(raw string) (Range, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return Range{}, false
	}

	lower, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, false
	}
	upper, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, false
	}
	if lower > upper {
		return Range{}, false
	}

	return Range{Min: lower, Max: upper}, true
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max)
}

// parseCeiling reads a salary ceiling. Non-numeric and non-positive values place no constraint.
func parseCeiling(raw string) (float64, bool) {
	c := ParseConstraint(raw)
	if !c.IsSet() {
		return 0, false
	}

	ceiling, err := strconv.ParseFloat(c.Value(), 64)
	if err != nil || ceiling <= 0 {
		return 0, false
	}
	return ceiling, true
}

// Tier is an availability ordinal; larger values mean a later start.
type Tier int

var availabilityTiers = map[string]Tier{
	"immediate": 0,
	"1 week":    1,
	"2 weeks":   2,
	"1 month":   3,
	"2 months":  4,
	"3 months":  5,
}

// AvailabilityTier maps an availability string to its tier. Values outside
// the table are reported as unknown.
func AvailabilityTier(availability string) (Tier, bool) {
	tier, ok := availabilityTiers[normalizeToken(availability)]
	return tier, ok
}
