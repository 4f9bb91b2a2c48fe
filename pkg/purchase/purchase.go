package purchase

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Separator splits the fields of one purchase line
const Separator = ";"

const fieldCount = 5

// decimalPattern accepts an optional sign, digits with an optional fraction
// and an optional exponent. Hex floats, underscores and words like "inf" fail.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Record represents a single validated purchase.
// Records are only built by ParseLine and NewRecord and never change afterwards.
type Record struct {
	date     string
	category string
	name     string
	price    float64
	qty      float64
	total    float64
}

func (r Record) Date() string     { return r.date }
func (r Record) Category() string { return r.category }
func (r Record) Name() string     { return r.name }
func (r Record) Price() float64   { return r.price }
func (r Record) Qty() float64     { return r.qty }

// Total is price * qty
func (r Record) Total() float64 { return r.total }

// NewRecord builds a record from typed values. Text fields are trimmed.
// It reports false when a text field is empty or price/qty is not a
// finite positive number.
func NewRecord(date, category, name string, price, qty float64) (Record, bool) {
	date = strings.TrimSpace(date)
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)

	if date == "" || category == "" || name == "" {
		return Record{}, false
	}
	if !positive(price) || !positive(qty) {
		return Record{}, false
	}

	return Record{
		date:     date,
		category: category,
		name:     name,
		price:    price,
		qty:      qty,
		total:    price * qty,
	}, true
}

// ParseLine converts one raw line of the form date;category;name;price;qty.
// Blank and malformed lines both yield false; a malformed line is not an error.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Record{}, false
	}

	parts := strings.Split(line, Separator)
	if len(parts) != fieldCount {
		return Record{}, false
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	price, ok := parseDecimal(parts[3])
	if !ok {
		return Record{}, false
	}
	qty, ok := parseDecimal(parts[4])
	if !ok {
		return Record{}, false
	}

	return NewRecord(parts[0], parts[1], parts[2], price, qty)
}

// IsBlank reports whether a line is empty once surrounding whitespace is removed
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func parseDecimal(s string) (float64, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
