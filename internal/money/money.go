// Package money renders integer currency amounts and applies price rounding
// policies. Amounts are whole currency units; there are no decimals.
package money

import (
	"math"
	"strconv"
	"strings"
)

// Formatter groups thousands with Separator.
type Formatter struct {
	Separator string
}

// CLP groups thousands the way Chilean pesos are written: 1.234.567.
var CLP = Formatter{Separator: "."}

// Format renders amount with the CLP grouping.
func Format(amount int64) string {
	return CLP.Format(amount)
}

// Format renders amount with thousands grouping and no decimal part.
func (f Formatter) Format(amount int64) string {
	digits := strconv.FormatUint(absUint(amount), 10)
	if len(digits) <= 3 {
		if amount < 0 {
			return "-" + digits
		}
		return digits
	}

	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(f.Separator)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func absUint(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// RoundToNearest rounds price to the nearest multiple of unit, ties toward
// positive infinity. A zero price or a non-positive unit is returned as is.
func RoundToNearest(price, unit int64) int64 {
	if price == 0 || unit <= 0 {
		return price
	}
	return int64(math.Floor(float64(price)/float64(unit)+0.5)) * unit
}
