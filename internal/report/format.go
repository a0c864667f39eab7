// Package report renders an estimate for people: a console summary and a
// multi-section PDF document.
package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Money formats an amount with thousands separators and two decimals.
func Money(currency string, v float64) string {
	return currency + " " + humanize.FormatFloat("#,###.##", v)
}

// Count formats a whole quantity, rounding up partial units.
func Count(v float64) string {
	return humanize.Comma(int64(math.Ceil(v)))
}

// Number formats v with thousands separators and the given decimals.
func Number(v float64, decimals int) string {
	switch decimals {
	case 0:
		return humanize.FormatFloat("#,###.", v)
	case 1:
		return humanize.FormatFloat("#,###.#", v)
	case 2:
		return humanize.FormatFloat("#,###.##", v)
	default:
		return fmt.Sprintf("%.*f", decimals, v)
	}
}

func yesNo(ok bool) string {
	if ok {
		return "Yes"
	}
	return "No"
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
