package quake

import (
	"html"
	"math/big"
	"strconv"
	"strings"
)

// isoLayout matches the millisecond UTC form browsers produce for Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Popup returns the popup HTML for a record.
func Popup(r Record) string {
	lines := []string{
		"Time: " + r.Time.UTC().Format(isoLayout),
		"Location: " + html.EscapeString(r.Place),
		"Position: (" + Round2(r.Lat()) + "," + Round2(r.Lon()) + ")",
		"Magnitude: " + strconv.FormatFloat(r.Magnitude, 'f', -1, 64),
	}
	return strings.Join(lines, "<br>")
}

// Round2 formats v with two decimals, rounding the shortest decimal form of v
// half away from zero (1.005 becomes "1.01").
func Round2(v float64) string {
	rat, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return rat.FloatString(2)
}
