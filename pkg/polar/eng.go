package polar

import (
	"math"
	"strconv"
)

const siPrefixes = "yzafpnμm kMGTPEZY"

// EngString formats x in engineering notation with an SI prefix and three
// significant digits: 1e4 -> "10k", 1.52e5 -> "152k", 1e6 -> "1M".
func EngString(x float64) string {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', 3, 64)
	}
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	exp := int(math.Floor(math.Log10(x)))
	exp3 := exp - ((exp%3)+3)%3
	x3 := x / math.Pow(10, float64(exp3))
	if r, _ := strconv.ParseFloat(strconv.FormatFloat(x3, 'g', 3, 64), 64); r >= 1000 {
		// 999.6 rounds to 1000; move up one prefix.
		exp3 += 3
		x3 = r / 1000
	}

	var suffix string
	switch {
	case exp3 == 0:
	case exp3 >= -24 && exp3 <= 24:
		suffix = string([]rune(siPrefixes)[exp3/3+8])
	default:
		suffix = "e" + strconv.Itoa(exp3)
	}
	return sign + strconv.FormatFloat(x3, 'g', 3, 64) + suffix
}
