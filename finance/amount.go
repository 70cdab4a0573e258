package finance

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a minor-unit amount as a grouped decimal string,
// e.g. 1234567 -> "12,345.67".
func FormatAmount(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	out := amountPrinter.Sprintf("%d.%02d", minor/100, minor%100)
	if neg {
		return "-" + out
	}
	return out
}

// ParseAmount converts a decimal string like "12.34" or "12" into minor
// units. At most two fraction digits are accepted.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if whole == "" {
		whole = "0"
	}
	// Both parts must be bare digits; ParseInt alone would let a stray
	// sign through, e.g. "12.-3".
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents int64
	switch len(frac) {
	case 0:
	case 1:
		cents = int64(frac[0]-'0') * 10
	case 2:
		cents = int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	default:
		return 0, fmt.Errorf("invalid amount %q: at most two fraction digits", s)
	}
	minor := units*100 + cents
	if neg {
		minor = -minor
	}
	return minor, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
