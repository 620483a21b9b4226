package arweave

import (
	"fmt"
	"math/big"
	"strings"
)

// winstonPerAR is 10^12.
var winstonPerAR = new(big.Int).Exp(big.NewInt(10), big.NewInt(12), nil)

// WinstonToAR converts an integer winston amount to a decimal AR string
// with trailing zeros trimmed ("1500000000000" -> "1.5").
func WinstonToAR(winston string) (string, error) {
	w, ok := new(big.Int).SetString(strings.TrimSpace(winston), 10)
	if !ok {
		return "", fmt.Errorf("invalid winston amount %q", winston)
	}
	return trimDecimal(new(big.Rat).SetFrac(w, winstonPerAR).FloatString(12)), nil
}

// ARToWinston converts a decimal AR amount to winston. Digits beyond
// 12 decimal places are rejected.
func ARToWinston(ar string) (string, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(ar))
	if !ok {
		return "", fmt.Errorf("invalid AR amount %q", ar)
	}
	r.Mul(r, new(big.Rat).SetInt(winstonPerAR))
	if !r.IsInt() {
		return "", fmt.Errorf("AR amount %q has more than 12 decimal places", ar)
	}
	return r.Num().String(), nil
}

// formatAmount renders a GraphQL quantity.ar value for display.
// Non-positive or unparseable amounts render as "0 AR".
func formatAmount(ar string) (string, bool) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(ar))
	if !ok || r.Sign() <= 0 {
		return "0 AR", false
	}
	return trimDecimal(r.FloatString(12)) + " AR", true
}

func trimDecimal(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
