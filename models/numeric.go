// ABOUTME: Best-effort conversion of loosely typed input into exact decimals
// ABOUTME: Uses inf.Dec so percentages and currency never pass through binary floats

package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/inf.v0"
)

// Coerce converts value into a decimal. A nil value yields fallback; any value
// that cannot be converted exactly (non-numeric text, NaN, bools, collections)
// also yields fallback.
func Coerce(value interface{}, fallback int64) *inf.Dec {
	if value == nil {
		return inf.NewDec(fallback, 0)
	}
	if d, ok := toDecimal(value); ok {
		return d
	}
	return inf.NewDec(fallback, 0)
}

func toDecimal(value interface{}) (*inf.Dec, bool) {
	switch v := value.(type) {
	case *inf.Dec:
		if v == nil {
			return nil, false
		}
		return new(inf.Dec).Set(v), true
	case json.Number:
		return parseDecimal(v.String())
	case string:
		return parseDecimal(v)
	case int:
		return inf.NewDec(int64(v), 0), true
	case int8:
		return inf.NewDec(int64(v), 0), true
	case int16:
		return inf.NewDec(int64(v), 0), true
	case int32:
		return inf.NewDec(int64(v), 0), true
	case int64:
		return inf.NewDec(v, 0), true
	case uint8:
		return inf.NewDec(int64(v), 0), true
	case uint16:
		return inf.NewDec(int64(v), 0), true
	case uint32:
		return inf.NewDec(int64(v), 0), true
	case uint:
		return parseDecimal(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return parseDecimal(strconv.FormatUint(v, 10))
	case float32:
		return floatDecimal(float64(v), 32)
	case float64:
		return floatDecimal(v, 64)
	default:
		return nil, false
	}
}

func floatDecimal(f float64, bits int) (*inf.Dec, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return parseDecimal(strconv.FormatFloat(f, 'f', -1, bits))
}

// maxDecimalScale bounds the scale a parsed value may carry in either
// direction. Values outside it are treated as non-numeric.
const maxDecimalScale = 1000

// parseDecimal accepts [+-]digits[.digits][(e|E)[+-]digits] with surrounding
// whitespace. inf.Dec has no exponent syntax, so the exponent is folded into
// the scale.
func parseDecimal(s string) (*inf.Dec, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	mantissa, exponent := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return nil, false
		}
		mantissa, exponent = s[:i], exp
	}

	if !validMantissa(mantissa) {
		return nil, false
	}

	d, ok := new(inf.Dec).SetString(mantissa)
	if !ok {
		return nil, false
	}
	if d.Sign() == 0 {
		return new(inf.Dec), true
	}
	scale := int64(d.Scale()) - int64(exponent)
	if scale > maxDecimalScale || scale < -maxDecimalScale {
		return nil, false
	}
	d.SetScale(inf.Scale(scale))
	return d, true
}

func validMantissa(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// decimalText renders a decimal without forcing a scale, so "20" stays "20"
// and "20.50" stays "20.50". Negative scales are expanded to plain integers.
func decimalText(d *inf.Dec) string {
	if d.Scale() < 0 {
		return new(inf.Dec).Round(d, 0, inf.RoundDown).String()
	}
	return d.String()
}
