package bmi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ConversionError reports a string that does not spell a number.
type ConversionError struct {
	Value string
}

func (e *ConversionError) Error() string {
	return "could not convert string to float: " + quote(e.Value)
}

// TypeError reports a JSON value that cannot be a number at all.
type TypeError struct {
	Kind string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("float() argument must be a string or a real number, not '%s'", e.Kind)
}

// errIntOverflow is returned for integer literals too large for a float64.
var errIntOverflow = errors.New("int too large to convert to float")

// decimalRe matches decimal literals with optional single underscores
// between digits.
var decimalRe = regexp.MustCompile(`^[+-]?(?:\d(?:_?\d)*(?:\.(?:\d(?:_?\d)*)?)?|\.\d(?:_?\d)*)(?:[eE][+-]?\d(?:_?\d)*)?$`)

// specialRe matches infinities and NaN, case-insensitively.
var specialRe = regexp.MustCompile(`(?i)^[+-]?(?:inf|infinity|nan)$`)

// ToFloat coerces a decoded JSON value to float64. Numbers pass through,
// booleans become 1 or 0, and strings are parsed after trimming
// whitespace. Out-of-range decimal literals saturate to ±Inf or 0.
func ToFloat(v any) (float64, error) {
	switch x := v.(type) {
	case json.Number:
		return numberToFloat(x)
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		return parseFloatString(x)
	case nil:
		return 0, &TypeError{Kind: "NoneType"}
	case []any:
		return 0, &TypeError{Kind: "list"}
	case map[string]any:
		return 0, &TypeError{Kind: "dict"}
	default:
		return 0, &TypeError{Kind: fmt.Sprintf("%T", v)}
	}
}

// numberToFloat converts a JSON number literal. Integer literals have no
// negative zero, so "-0" yields +0 while "-0.0" keeps its sign.
func numberToFloat(n json.Number) (float64, error) {
	isInt := !strings.ContainsAny(n.String(), ".eE")
	f, err := strconv.ParseFloat(n.String(), 64)
	if err == nil {
		if isInt && f == 0 {
			return 0, nil
		}
		return f, nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	if isInt && math.IsInf(f, 0) {
		return 0, errIntOverflow
	}
	return f, nil
}

func parseFloatString(s string) (float64, error) {
	t := strings.TrimFunc(s, unicode.IsSpace)
	switch {
	case specialRe.MatchString(t):
		// strconv does not accept a signed NaN.
		if strings.HasSuffix(strings.ToLower(t), "nan") {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, &ConversionError{Value: s}
		}
		return f, nil
	case decimalRe.MatchString(t):
		f, err := strconv.ParseFloat(strings.ReplaceAll(t, "_", ""), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &ConversionError{Value: s}
		}
		return f, nil
	default:
		return 0, &ConversionError{Value: s}
	}
}

// quote renders s the way an interactive interpreter echoes a string:
// single quotes unless s contains a single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r != ' ':
			if r <= 0xff {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else if r <= 0xffff {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
