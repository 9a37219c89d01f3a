package bmi

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Result keys accepted by Encoder.
const (
	KeyBMI = "bmi"
	KeyIMC = "imc"
)

// Output is the single record printed per invocation. Exactly one of BMI
// and Error is set.
type Output struct {
	BMI   *float64
	Error string
}

// Success wraps a calculation result.
func Success(r Result) Output {
	v := r.BMI
	return Output{BMI: &v}
}

// Failure wraps err. A nil err yields a generic message so the record is
// never empty.
func Failure(err error) Output {
	if err == nil {
		return Output{Error: "unknown error"}
	}
	return Output{Error: err.Error()}
}

// OK reports whether o is the success variant.
func (o Output) OK() bool {
	return o.BMI != nil
}

// Encoder writes Output records as single JSON lines of the form
// {"bmi": 21.6} or {"error": "..."}.
type Encoder struct {
	w         io.Writer
	resultKey string
}

// NewEncoder returns an Encoder writing to w under the "bmi" key.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, resultKey: KeyBMI}
}

// SetResultKey changes the key used for successful results. An empty key
// restores the default.
func (e *Encoder) SetResultKey(key string) {
	if key == "" {
		key = KeyBMI
	}
	e.resultKey = key
}

// Encode writes o followed by a newline.
func (e *Encoder) Encode(o Output) error {
	var line string
	if o.OK() {
		line = fmt.Sprintf("{%s: %s}\n", quoteJSON(e.resultKey), FormatFloat(*o.BMI))
	} else {
		line = fmt.Sprintf("{%s: %s}\n", quoteJSON("error"), quoteJSON(o.Error))
	}
	_, err := io.WriteString(e.w, line)
	return err
}

// FormatFloat renders f in shortest round-trip form, always with a decimal
// point or exponent: 70.0, 21.6, 1e-05, 1e+16.
func FormatFloat(f float64) string {
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.LastIndexByte(exp, 'e')
	if i < 0 {
		return exp
	}
	n, err := strconv.Atoi(exp[i+1:])
	if err != nil || n < -4 || n >= 16 {
		return exp
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// quoteJSON quotes s as a JSON string using only ASCII; everything outside
// it is written as \u escapes.
func quoteJSON(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7f && r <= 0xffff):
				fmt.Fprintf(&b, `\u%04x`, r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
