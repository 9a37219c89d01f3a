// Package bmi computes a Body Mass Index from a decoded JSON object.
package bmi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Input field names. Heights are in metres and weights in kilograms.
const (
	HeightKey = "altura"
	WeightKey = "peso"
)

const (
	defaultHeight = 1.0
	defaultWeight = 0.0
)

var (
	// ErrDivisionByZero is returned when the squared height is zero.
	ErrDivisionByZero = errors.New("float division by zero")
	// ErrNotFinite is returned when the quotient overflows or is NaN.
	ErrNotFinite = errors.New("bmi is not a finite number")
)

// Input is a decoded JSON object. Numbers are kept as json.Number so that
// coercion sees the literal the caller wrote.
type Input map[string]any

// Result is a successful calculation.
type Result struct {
	BMI float64
}

// Decode parses data as a single JSON object. Trailing data after the
// object is rejected.
func Decode(data []byte) (Input, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("invalid JSON: unexpected end of input")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	end := dec.InputOffset()
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON: extra data after offset %d", end)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("input must be a JSON object, got %s", jsonKind(v))
	}
	return Input(obj), nil
}

// Calculate computes weight / height² rounded to two decimal places.
// A missing height counts as 1 and a missing weight as 0. Values are not
// range-checked.
func Calculate(in Input) (Result, error) {
	height, err := field(in, HeightKey, defaultHeight)
	if err != nil {
		return Result{}, err
	}
	weight, err := field(in, WeightKey, defaultWeight)
	if err != nil {
		return Result{}, err
	}

	divisor := height * height
	if divisor == 0 {
		return Result{}, ErrDivisionByZero
	}
	v := weight / divisor
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Result{}, ErrNotFinite
	}
	return Result{BMI: Round(v, 2)}, nil
}

// Run decodes data and calculates, folding every failure into the error
// variant of Output.
func Run(data []byte) Output {
	in, err := Decode(data)
	if err != nil {
		return Failure(err)
	}
	res, err := Calculate(in)
	if err != nil {
		return Failure(err)
	}
	return Success(res)
}

// Round rounds v to the given number of decimal places using the correctly
// rounded decimal representation of v.
func Round(v float64, places int) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func field(in Input, key string, def float64) (float64, error) {
	raw, ok := in[key]
	if !ok {
		return def, nil
	}
	return ToFloat(raw)
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
