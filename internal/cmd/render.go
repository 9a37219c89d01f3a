package cmd

import (
	"fmt"
	"io"
	"strconv"

	"imc/internal/bmi"
	"imc/internal/config"
	"imc/internal/termstyle"
)

func render(w io.Writer, format, resultKey string, out bmi.Output) error {
	if format == config.FormatText {
		return renderText(w, out)
	}
	enc := bmi.NewEncoder(w)
	enc.SetResultKey(resultKey)
	return enc.Encode(out)
}

// renderText prints a human-readable line, e.g. "● BMI 21.60 (Normal)".
func renderText(w io.Writer, out bmi.Output) error {
	if !out.OK() {
		_, err := fmt.Fprintf(w, "%s %s\n", termstyle.RedX(), out.Error)
		return err
	}
	c := bmi.Classify(*out.BMI)
	value := strconv.FormatFloat(*out.BMI, 'f', 2, 64)
	_, err := fmt.Fprintf(w, "%s BMI %s %s\n", categoryDot(c), termstyle.Bold(value), termstyle.Dim("("+string(c)+")"))
	return err
}

func categoryDot(c bmi.Category) string {
	switch c {
	case bmi.Normal:
		return termstyle.GreenDot()
	case bmi.Obese:
		return termstyle.RedDot()
	default:
		return termstyle.YellowDot()
	}
}
