package bmi

// Category is the WHO adult weight classification for a BMI value.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// Classify maps a BMI to its category. Boundaries belong to the upper
// class: 18.5 is Normal, 25 is Overweight, 30 is Obese.
func Classify(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}
