// ABOUTME: Measurement model and BMI category classification.
// ABOUTME: Computes BMI from weight/height and maps it onto fixed category bands.
package models

import (
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the storage and display format for RecordedAt.
const TimeLayout = "2006-01-02 15:04:05"

// Category is the health band a BMI value falls into.
type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

// Category thresholds. Each is the first value of the next band up.
const (
	NormalThreshold     = 18.5
	OverweightThreshold = 24.9
	ObeseThreshold      = 29.9
)

// AllCategories lists the categories from lowest to highest band.
var AllCategories = []Category{
	CategoryUnderweight, CategoryNormal, CategoryOverweight, CategoryObese,
}

// IsValidCategory checks if a string names a known category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Calculate returns weight/height² rounded to two decimal places.
func Calculate(weightKg, heightM float64) float64 {
	return round2(weightKg / (heightM * heightM))
}

// Classify maps a BMI value onto its category. All comparisons are strict,
// so a value sitting exactly on a threshold lands in the higher band.
func Classify(bmi float64) Category {
	switch {
	case bmi < NormalThreshold:
		return CategoryUnderweight
	case bmi < OverweightThreshold:
		return CategoryNormal
	case bmi < ObeseThreshold:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// Evaluate computes the rounded BMI and its category in one step.
// Callers must pass positive weight and height.
func Evaluate(weightKg, heightM float64) (float64, Category) {
	bmi := Calculate(weightKg, heightM)
	return bmi, Classify(bmi)
}

// FormatBMI renders a BMI value with the shortest exact representation,
// keeping at least one decimal ("25.0", "22.86").
func FormatBMI(bmi float64) string {
	s := strconv.FormatFloat(bmi, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// round2 rounds the exact binary value to two decimals, ties to even.
// Scaling by 100 first would round twice and push near-ties upward.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Measurement is one stored BMI submission.
// BMI and Category are fixed at creation and never recomputed.
type Measurement struct {
	ID         int64     `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Age        int       `json:"age" yaml:"age"`
	WeightKg   float64   `json:"weight_kg" yaml:"weight_kg"`
	HeightM    float64   `json:"height_m" yaml:"height_m"`
	BMI        float64   `json:"bmi" yaml:"bmi"`
	Category   Category  `json:"category" yaml:"category"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// NewMeasurement creates a Measurement with derived BMI and category,
// recorded at the current wall-clock time. ID is left for the store to assign.
func NewMeasurement(name string, age int, weightKg, heightM float64) *Measurement {
	bmi, category := Evaluate(weightKg, heightM)
	return &Measurement{
		Name:       name,
		Age:        age,
		WeightKg:   weightKg,
		HeightM:    heightM,
		BMI:        bmi,
		Category:   category,
		RecordedAt: time.Now().Truncate(time.Second),
	}
}

// WithRecordedAt sets a custom recorded_at timestamp, truncated to seconds
// since that is the stored precision.
func (m *Measurement) WithRecordedAt(t time.Time) *Measurement {
	m.RecordedAt = t.Truncate(time.Second)
	return m
}

// Point returns the history entry for this measurement.
func (m *Measurement) Point() HistoryPoint {
	return HistoryPoint{RecordedAt: m.RecordedAt, BMI: m.BMI, Category: m.Category}
}

// HistoryPoint is one charted value of a person's BMI history. Category is
// the one stored with the measurement.
type HistoryPoint struct {
	RecordedAt time.Time `json:"recorded_at"`
	BMI        float64   `json:"bmi"`
	Category   Category  `json:"category"`
}

// FormatTime formats t in the storage layout using local wall-clock time.
func FormatTime(t time.Time) string {
	return t.In(time.Local).Format(TimeLayout)
}

// ParseTime parses a stored timestamp as local wall-clock time.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}
