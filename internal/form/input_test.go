// ABOUTME: Tests for raw form field parsing.
// ABOUTME: Covers trimming, integer/real parsing, and positivity checks.
package form

import (
	"errors"
	"math"
	"testing"
)

func TestParseInputValid(t *testing.T) {
	in, err := ParseInput(Fields{Name: " Ada ", Age: " 36 ", Weight: "70.5", Height: " 1.75"})
	if err != nil {
		t.Fatalf("ParseInput failed: %v", err)
	}
	if in.Name != "Ada" || in.Age != 36 || in.WeightKg != 70.5 || in.HeightM != 1.75 {
		t.Errorf("ParseInput = %+v", in)
	}
}

func TestParseInputInvalid(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
	}{
		{"all empty", Fields{}},
		{"blank name", Fields{Name: "\t", Age: "30", Weight: "70", Height: "1.75"}},
		{"age words", Fields{Name: "Ada", Age: "thirty", Weight: "70", Height: "1.75"}},
		{"age zero", Fields{Name: "Ada", Age: "0", Weight: "70", Height: "1.75"}},
		{"weight negative", Fields{Name: "Ada", Age: "30", Weight: "-70", Height: "1.75"}},
		{"height zero", Fields{Name: "Ada", Age: "30", Weight: "70", Height: "0"}},
		{"height text", Fields{Name: "Ada", Age: "30", Weight: "70", Height: "tall"}},
		{"weight overflow", Fields{Name: "Ada", Age: "30", Weight: "1e400", Height: "1.75"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInput(tt.fields)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseInput(%+v) error = %v, want ErrInvalidInput", tt.fields, err)
			}
		})
	}
}

func TestInputValidate(t *testing.T) {
	good := Input{Name: "Ada", Age: 36, WeightKg: 70, HeightM: 1.75}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate(%+v) = %v", good, err)
	}

	bad := []Input{
		{Name: "", Age: 36, WeightKg: 70, HeightM: 1.75},
		{Name: "Ada", Age: 0, WeightKg: 70, HeightM: 1.75},
		{Name: "Ada", Age: 36, WeightKg: 0, HeightM: 1.75},
		{Name: "Ada", Age: 36, WeightKg: 70, HeightM: -1},
	}
	for _, in := range bad {
		if err := in.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestValidateBody(t *testing.T) {
	if err := ValidateBody(70, 1.75); err != nil {
		t.Errorf("ValidateBody(70, 1.75) = %v", err)
	}

	bad := []struct {
		weight float64
		height float64
	}{
		{0, 1.75},
		{-70, 1.75},
		{70, 0},
		{70, math.Inf(1)},
		{math.NaN(), 1.75},
	}
	for _, b := range bad {
		if err := ValidateBody(b.weight, b.height); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ValidateBody(%v, %v) = %v, want ErrInvalidInput", b.weight, b.height, err)
		}
	}
}
