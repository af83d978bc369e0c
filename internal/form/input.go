// ABOUTME: Parsing and validation of raw BMI form fields.
// ABOUTME: Turns four text inputs into a typed Input or a single input error.
package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fields holds the raw text of the four form inputs.
type Fields struct {
	Name   string
	Age    string
	Weight string
	Height string
}

// Input is a validated form submission.
type Input struct {
	Name     string
	Age      int
	WeightKg float64
	HeightM  float64
}

// ParseInput validates every field before anything else happens.
// All failures wrap ErrInvalidInput; the wrapped reason is for logs only.
func ParseInput(f Fields) (Input, error) {
	in := Input{Name: strings.TrimSpace(f.Name)}

	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return Input{}, fmt.Errorf("%w: age %q is not an integer", ErrInvalidInput, f.Age)
	}
	in.Age = age

	if in.WeightKg, err = parseReal(f.Weight); err != nil {
		return Input{}, fmt.Errorf("%w: weight: %v", ErrInvalidInput, err)
	}
	if in.HeightM, err = parseReal(f.Height); err != nil {
		return Input{}, fmt.Errorf("%w: height: %v", ErrInvalidInput, err)
	}

	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate checks the range constraints on an already-typed Input.
func (in Input) Validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidInput)
	case in.Age <= 0:
		return fmt.Errorf("%w: age must be positive", ErrInvalidInput)
	}
	return ValidateBody(in.WeightKg, in.HeightM)
}

// ValidateBody checks that weight and height are finite and positive.
func ValidateBody(weightKg, heightM float64) error {
	switch {
	case !(weightKg > 0) || math.IsInf(weightKg, 0):
		return fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	case !(heightM > 0) || math.IsInf(heightM, 0):
		return fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	return nil
}

func parseReal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
