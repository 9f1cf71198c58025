// Package plan turns a health profile into a rule-based diet and workout
// recommendation. Everything here is pure: no I/O, no shared mutable state.
package plan

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for profile fields outside their accepted range
// or enum values the rule set does not know.
var ErrInvalidInput = errors.New("invalid input")

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "Sedentary"
	LightlyActive    ActivityLevel = "Lightly Active"
	ModeratelyActive ActivityLevel = "Moderately Active"
	VeryActive       ActivityLevel = "Very Active"
	SuperActive      ActivityLevel = "Super Active"
)

type Goal string

const (
	LoseWeight       Goal = "Lose Weight"
	GainMuscle       Goal = "Gain Muscle"
	ImproveEndurance Goal = "Improve Endurance"
	MaintainFitness  Goal = "Maintain Fitness"
)

type DietaryPreference string

const (
	Vegetarian    DietaryPreference = "Vegetarian"
	NonVegetarian DietaryPreference = "Non-Vegetarian"
)

var (
	ActivityLevels     = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, SuperActive}
	Goals              = []Goal{LoseWeight, GainMuscle, ImproveEndurance, MaintainFitness}
	DietaryPreferences = []DietaryPreference{Vegetarian, NonVegetarian}
)

// Height is either feet plus inches or centimeters. Centimeters wins when set.
type Height struct {
	Feet        int     `json:"feet,omitempty"`
	Inches      int     `json:"inches,omitempty"`
	Centimeters float64 `json:"cm,omitempty"`
}

func FeetInches(feet, inches int) Height {
	return Height{Feet: feet, Inches: inches}
}

func Centimeters(cm float64) Height {
	return Height{Centimeters: cm}
}

// Cm converts the height to centimeters.
func (h Height) Cm() float64 {
	if h.Centimeters != 0 {
		return h.Centimeters
	}
	return float64(h.Feet)*30.48 + float64(h.Inches)*2.54
}

func (h Height) validate() error {
	if h.Centimeters != 0 {
		if h.Centimeters < 30 || h.Centimeters > 275 {
			return fmt.Errorf("%w: height %.1f cm out of range 30-275", ErrInvalidInput, h.Centimeters)
		}
		return nil
	}
	if h.Feet < 0 || h.Feet > 8 {
		return fmt.Errorf("%w: height feet %d out of range 0-8", ErrInvalidInput, h.Feet)
	}
	if h.Inches < 0 || h.Inches > 11 {
		return fmt.Errorf("%w: height inches %d out of range 0-11", ErrInvalidInput, h.Inches)
	}
	if h.Feet == 0 && h.Inches == 0 {
		return fmt.Errorf("%w: height is required", ErrInvalidInput)
	}
	return nil
}

type Profile struct {
	Age               int               `json:"age"`
	Height            Height            `json:"height"`
	WeightKg          float64           `json:"weight_kg"`
	ActivityLevel     ActivityLevel     `json:"activity_level"`
	Goal              Goal              `json:"goal"`
	DietaryPreference DietaryPreference `json:"dietary_preference"`
	PhysicalInjury    string            `json:"physical_injury,omitempty"`
	MedicalIllness    string            `json:"medical_illness,omitempty"`
}

// Validate checks ranges and enum membership. Activity level is not checked:
// an unknown level falls back to the sedentary coefficient.
func (p Profile) Validate() error {
	if p.Age < 1 || p.Age > 120 {
		return fmt.Errorf("%w: age %d out of range 1-120", ErrInvalidInput, p.Age)
	}
	if err := p.Height.validate(); err != nil {
		return err
	}
	if p.WeightKg < 1 || p.WeightKg > 500 {
		return fmt.Errorf("%w: weight %.1f kg out of range 1-500", ErrInvalidInput, p.WeightKg)
	}
	if _, ok := goalRules[p.Goal]; !ok {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, p.Goal)
	}
	if _, ok := dietTemplates[p.DietaryPreference]; !ok {
		return fmt.Errorf("%w: unknown dietary preference %q", ErrInvalidInput, p.DietaryPreference)
	}
	return nil
}

func ParseActivityLevel(s string) (ActivityLevel, error) {
	for _, v := range ActivityLevels {
		if normalize(s) == normalize(string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, s)
}

func ParseGoal(s string) (Goal, error) {
	for _, v := range Goals {
		if normalize(s) == normalize(string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, s)
}

func ParseDietaryPreference(s string) (DietaryPreference, error) {
	for _, v := range DietaryPreferences {
		if normalize(s) == normalize(string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown dietary preference %q", ErrInvalidInput, s)
}

// normalize folds case and drops separators so "Lose Weight", "LoseWeight"
// and "lose_weight" compare equal.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// UnmarshalText accepts any spelling ParseActivityLevel knows. Unknown values
// are kept as-is and resolved by the coefficient fallback.
func (a *ActivityLevel) UnmarshalText(b []byte) error {
	if v, err := ParseActivityLevel(string(b)); err == nil {
		*a = v
		return nil
	}
	*a = ActivityLevel(b)
	return nil
}

// UnmarshalText keeps unknown values so Validate reports them as ErrInvalidInput.
func (g *Goal) UnmarshalText(b []byte) error {
	if v, err := ParseGoal(string(b)); err == nil {
		*g = v
		return nil
	}
	*g = Goal(b)
	return nil
}

func (d *DietaryPreference) UnmarshalText(b []byte) error {
	if v, err := ParseDietaryPreference(string(b)); err == nil {
		*d = v
		return nil
	}
	*d = DietaryPreference(b)
	return nil
}
