package plan

import (
	"fmt"
	"strings"
)

const (
	DefaultHealthWarning = "No specific health concerns reported. Please proceed with your plan as outlined."

	// GainMuscleCalories is the fixed target for the muscle gain rule. It does
	// not depend on TDEE.
	GainMuscleCalories = 3000

	weightLossDeficit = 500
)

var activityCoefficients = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	SuperActive:      1.9,
}

type Session struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Details   string `json:"details"`
}

type Workout struct {
	Summary  string    `json:"summary"`
	Sessions []Session `json:"sessions"`
}

type Guideline struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

type Meal struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

type Diet struct {
	Preference DietaryPreference `json:"preference"`
	Summary    string            `json:"summary"`
	Guidelines []Guideline       `json:"guidelines"`
	Meals      []Meal            `json:"meals,omitempty"`
	Macros     *Macros           `json:"macros,omitempty"`
}

// Plan is the recommendation handed to the presentation layer. All text is
// plain; formatting is left to the caller.
type Plan struct {
	Goal          Goal    `json:"goal"`
	Calories      int     `json:"calories"`
	HeightCm      float64 `json:"height_cm"`
	BMR           float64 `json:"bmr"`
	TDEE          int     `json:"tdee"`
	Workout       Workout `json:"workout_plan"`
	Diet          Diet    `json:"diet_plan"`
	HealthWarning string  `json:"health_warning"`
}

// BMR is the Mifflin-St Jeor estimate with the male constant. The profile has
// no sex field, so the female variant is never applied.
func BMR(weightKg, heightCm float64, age int) float64 {
	return 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
}

// ActivityCoefficient returns the TDEE multiplier for level, or the sedentary
// multiplier when the level is not recognised.
func ActivityCoefficient(level ActivityLevel) float64 {
	if c, ok := activityCoefficients[level]; ok {
		return c
	}
	return activityCoefficients[Sedentary]
}

// TDEE truncates toward zero.
func TDEE(bmr float64, level ActivityLevel) int {
	return int(bmr * ActivityCoefficient(level))
}

// Generate maps a profile to a plan. It is safe for concurrent use and the
// same profile always yields an identical plan.
func Generate(p Profile) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}

	heightCm := p.Height.Cm()
	bmr := BMR(p.WeightKg, heightCm, p.Age)
	tdee := TDEE(bmr, p.ActivityLevel)

	rule := goalRules[p.Goal]
	calories := rule.calories(tdee)
	if calories <= 0 {
		return Plan{}, fmt.Errorf("%w: profile yields a non-positive calorie target (%d kcal)", ErrInvalidInput, calories)
	}

	return Plan{
		Goal:          p.Goal,
		Calories:      calories,
		HeightCm:      heightCm,
		BMR:           bmr,
		TDEE:          tdee,
		Workout:       rule.workout.clone(),
		Diet:          buildDiet(p.DietaryPreference, calories, rule),
		HealthWarning: HealthWarning(p.PhysicalInjury, p.MedicalIllness),
	}, nil
}

func buildDiet(pref DietaryPreference, calories int, rule goalRule) Diet {
	tmpl := dietTemplates[pref]
	d := Diet{
		Preference: pref,
		Summary:    fmt.Sprintf(tmpl.summary, calories),
		Guidelines: cloneGuidelines(tmpl.guidelines),
	}
	if meals, ok := rule.meals[pref]; ok {
		d.Meals = cloneMeals(meals)
	}
	if rule.macros != nil {
		m := *rule.macros
		d.Macros = &m
	}
	return d
}

// HealthWarning builds the caution text for the reported conditions. Any
// non-empty string counts as reported and is quoted exactly as given.
func HealthWarning(injury, illness string) string {
	if injury == "" && illness == "" {
		return DefaultHealthWarning
	}

	var b strings.Builder
	b.WriteString("Important Health Warning\n\n")
	b.WriteString("Your health plan has been generated based on the information provided, but your reported conditions require caution.\n\n")
	if injury != "" {
		fmt.Fprintf(&b, "- Physical Injury: You reported having %s. Please consult a medical professional or physical therapist before starting any new exercise routine. Avoid exercises that cause pain or discomfort.\n", injury)
	}
	if illness != "" {
		fmt.Fprintf(&b, "- Medical Illness: You reported having %s. It is crucial to consult your doctor before making any significant changes to your diet or exercise routine.\n", illness)
	}
	b.WriteString("\nAlways listen to your body and consult a qualified professional before starting this plan.")
	return b.String()
}
