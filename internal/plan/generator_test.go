package plan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProfile() Profile {
	return Profile{
		Age:               25,
		Height:            FeetInches(5, 10),
		WeightKg:          70,
		ActivityLevel:     ModeratelyActive,
		Goal:              MaintainFitness,
		DietaryPreference: NonVegetarian,
	}
}

func TestGenerate_MaintainFitnessReference(t *testing.T) {
	p, err := Generate(baseProfile())
	require.NoError(t, err)

	assert.InDelta(t, 177.8, p.HeightCm, 1e-9)
	assert.InDelta(t, 1691.25, p.BMR, 1e-9)
	assert.Equal(t, 2621, p.TDEE)
	assert.Equal(t, 2621, p.Calories)
	assert.Equal(t, MaintainFitness, p.Goal)
	assert.Equal(t, DefaultHealthWarning, p.HealthWarning)
	assert.Nil(t, p.Diet.Macros)
	assert.Empty(t, p.Diet.Meals)
	assert.Contains(t, p.Diet.Summary, "2621 kcal")
}

func TestGenerate_GainMuscleIgnoresTDEE(t *testing.T) {
	for _, level := range ActivityLevels {
		for _, weight := range []float64{45, 70, 140} {
			prof := baseProfile()
			prof.Goal = GainMuscle
			prof.ActivityLevel = level
			prof.WeightKg = weight

			p, err := Generate(prof)
			require.NoError(t, err)
			assert.Equal(t, GainMuscleCalories, p.Calories, "level=%s weight=%v", level, weight)
			require.NotNil(t, p.Diet.Macros)
			assert.Equal(t, Macros{ProteinG: 260, CarbsG: 365, FatG: 67}, *p.Diet.Macros)
			assert.Len(t, p.Diet.Meals, 6)
			assert.Len(t, p.Workout.Sessions, 5)
		}
	}
}

func TestGenerate_LoseWeightDeficit(t *testing.T) {
	prof := baseProfile()
	prof.Goal = LoseWeight
	for _, level := range ActivityLevels {
		prof.ActivityLevel = level
		p, err := Generate(prof)
		require.NoError(t, err)

		want := TDEE(BMR(prof.WeightKg, prof.Height.Cm(), prof.Age), level) - 500
		assert.Equal(t, want, p.Calories, "level=%s", level)
		assert.Equal(t, p.TDEE-500, p.Calories)
	}

	prof.ActivityLevel = Sedentary
	p, err := Generate(prof)
	require.NoError(t, err)
	assert.Equal(t, 2029, p.TDEE)
	assert.Equal(t, 1529, p.Calories)
}

func TestGenerate_ImproveEnduranceUsesTDEE(t *testing.T) {
	prof := baseProfile()
	prof.Goal = ImproveEndurance
	prof.ActivityLevel = VeryActive

	p, err := Generate(prof)
	require.NoError(t, err)
	assert.Equal(t, p.TDEE, p.Calories)
	assert.Equal(t, "Light Strength", p.Workout.Sessions[2].Name)
}

func TestGenerate_DietFollowsPreference(t *testing.T) {
	prof := baseProfile()
	prof.Goal = GainMuscle

	prof.DietaryPreference = Vegetarian
	veg, err := Generate(prof)
	require.NoError(t, err)
	prof.DietaryPreference = NonVegetarian
	nonVeg, err := Generate(prof)
	require.NoError(t, err)

	assert.Equal(t, Vegetarian, veg.Diet.Preference)
	assert.Contains(t, veg.Diet.Guidelines[0].Items, "Tofu")
	assert.Contains(t, nonVeg.Diet.Guidelines[0].Items, "Eggs")
	assert.NotEqual(t, veg.Diet.Meals, nonVeg.Diet.Meals)
	assert.Contains(t, veg.Diet.Summary, "3000 kcal")
}

func TestGenerate_UnknownActivityFallsBackToSedentary(t *testing.T) {
	prof := baseProfile()
	prof.ActivityLevel = ActivityLevel("Couch Potato")
	unknown, err := Generate(prof)
	require.NoError(t, err)

	prof.ActivityLevel = Sedentary
	sedentary, err := Generate(prof)
	require.NoError(t, err)

	assert.Equal(t, sedentary.Calories, unknown.Calories)
}

func TestGenerate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"age zero", func(p *Profile) { p.Age = 0 }},
		{"age too high", func(p *Profile) { p.Age = 121 }},
		{"no height", func(p *Profile) { p.Height = Height{} }},
		{"inches out of range", func(p *Profile) { p.Height = FeetInches(5, 12) }},
		{"feet out of range", func(p *Profile) { p.Height = FeetInches(9, 0) }},
		{"cm out of range", func(p *Profile) { p.Height = Centimeters(400) }},
		{"weight zero", func(p *Profile) { p.WeightKg = 0 }},
		{"weight too high", func(p *Profile) { p.WeightKg = 501 }},
		{"unknown goal", func(p *Profile) { p.Goal = "Get Famous" }},
		{"empty goal", func(p *Profile) { p.Goal = "" }},
		{"unknown diet", func(p *Profile) { p.DietaryPreference = "Carnivore" }},
		{"non-positive calories", func(p *Profile) {
			p.Age = 120
			p.WeightKg = 1
			p.Height = FeetInches(1, 0)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof := baseProfile()
			tt.mutate(&prof)
			_, err := Generate(prof)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestGenerate_CaloriesPositiveForAcceptedProfiles(t *testing.T) {
	for _, goal := range Goals {
		for _, level := range ActivityLevels {
			for _, age := range []int{1, 18, 40, 80, 120} {
				for _, weight := range []float64{1, 20, 60, 120, 500} {
					for _, h := range []Height{FeetInches(2, 0), FeetInches(5, 6), Centimeters(190)} {
						p, err := Generate(Profile{
							Age: age, Height: h, WeightKg: weight,
							ActivityLevel: level, Goal: goal, DietaryPreference: Vegetarian,
						})
						if err != nil {
							require.ErrorIs(t, err, ErrInvalidInput)
							continue
						}
						assert.Positive(t, p.Calories)
					}
				}
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	prof := baseProfile()
	prof.Goal = GainMuscle
	prof.PhysicalInjury = "knee pain"

	a, err := Generate(prof)
	require.NoError(t, err)
	b, err := Generate(prof)
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestGenerate_PlansDoNotShareTemplates(t *testing.T) {
	prof := baseProfile()
	prof.Goal = GainMuscle

	first, err := Generate(prof)
	require.NoError(t, err)
	first.Workout.Sessions[0].Name = "changed"
	first.Diet.Meals[0].Items[0] = "changed"
	first.Diet.Guidelines[0].Items[0] = "changed"
	first.Diet.Macros.ProteinG = 1

	second, err := Generate(prof)
	require.NoError(t, err)
	assert.Equal(t, "Day 1: Upper Body (Strength)", second.Workout.Sessions[0].Name)
	assert.NotEqual(t, "changed", second.Diet.Meals[0].Items[0])
	assert.NotEqual(t, "changed", second.Diet.Guidelines[0].Items[0])
	assert.Equal(t, 260, second.Diet.Macros.ProteinG)
}

func TestHealthWarning(t *testing.T) {
	assert.Equal(t, DefaultHealthWarning, HealthWarning("", ""))

	w := HealthWarning("torn ACL", "")
	assert.Contains(t, w, "torn ACL")
	assert.Contains(t, w, "Physical Injury")
	assert.NotContains(t, w, "Medical Illness")
	assert.Contains(t, w, "consult a qualified professional")

	w = HealthWarning("", "type 2 diabetes")
	assert.Contains(t, w, "type 2 diabetes")
	assert.NotContains(t, w, "Physical Injury")

	w = HealthWarning("shoulder injury", "high blood pressure")
	assert.Contains(t, w, "shoulder injury")
	assert.Contains(t, w, "high blood pressure")
}

func TestHealthWarning_KeepsTextVerbatim(t *testing.T) {
	for _, injury := range []string{" knee pain ", "knee\n", "   "} {
		w := HealthWarning(injury, "")
		assert.NotEqual(t, DefaultHealthWarning, w, "injury=%q", injury)
		assert.Contains(t, w, "You reported having "+injury+".", "injury=%q", injury)
	}

	w := HealthWarning("", "\tasthma")
	assert.Contains(t, w, "You reported having \tasthma.")
}
