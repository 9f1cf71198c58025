package plan

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeight_Cm(t *testing.T) {
	assert.InDelta(t, 177.8, FeetInches(5, 10).Cm(), 1e-9)
	assert.InDelta(t, 30.48, FeetInches(1, 0).Cm(), 1e-9)
	assert.InDelta(t, 2.54, FeetInches(0, 1).Cm(), 1e-9)
	assert.Equal(t, 181.0, Centimeters(181).Cm())
	assert.Equal(t, 160.0, Height{Feet: 6, Centimeters: 160}.Cm())
}

func TestParse(t *testing.T) {
	for _, in := range []string{"Lose Weight", "LoseWeight", "lose_weight", " lose-weight "} {
		g, err := ParseGoal(in)
		require.NoError(t, err, in)
		assert.Equal(t, LoseWeight, g)
	}

	a, err := ParseActivityLevel("superactive")
	require.NoError(t, err)
	assert.Equal(t, SuperActive, a)

	d, err := ParseDietaryPreference("NonVegetarian")
	require.NoError(t, err)
	assert.Equal(t, NonVegetarian, d)

	_, err = ParseGoal("Select Goal")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseActivityLevel("")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ParseDietaryPreference("vegan")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfile_UnmarshalJSON(t *testing.T) {
	raw := `{
		"age": 30,
		"height": {"feet": 6, "inches": 1},
		"weight_kg": 82.5,
		"activity_level": "VeryActive",
		"goal": "improve_endurance",
		"dietary_preference": "non vegetarian",
		"medical_illness": "asthma"
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, VeryActive, p.ActivityLevel)
	assert.Equal(t, ImproveEndurance, p.Goal)
	assert.Equal(t, NonVegetarian, p.DietaryPreference)
	assert.Equal(t, FeetInches(6, 1), p.Height)
	require.NoError(t, p.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"goal":"Get Famous","activity_level":"Lazy"}`), &p))
	assert.Equal(t, Goal("Get Famous"), p.Goal)
	assert.Equal(t, ActivityLevel("Lazy"), p.ActivityLevel)
	assert.ErrorIs(t, p.Validate(), ErrInvalidInput)
}

func ExampleGenerate() {
	p, err := Generate(Profile{
		Age:               25,
		Height:            FeetInches(5, 10),
		WeightKg:          70,
		ActivityLevel:     ModeratelyActive,
		Goal:              GainMuscle,
		DietaryPreference: Vegetarian,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.TDEE, p.Calories, p.Diet.Macros.ProteinG)
	// Output: 2621 3000 260
}
