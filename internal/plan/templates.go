package plan

import "slices"

type goalRule struct {
	calories func(tdee int) int
	workout  Workout
	meals    map[DietaryPreference][]Meal
	macros   *Macros
}

type dietTemplate struct {
	summary    string // %d is replaced with the calorie target
	guidelines []Guideline
}

var goalRules = map[Goal]goalRule{
	LoseWeight: {
		calories: func(tdee int) int { return tdee - weightLossDeficit },
		workout: Workout{
			Summary: "Focus on a mix of strength training and cardio to burn fat while keeping muscle.",
			Sessions: []Session{
				{Name: "Strength Training", Frequency: "3 days a week", Details: "Full-body workouts with moderate weights and higher repetitions, 3 sets of 12-15."},
				{Name: "Cardio / HIIT", Frequency: "3-4 days a week", Details: "20-30 minutes of HIIT or 30-45 minutes of steady running, cycling or brisk walking."},
				{Name: "Recovery", Frequency: "1 day a week", Details: "Rest, stretching or light yoga."},
			},
		},
	},
	GainMuscle: {
		calories: func(int) int { return GainMuscleCalories },
		workout: Workout{
			Summary: "Progressive overload with a 4-day upper/lower split.",
			Sessions: []Session{
				{Name: "Day 1: Upper Body (Strength)", Frequency: "Monday", Details: "Bench press, barbell rows, overhead press, pull-ups, 4 sets of 6-8."},
				{Name: "Day 2: Lower Body (Strength)", Frequency: "Tuesday", Details: "Squats, Romanian deadlifts, leg press, calf raises, 4 sets of 6-8."},
				{Name: "Day 3: Upper Body (Hypertrophy)", Frequency: "Thursday", Details: "Incline dumbbell press, lat pulldowns, lateral raises, curls, triceps extensions, 3 sets of 10-12."},
				{Name: "Day 4: Lower Body (Hypertrophy)", Frequency: "Friday", Details: "Front squats, walking lunges, leg curls, hip thrusts, 3 sets of 10-12."},
				{Name: "Cardio", Frequency: "1-2 days a week (optional)", Details: "20-30 minutes of low-intensity cardio for heart health."},
			},
		},
		meals: map[DietaryPreference][]Meal{
			Vegetarian: {
				{Name: "Breakfast", Items: []string{"Oats cooked in milk", "Banana", "2 tbsp peanut butter"}},
				{Name: "Mid-morning", Items: []string{"Greek yogurt", "Mixed nuts", "Honey"}},
				{Name: "Lunch", Items: []string{"Brown rice", "Paneer curry", "Lentil dal", "Green salad"}},
				{Name: "Afternoon", Items: []string{"Soy or whey protein shake", "Apple"}},
				{Name: "Dinner", Items: []string{"Quinoa", "Tofu and vegetable stir-fry"}},
				{Name: "Before bed", Items: []string{"Cottage cheese", "Almonds"}},
			},
			NonVegetarian: {
				{Name: "Breakfast", Items: []string{"4 scrambled eggs", "Whole-wheat toast", "Banana"}},
				{Name: "Mid-morning", Items: []string{"Greek yogurt", "Mixed nuts", "Honey"}},
				{Name: "Lunch", Items: []string{"Brown rice", "Grilled chicken breast", "Steamed vegetables"}},
				{Name: "Afternoon", Items: []string{"Whey protein shake", "Apple"}},
				{Name: "Dinner", Items: []string{"Sweet potatoes", "Baked salmon", "Green salad"}},
				{Name: "Before bed", Items: []string{"Cottage cheese", "Almonds"}},
			},
		},
		macros: &Macros{ProteinG: 260, CarbsG: 365, FatG: 67},
	},
	ImproveEndurance: {
		calories: func(tdee int) int { return tdee },
		workout: Workout{
			Summary: "Build aerobic capacity with a cardio-first week and light strength work.",
			Sessions: []Session{
				{Name: "Cardio", Frequency: "3-4 days a week", Details: "Running, cycling or swimming for 30-60 minutes; extend one session a little each week."},
				{Name: "Intervals", Frequency: "1 of the cardio days", Details: "Tempo or interval work, e.g. 6 x 3 minutes hard with 2 minutes easy."},
				{Name: "Light Strength", Frequency: "2 days a week", Details: "Full-body circuits with bodyweight or light weights, 2-3 sets of 15."},
			},
		},
	},
	MaintainFitness: {
		calories: func(tdee int) int { return tdee },
		workout: Workout{
			Summary: "A balanced routine to maintain your current fitness level.",
			Sessions: []Session{
				{Name: "Strength Training", Frequency: "2 days a week", Details: "Full-body workouts covering push, pull and leg movements."},
				{Name: "Cardio", Frequency: "1-2 days a week", Details: "30 minutes of moderate cardio such as jogging, cycling or swimming."},
				{Name: "Mobility", Frequency: "Daily", Details: "10 minutes of stretching or yoga."},
			},
		},
	},
}

var dietTemplates = map[DietaryPreference]dietTemplate{
	Vegetarian: {
		summary: "Aim for about %d kcal a day from a balanced diet focusing on plant-based protein.",
		guidelines: []Guideline{
			{Label: "Protein Sources", Items: []string{"Lentils", "Chickpeas", "Tofu", "Paneer", "Greek yogurt"}},
			{Label: "Healthy Fats", Items: []string{"Avocado", "Nuts", "Seeds", "Olive oil"}},
			{Label: "Complex Carbs", Items: []string{"Oats", "Brown rice", "Whole-wheat bread", "Quinoa"}},
			{Label: "Fruits", Items: []string{"Berries", "Apples", "Bananas", "Oranges", "Grapes"}},
		},
	},
	NonVegetarian: {
		summary: "Aim for about %d kcal a day and include lean protein for muscle repair and growth.",
		guidelines: []Guideline{
			{Label: "Protein Sources", Items: []string{"Chicken breast", "Fish (salmon, tuna)", "Eggs", "Lean beef"}},
			{Label: "Healthy Fats", Items: []string{"Avocado", "Nuts", "Seeds", "Olive oil"}},
			{Label: "Complex Carbs", Items: []string{"Oats", "Brown rice", "Whole-wheat bread", "Sweet potatoes"}},
			{Label: "Fruits", Items: []string{"Berries", "Apples", "Bananas", "Oranges", "Grapes"}},
		},
	},
}

// The tables are shared; plans get their own copies.

func (w Workout) clone() Workout {
	w.Sessions = slices.Clone(w.Sessions)
	return w
}

func cloneGuidelines(gs []Guideline) []Guideline {
	out := make([]Guideline, len(gs))
	for i, g := range gs {
		out[i] = Guideline{Label: g.Label, Items: slices.Clone(g.Items)}
	}
	return out
}

func cloneMeals(ms []Meal) []Meal {
	out := make([]Meal, len(ms))
	for i, m := range ms {
		out[i] = Meal{Name: m.Name, Items: slices.Clone(m.Items)}
	}
	return out
}
