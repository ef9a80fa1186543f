package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maleProfile() Profile {
	return Profile{
		UserID:        "u1",
		Age:           30,
		WeightKg:      70,
		HeightCm:      175,
		Gender:        GenderMale,
		ActivityLevel: ActivitySedentary,
		Goal:          GoalMaintainWeight,
	}
}

func TestMaleBMRAndTarget(t *testing.T) {
	p := maleProfile()

	want := 88.362 + 13.397*70 + 4.799*175 - 5.677*30
	assert.InDelta(t, want, p.BMR(), 1e-9)
	assert.InDelta(t, want*1.2, p.TDEE(), 1e-9)

	// TDEE truncates toward zero.
	assert.Equal(t, 2034, p.DailyCalorieTarget())
}

func TestFemaleBMRAndTarget(t *testing.T) {
	p := Profile{
		Age:           25,
		WeightKg:      60,
		HeightCm:      165,
		Gender:        GenderFemale,
		ActivityLevel: ActivityModerate,
		Goal:          GoalLoseWeight,
	}

	bmr := 447.593 + 9.247*60 + 3.098*165 - 4.330*25
	require.InDelta(t, bmr, p.BMR(), 1e-9)
	assert.Equal(t, int(bmr*1.55-500), p.DailyCalorieTarget())
}

func TestGoalAdjustments(t *testing.T) {
	p := maleProfile()
	maintain := p.DailyCalorieTarget()

	p.Goal = GoalLoseWeight
	assert.Equal(t, int(p.TDEE()-500), p.DailyCalorieTarget())
	assert.Less(t, p.DailyCalorieTarget(), maintain)

	p.Goal = GoalGainWeight
	gain := p.DailyCalorieTarget()
	p.Goal = GoalBuildMuscle
	assert.Equal(t, gain, p.DailyCalorieTarget())
	assert.Greater(t, gain, maintain)
}

func TestActivityMultipliers(t *testing.T) {
	cases := map[ActivityLevel]float64{
		ActivitySedentary:  1.2,
		ActivityLight:      1.375,
		ActivityModerate:   1.55,
		ActivityActive:     1.725,
		ActivityVeryActive: 1.9,
	}
	for level, want := range cases {
		assert.Equal(t, want, level.Multiplier())
	}
}

func TestBMICategories(t *testing.T) {
	cases := []struct {
		weight float64
		want   string
	}{
		{50, "underweight"}, // BMI 16.3
		{70, "normal"},      // BMI 22.9
		{80, "overweight"},  // BMI 26.1
		{95, "obese"},       // BMI 31.0
	}
	for _, tc := range cases {
		p := Profile{WeightKg: tc.weight, HeightCm: 175}
		assert.Equal(t, tc.want, p.BMICategory(), "weight %v", tc.weight)
	}
}

func TestValidate(t *testing.T) {
	p := maleProfile()
	require.NoError(t, p.Validate())

	p.Age = 0
	assert.Error(t, p.Validate())

	p = maleProfile()
	p.WeightKg = -1
	assert.Error(t, p.Validate())

	p = maleProfile()
	p.HeightCm = 0
	assert.Error(t, p.Validate())
}
