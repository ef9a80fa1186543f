package domain

import (
	"errors"
	"math"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	default:
		return 1.2
	}
}

type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalMaintainWeight Goal = "maintain_weight"
	GoalGainWeight     Goal = "gain_weight"
	GoalBuildMuscle    Goal = "build_muscle"
)

type Profile struct {
	UserID              string        `json:"userId"`
	Age                 int           `json:"age"`
	WeightKg            float64       `json:"weightKg"`
	HeightCm            float64       `json:"heightCm"`
	Gender              Gender        `json:"gender"`
	ActivityLevel       ActivityLevel `json:"activityLevel"`
	Goal                Goal          `json:"goal"`
	DietaryRestrictions []string      `json:"dietaryRestrictions"`
	Allergies           []string      `json:"allergies"`
}

func (p Profile) Validate() error {
	if p.Age <= 0 {
		return errors.New("age must be positive")
	}
	if p.WeightKg <= 0 {
		return errors.New("weight must be positive")
	}
	if p.HeightCm <= 0 {
		return errors.New("height must be positive")
	}
	return nil
}

// BMR is the Harris-Benedict resting energy estimate.
func (p Profile) BMR() float64 {
	if p.Gender == GenderMale {
		return 88.362 + 13.397*p.WeightKg + 4.799*p.HeightCm - 5.677*float64(p.Age)
	}
	return 447.593 + 9.247*p.WeightKg + 3.098*p.HeightCm - 4.330*float64(p.Age)
}

func (p Profile) TDEE() float64 {
	return p.BMR() * p.ActivityLevel.Multiplier()
}

// DailyCalorieTarget adjusts TDEE for the goal and truncates toward zero.
func (p Profile) DailyCalorieTarget() int {
	tdee := p.TDEE()
	switch p.Goal {
	case GoalLoseWeight:
		tdee -= 500
	case GoalGainWeight, GoalBuildMuscle:
		tdee += 300
	}
	return int(tdee)
}

func (p Profile) BMI() float64 {
	m := p.HeightCm / 100
	return p.WeightKg / (m * m)
}

func (p Profile) BMICategory() string {
	bmi := p.BMI()
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// RoundedBMI is the one-decimal display value.
func (p Profile) RoundedBMI() float64 {
	return math.Round(p.BMI()*10) / 10
}
