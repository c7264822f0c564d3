package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jaykaran24/fitbot/models"
)

func completeProfile() models.Profile {
	return models.Profile{
		Weight:        70,
		Height:        175,
		Age:           25,
		Gender:        "male",
		ActivityLevel: "moderatelyActive",
	}
}

func TestFitBot_Greeting(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("Hello there", models.Profile{})
	assert.True(t, matched)
	assert.Contains(t, reply, "Fit Bot")
}

func TestFitBot_BMI(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("what is my bmi?", completeProfile())
	assert.True(t, matched)
	assert.Contains(t, reply, "22.9")
	assert.Contains(t, reply, "normal")
	assert.Contains(t, reply, "Maintain current healthy weight")
}

func TestFitBot_BMI_MissingData(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("calculate my bmi", models.Profile{Weight: 70})
	assert.True(t, matched)
	assert.Contains(t, reply, "weight (in kg) and height (in cm)")
}

func TestFitBot_NutritionAdvice(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("give me nutrition advice", completeProfile())
	assert.True(t, matched)
	assert.Contains(t, reply, "Daily calorie needs: 2594 calories")
	assert.Contains(t, reply, "Protein: 112g per day")
	assert.Contains(t, reply, "BMI: 22.9 (normal)")
}

func TestFitBot_NutritionAdvice_IncompleteProfile(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("diet tips please", models.Profile{Weight: 70, Height: 175})
	assert.True(t, matched)
	assert.Contains(t, reply, "complete profile")
}

func TestFitBot_ActivityLevels(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("explain activity levels", models.Profile{})
	assert.True(t, matched)
	for _, level := range models.ActivityLevels {
		assert.Contains(t, reply, level)
	}
	assert.Contains(t, reply, "1.55x BMR")
}

func TestFitBot_Help(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("help", models.Profile{})
	assert.True(t, matched)
	assert.Contains(t, reply, "Calculate your BMI")
}

func TestFitBot_Default(t *testing.T) {
	bot := NewFitBot()

	reply, matched := bot.Reply("what's the weather like?", models.Profile{})
	assert.False(t, matched)
	assert.Equal(t, DefaultResponse, reply)
}

func TestFitBot_Deterministic(t *testing.T) {
	bot := NewFitBot()
	p := completeProfile()

	for _, msg := range []string{"hello", "bmi", "nutrition", "activity", "help", "gibberish"} {
		first, _ := bot.Reply(msg, p)
		second, _ := bot.Reply(msg, p)
		assert.Equal(t, first, second, "reply for %q should be deterministic", msg)
	}
}

func TestFitBot_FirstIntentWins(t *testing.T) {
	bot := NewFitBot()

	// greeting is checked before bmi
	reply, matched := bot.Reply("hi, what's my bmi?", completeProfile())
	assert.True(t, matched)
	assert.True(t, strings.HasPrefix(reply, "Hello!"))
}
