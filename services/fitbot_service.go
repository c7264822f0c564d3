package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/Jaykaran24/fitbot/models"
	"github.com/Jaykaran24/fitbot/utils"
)

// Canned responses. DefaultResponse is what the bot says when no intent
// matched; callers branch on the matched flag, never on this string.
const (
	greetingResponse = "Hello! I'm Fit Bot, your personal nutrition and fitness assistant. " +
		"I can help you track your daily nutrient intake and provide personalized advice " +
		"based on your BMI and activity level. What would you like to know?"

	bmiPromptResponse = "I need your weight (in kg) and height (in cm) to calculate your BMI. " +
		"Please provide these details."

	nutritionPromptResponse = "I need your complete profile (weight, height, age, gender, and " +
		"activity level) to provide personalized nutrition advice. Please provide these details."

	helpResponse = "I can help you with:\n• Calculate your BMI\n• Provide personalized nutrition advice\n" +
		"• Explain activity levels\n• Track your daily nutrient intake\n\nJust ask me about any of these topics!"

	DefaultResponse = "I'm here to help with your nutrition and fitness goals! You can ask me about " +
		"BMI calculation, nutrition advice, activity levels, or general fitness tips. What would you like to know?"
)

// FitBot is the rule-based responder: ordered case-insensitive substring
// intent matching over the message, first match wins. Pure and stateless,
// so identical inputs always produce the identical reply.
type FitBot struct{}

func NewFitBot() *FitBot { return &FitBot{} }

// Reply answers a chat message given whatever profile data is available.
// The second return value reports whether an intent matched; false means
// the default response was used and the caller may escalate to external AI.
func (b *FitBot) Reply(message string, p models.Profile) (string, bool) {
	msg := strings.ToLower(message)

	if containsAny(msg, "hello", "hi", "hey") {
		return greetingResponse, true
	}

	if containsAny(msg, "bmi", "calculate") {
		if !p.HasBMIInputs() {
			return bmiPromptResponse, true
		}
		bmi := utils.CalculateBMI(p.Weight, p.Height)
		category := utils.BMICategory(bmi)
		return fmt.Sprintf("Your BMI is %.1f (%s). %s", bmi, category, utils.BMICategoryAdvice[category]), true
	}

	if containsAny(msg, "nutrition", "diet", "calories", "advice") {
		if !p.IsComplete() {
			return nutritionPromptResponse, true
		}
		return b.nutritionAdvice(p), true
	}

	if containsAny(msg, "activity", "exercise") {
		return activityLevelsResponse(), true
	}

	if containsAny(msg, "help", "what can you do") {
		return helpResponse, true
	}

	return DefaultResponse, false
}

// nutritionAdvice builds the structured recommendation for a complete
// profile: calorie needs, macro targets, then BMI- and activity-specific
// bullets.
func (b *FitBot) nutritionAdvice(p models.Profile) string {
	bmi := utils.CalculateBMI(p.Weight, p.Height)
	bmr := utils.CalculateBMR(p.Weight, p.Height, p.Age, p.Gender)
	dailyCalories := utils.CalculateDailyCalories(bmr, p.ActivityLevel)
	category := utils.BMICategory(bmi)

	var recs []string

	// Protein target scales 1.2-2.2 g/kg with activity level.
	proteinGrams := math.Round(p.Weight * proteinPerKg(p.ActivityLevel))
	recs = append(recs, fmt.Sprintf("Protein: %.0fg per day (%.0f calories)", proteinGrams, math.Round(proteinGrams*4)))

	// Fat at 25% of calories, carbohydrates take the remainder.
	fatCalories := math.Round(float64(dailyCalories) * 0.25)
	fatGrams := math.Round(fatCalories / 9)
	recs = append(recs, fmt.Sprintf("Fat: %.0fg per day (%.0f calories)", fatGrams, fatCalories))

	carbCalories := float64(dailyCalories) - proteinGrams*4 - fatCalories
	carbGrams := math.Round(carbCalories / 4)
	recs = append(recs, fmt.Sprintf("Carbohydrates: %.0fg per day (%.0f calories)", carbGrams, carbCalories))

	recs = append(recs, categoryAdviceBullets(category)...)
	recs = append(recs, activityAdviceBullets(p.ActivityLevel)...)

	var sb strings.Builder
	sb.WriteString("Based on your profile:\n")
	fmt.Fprintf(&sb, "• Daily calorie needs: %d calories\n", dailyCalories)
	fmt.Fprintf(&sb, "• BMI: %.1f (%s)\n\n", bmi, category)
	sb.WriteString("Recommendations:\n")
	for _, rec := range recs {
		sb.WriteString("• " + rec + "\n")
	}
	return sb.String()
}

func proteinPerKg(activityLevel string) float64 {
	switch activityLevel {
	case "sedentary":
		return 1.2
	case "lightlyActive":
		return 1.4
	case "moderatelyActive":
		return 1.6
	case "veryActive":
		return 1.8
	default:
		return 2.2
	}
}

func categoryAdviceBullets(category string) []string {
	switch category {
	case "underweight":
		return []string{
			"Focus on nutrient-dense foods like nuts, avocados, and lean proteins",
			"Consider adding healthy snacks between meals",
		}
	case "normal":
		return []string{
			"Maintain a balanced diet with plenty of fruits and vegetables",
			"Stay hydrated with at least 8 glasses of water daily",
		}
	case "overweight":
		return []string{
			"Create a moderate calorie deficit (300-500 calories below maintenance)",
			"Focus on whole foods and limit processed foods",
		}
	case "obese":
		return []string{
			"Work with a healthcare provider for a safe weight loss plan",
			"Start with small, sustainable changes to diet and activity",
		}
	}
	return nil
}

func activityAdviceBullets(activityLevel string) []string {
	switch activityLevel {
	case "sedentary":
		return []string{
			"Start with 10-15 minutes of daily walking",
			"Consider standing desk or regular movement breaks",
		}
	case "veryActive", "extremelyActive":
		return []string{
			"Ensure adequate recovery with proper sleep and nutrition",
			"Consider electrolyte replacement during intense workouts",
		}
	}
	return nil
}

func activityLevelsResponse() string {
	var sb strings.Builder
	sb.WriteString("Activity levels and their multipliers:\n")
	for _, level := range models.ActivityLevels {
		info := utils.ActivityMultipliers[level]
		fmt.Fprintf(&sb, "• %s: %s (%gx BMR)\n", level, info.Description, info.Multiplier)
	}
	return sb.String()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
