package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
)

// Сообщения проверки анкеты донора.
const (
	msgUnderAgeOrWeight = "You must be at least 18 years old and weigh at least 50kg to donate blood."
	msgRiskFactor       = "Based on your responses, you may not be eligible to donate at this time. Please consult with a healthcare professional."
	msgLowHemoglobin    = "Your hemoglobin level appears to be too low for donation. Please consult with a healthcare professional."
	msgEligible         = "You are eligible to donate blood!"
)

// CheckEligibility - чистая функция проверки анкеты донора.
// Для одинаковых ответов всегда возвращает одинаковый итог; состояние не читается
// и не изменяется. Ровно один конечный исход на каждую проверку.
func CheckEligibility(q models.EligibilityQuestionnaire, now time.Time) (*models.EligibilityResult, error) {
	if !q.Age || !q.Weight {
		return &models.EligibilityResult{Eligible: false, Message: msgUnderAgeOrWeight}, nil
	}

	if q.RecentIllness || q.RecentTattoo || q.RecentPiercing || q.RecentSurgery || q.RecentBloodTransfusion || q.RecentPregnancy {
		return &models.EligibilityResult{Eligible: false, Message: msgRiskFactor}, nil
	}

	if q.LastDonation != "" {
		lastDonation, err := time.Parse("2006-01-02", q.LastDonation)
		if err != nil {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid lastDonation date, expected format 2006-01-02")
		}
		// Между донациями должно пройти не меньше трёх календарных месяцев.
		threeMonthsAgo := now.AddDate(0, -3, 0)
		if lastDonation.After(threeMonthsAgo) {
			nextEligible := lastDonation.AddDate(0, 3, 0)
			return &models.EligibilityResult{
				Eligible:         false,
				Message:          fmt.Sprintf("You will be eligible to donate after %s", nextEligible.Format("02 Jan 2006")),
				NextEligibleDate: &nextEligible,
			}, nil
		}
	}

	if q.HemoglobinLevel != nil && *q.HemoglobinLevel < models.MinHemoglobinLevel {
		return &models.EligibilityResult{Eligible: false, Message: msgLowHemoglobin}, nil
	}

	return &models.EligibilityResult{Eligible: true, Message: msgEligible}, nil
}
