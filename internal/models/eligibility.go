package models

import "time"

// MinHemoglobinLevel - минимальный уровень гемоглобина (g/dL) для донации.
const MinHemoglobinLevel = 12.5

// EligibilityQuestionnaire представляет анкету самооценки донора перед подачей предложения.
type EligibilityQuestionnaire struct {
	Age                    bool     `json:"age"`    // Донору не меньше 18 лет
	Weight                 bool     `json:"weight"` // Донор весит не меньше 50 кг
	RecentIllness          bool     `json:"recentIllness"`
	OnMedication           bool     `json:"onMedication"`
	Medications            string   `json:"medications,omitempty"`
	RecentTattoo           bool     `json:"recentTattoo"`
	RecentPiercing         bool     `json:"recentPiercing"`
	RecentSurgery          bool     `json:"recentSurgery"`
	RecentBloodTransfusion bool     `json:"recentBloodTransfusion"`
	RecentPregnancy        bool     `json:"recentPregnancy"`
	LastDonation           string   `json:"lastDonation,omitempty"` // Дата в формате 2006-01-02, пустая если донаций не было
	HemoglobinLevel        *float64 `json:"hemoglobinLevel,omitempty"`
}

// EligibilityResult представляет единственный итог проверки анкеты.
type EligibilityResult struct {
	Eligible         bool       `json:"eligible"`
	Message          string     `json:"message"`
	NextEligibleDate *time.Time `json:"nextEligibleDate,omitempty"`
}
