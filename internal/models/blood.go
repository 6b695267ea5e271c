package models

import "time"

type BloodGroup string // Группа крови

// Фиксированная вселенная групп крови. Записи склада никогда не создаются
// и не удаляются во время работы.
const (
	APositive  BloodGroup = "A+"
	ANegative  BloodGroup = "A-"
	BPositive  BloodGroup = "B+"
	BNegative  BloodGroup = "B-"
	ABPositive BloodGroup = "AB+"
	ABNegative BloodGroup = "AB-"
	OPositive  BloodGroup = "O+"
	ONegative  BloodGroup = "O-"
)

// ValidBloodGroup проверяет, что группа крови входит в фиксированную вселенную.
func ValidBloodGroup(group BloodGroup) bool {
	switch group {
	case APositive, ANegative, BPositive, BNegative, ABPositive, ABNegative, OPositive, ONegative:
		return true
	}
	return false
}

// StockEntry представляет запись склада крови для одной группы.
type StockEntry struct {
	BloodGroup  BloodGroup `json:"bloodGroup"`
	Units       int        `json:"units"`
	LastUpdated time.Time  `json:"lastUpdated"`
}
