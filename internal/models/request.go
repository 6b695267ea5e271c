package models

import "time"

type RequestStatus string // Статус запроса или предложения

const (
	StatusPending  RequestStatus = "pending"  // Ожидает решения администратора
	StatusApproved RequestStatus = "approved" // Одобрено администратором
	StatusRejected RequestStatus = "rejected" // Отклонено администратором
)

// TerminalStatus проверяет, что статус является конечным.
func TerminalStatus(status RequestStatus) bool {
	return status == StatusApproved || status == StatusRejected
}

// BloodRequest представляет запрос пациента на кровь.
type BloodRequest struct {
	ID            string        `json:"id"`
	PatientID     string        `json:"patientId"`
	PatientName   string        `json:"patientName"`
	BloodGroup    BloodGroup    `json:"bloodGroup"`
	Units         int           `json:"units"`
	Reason        string        `json:"reason"`
	Status        RequestStatus `json:"status"`
	AdminResponse string        `json:"adminResponse,omitempty"`
	RequestDate   time.Time     `json:"requestDate"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Mobile        string        `json:"mobile"`
}

// BloodRequestPayload представляет структуру запроса для создания запроса на кровь.
type BloodRequestPayload struct {
	PatientID  string     `json:"patientId"`
	BloodGroup BloodGroup `json:"bloodGroup"`
	Units      int        `json:"units"`
	Reason     string     `json:"reason"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Mobile     string     `json:"mobile"`
}

// DecisionRequest представляет структуру запроса для решения администратора.
type DecisionRequest struct {
	Decision      RequestStatus `json:"decision"`
	AdminResponse string        `json:"adminResponse"`
}
