package models

import "time"

// MaxOfferUnits - максимальное количество единиц в одном предложении донора.
const MaxOfferUnits = 3

// DonationOffer представляет предложение донора сдать кровь.
type DonationOffer struct {
	ID            string        `json:"id"`
	DonorID       string        `json:"donorId"`
	DonorName     string        `json:"donorName"`
	BloodGroup    BloodGroup    `json:"bloodGroup"`
	Units         int           `json:"units"`
	Status        RequestStatus `json:"status"`
	AdminResponse string        `json:"adminResponse,omitempty"`
	OfferDate     time.Time     `json:"offerDate"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Mobile        string        `json:"mobile"`
	SlotBooked    bool          `json:"slotBooked"`
	DonationSlot  *time.Time    `json:"donationSlot,omitempty"`
}

// DonationOfferPayload представляет структуру запроса для создания предложения.
type DonationOfferPayload struct {
	DonorID    string     `json:"donorId"`
	BloodGroup BloodGroup `json:"bloodGroup"`
	Units      int        `json:"units"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Mobile     string     `json:"mobile"`
}

// SlotBookingRequest представляет структуру запроса для бронирования слота донации.
type SlotBookingRequest struct {
	Slot time.Time `json:"slot"`
}
