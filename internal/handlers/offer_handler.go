package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/services"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/utils"
)

// OfferHandler - структура для обработки HTTP-запросов.
type OfferHandler struct {
	Service       *services.OfferService
	Approval      *services.ApprovalService
	Notifications *services.NotificationService
	Logger        *log.Logger
	Timeout       time.Duration
}

// NewOfferHandler создаёт новый экземпляр OfferHandler.
func NewOfferHandler(service *services.OfferService, approval *services.ApprovalService, notifications *services.NotificationService, logger *log.Logger, timeout time.Duration) *OfferHandler {
	return &OfferHandler{
		Service:       service,
		Approval:      approval,
		Notifications: notifications,
		Logger:        logger,
		Timeout:       timeout,
	}
}

// donorOffersResponse - ответ на запрос списка предложений донора.
// Reminder заполняется, если донору снова можно сдавать кровь.
type donorOffersResponse struct {
	Offers   []models.DonationOffer `json:"offers"`
	Reminder *models.Notification   `json:"reminder,omitempty"`
}

// CreateOffer обрабатывает запросы для создания нового предложения донорства.
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var payload models.DonationOfferPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offer, err := h.Service.CreateOffer(ctx, payload)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create donation offer")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(offer); err != nil {
		h.Logger.Println(err)
	}
}

// GetOffers обрабатывает запросы для получения списка предложений с фильтрацией.
func (h *OfferHandler) GetOffers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userID := r.URL.Query().Get("userId")
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")
	bloodGroups := r.URL.Query()["bloodGroup"]

	offers, err := h.Service.FetchOffers(ctx, userID, limitStr, offsetStr, bloodGroups)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch donation offers")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(offers); err != nil {
		h.Logger.Println(err)
	}
}

// GetUserOffers обрабатывает запросы для получения предложений текущего донора.
// Заодно проверяет, не пора ли напомнить донору о новой сдаче крови.
func (h *OfferHandler) GetUserOffers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	userID := r.URL.Query().Get("userId")

	offers, err := h.Service.GetDonorOffers(ctx, userID)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch donation offers")
		return
	}

	reminder, err := h.Notifications.ReminderScan(ctx, userID)
	if err != nil {
		h.Logger.Println(err)
		reminder = nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(donorOffersResponse{Offers: offers, Reminder: reminder}); err != nil {
		h.Logger.Println(err)
	}
}

// SubmitOfferDecision обрабатывает запросы для вынесения решения по предложению.
func (h *OfferHandler) SubmitOfferDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offerID := r.PathValue("offerId")
	adminID := r.URL.Query().Get("userId")

	var decisionReq models.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&decisionReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offer, err := h.Approval.DecideOffer(ctx, offerID, adminID, decisionReq.Decision, decisionReq.AdminResponse)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to submit decision")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(offer); err != nil {
		h.Logger.Println(err)
	}
}

// BookSlot обрабатывает запросы для бронирования слота сдачи крови.
func (h *OfferHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only PUT is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	offerID := r.PathValue("offerId")
	userID := r.URL.Query().Get("userId")

	var bookingReq models.SlotBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&bookingReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	offer, err := h.Service.BookSlot(ctx, offerID, userID, bookingReq.Slot)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to book donation slot")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(offer); err != nil {
		h.Logger.Println(err)
	}
}
