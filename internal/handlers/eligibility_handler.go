package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/models"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/services"
	"github.com/haripriyathati/bloodlink-connect-plus/internal/utils"
)

// EligibilityHandler - структура для обработки HTTP-запросов.
type EligibilityHandler struct {
	Logger *log.Logger
}

// NewEligibilityHandler создаёт новый экземпляр EligibilityHandler.
func NewEligibilityHandler(logger *log.Logger) *EligibilityHandler {
	return &EligibilityHandler{Logger: logger}
}

// CheckEligibility обрабатывает запросы для проверки допуска донора к сдаче крови.
// Проверка чисто вычислительная, к базе не обращается.
func (h *EligibilityHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only POST is allowed")
		return
	}

	var questionnaire models.EligibilityQuestionnaire
	if err := json.NewDecoder(r.Body).Decode(&questionnaire); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := services.CheckEligibility(questionnaire, time.Now())
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to check eligibility")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Logger.Println(err)
	}
}
