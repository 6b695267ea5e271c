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

// StockHandler - структура для обработки HTTP-запросов.
type StockHandler struct {
	Service *services.StockService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewStockHandler создаёт новый экземпляр StockHandler.
func NewStockHandler(service *services.StockService, logger *log.Logger, timeout time.Duration) *StockHandler {
	return &StockHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetStock обрабатывает запросы для получения остатков крови по всем группам.
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid method, only GET is allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	stock, err := h.Service.GetAllStock(ctx)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch blood stock")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stock); err != nil {
		h.Logger.Println(err)
	}
}
