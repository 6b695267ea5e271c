package router

import (
	"net/http"

	"github.com/haripriyathati/bloodlink-connect-plus/internal/handlers"
)

func InitRoutes(
	userHandler *handlers.UserHandler,
	stockHandler *handlers.StockHandler,
	requestHandler *handlers.RequestHandler,
	offerHandler *handlers.OfferHandler,
	notificationHandler *handlers.NotificationHandler,
	eligibilityHandler *handlers.EligibilityHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("/api/auth/register", userHandler.Register)
	mux.HandleFunc("/api/auth/login", userHandler.Login)
	mux.HandleFunc("/api/donors/nearby", userHandler.GetNearbyDonors)

	mux.HandleFunc("/api/stock", stockHandler.GetStock)

	mux.HandleFunc("/api/requests", requestHandler.GetRequests)
	mux.HandleFunc("/api/requests/new", requestHandler.CreateRequest)
	mux.HandleFunc("/api/requests/my", requestHandler.GetUserRequests)
	mux.HandleFunc("/api/requests/{requestId}/decision", requestHandler.SubmitRequestDecision)

	mux.HandleFunc("/api/offers", offerHandler.GetOffers)
	mux.HandleFunc("/api/offers/new", offerHandler.CreateOffer)
	mux.HandleFunc("/api/offers/my", offerHandler.GetUserOffers)
	mux.HandleFunc("/api/offers/{offerId}/decision", offerHandler.SubmitOfferDecision)
	mux.HandleFunc("/api/offers/{offerId}/slot", offerHandler.BookSlot)

	mux.HandleFunc("/api/eligibility/check", eligibilityHandler.CheckEligibility)

	mux.HandleFunc("/api/notifications", notificationHandler.GetNotifications)
	mux.HandleFunc("/api/notifications/{notificationId}/read", notificationHandler.MarkRead)

	return mux
}
