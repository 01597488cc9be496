package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"rental-app-go/internal/config"
	"rental-app-go/internal/domain/access"
	"rental-app-go/internal/transport/httpserver/handler"
	authmw "rental-app-go/internal/transport/httpserver/middleware"
	"rental-app-go/pkg/logger"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewAuth(cfg.Auth, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/properties", handlers.ListProperties)
			r.Get("/properties/{id}", handlers.GetProperty)
			r.Post("/properties", handlers.CreateProperty)
			r.Put("/properties/{id}", handlers.UpdateProperty)
			r.Delete("/properties/{id}", handlers.DeleteProperty)
			r.Post("/properties/{id}/owners", handlers.AssignOwner)
			r.Delete("/properties/{id}/owners", handlers.RemoveOwner)
			r.Post("/properties/{id}/staff", handlers.AssignStaff)
			r.Delete("/properties/{id}/staff", handlers.RemoveStaff)
			r.Put("/properties/{id}/rates", handlers.SetUtilityRate)
			r.Get("/properties/{id}/rates", handlers.ListRateHistory)

			r.Get("/properties/{id}/rooms", handlers.ListRooms)
			r.Post("/properties/{id}/rooms", handlers.CreateRoom)
			r.Put("/rooms/{id}", handlers.UpdateRoom)
			r.Delete("/rooms/{id}", handlers.DeleteRoom)

			r.Get("/bookings", handlers.ListBookings)
			r.Post("/bookings", handlers.CreateBooking)
			r.Put("/bookings/{id}", handlers.UpdateBooking)
			r.Put("/bookings/{id}/confirm", handlers.ConfirmBooking)
			r.Put("/bookings/{id}/cancel", handlers.CancelBooking)
			r.Delete("/bookings/{id}", handlers.DeleteBooking)

			r.Get("/bills/prices", handlers.ListRoomPrices)
			r.Get("/bills/byBooking/{booking_id}", handlers.ListBillsByBooking)
			r.Post("/bills", handlers.CreateBill)
			r.Put("/bills/{id}", handlers.UpdateBill)
			r.Put("/bills/{id}/confirm", handlers.ConfirmBill)
			r.Post("/bills/{id}/send", handlers.SendBill)
			r.Delete("/bills/{id}", handlers.DeleteBill)

			r.Get("/rent", handlers.ListRent)
			r.Put("/rent/{bill_id}/pay", handlers.PayBill)

			r.Get("/maintenance", handlers.ListMaintenance)
			r.Get("/maintenance/tenant", handlers.ListMyMaintenance)
			r.Post("/maintenance", handlers.CreateMaintenance)
			r.Put("/maintenance/{id}", handlers.UpdateMaintenance)
			r.Put("/maintenance/{id}/cancel", handlers.CancelMaintenance)
			r.Put("/maintenance/{id}/status", handlers.SetMaintenanceStatus)
			r.Delete("/maintenance/{id}", handlers.DeleteMaintenance)

			r.Get("/packages", handlers.ListPackages)
			r.Post("/packages", handlers.CreatePackage)
			r.Put("/packages/{id}", handlers.UpdatePackage)
			r.Put("/packages/{id}/receive", handlers.ReceivePackage)
			r.Post("/packages/{id}/notify", handlers.NotifyPackage)
			r.Delete("/packages/{id}", handlers.DeletePackage)

			r.Get("/tenants", handlers.ListTenants)
			r.Post("/tenants", handlers.CreateTenant)
			r.Put("/tenants/{id}", handlers.UpdateTenant)
			r.Put("/tenants/{id}/confirm", handlers.ConfirmTenant)
			r.Delete("/tenants/{id}", handlers.DeleteTenant)

			r.With(authmw.RequireRoles(access.RoleAdmin)).
				Get("/activity", handlers.ListActivity)
		})
	})

	return r
}
