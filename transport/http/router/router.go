package router

import (
	"fleetdesk/internal/handlers/auth"
	"fleetdesk/internal/handlers/booking"
	"fleetdesk/internal/handlers/compliance"
	"fleetdesk/internal/handlers/customer"
	"fleetdesk/internal/handlers/dashboard"
	"fleetdesk/internal/handlers/health"
	"fleetdesk/internal/handlers/maintenance"
	"fleetdesk/internal/handlers/staff"
	"fleetdesk/internal/handlers/vehicle"
	"fleetdesk/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health      health.Handler
	Auth        auth.Handler
	Staff       staff.Handler
	Customer    customer.Handler
	Vehicle     vehicle.Handler
	Booking     booking.Handler
	Compliance  compliance.Handler
	Maintenance maintenance.Handler
	Dashboard   dashboard.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	authRole       middleware.AuthRole
}

// SetupRoutes mounts the probes at the root and every API route under /v1
// behind API key, JWT and role checks.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.authRole.APIKey, r.authRole.Auth, r.authRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Vehicle.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Compliance.Router(routerGroup)
		r.DomainHandlers.Maintenance.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		authRole:       authRole,
	}
}
