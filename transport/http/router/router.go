package router

import (
	"mariachi/internal/handlers/auth"
	"mariachi/internal/handlers/availability"
	"mariachi/internal/handlers/block"
	"mariachi/internal/handlers/pricing"
	"mariachi/internal/handlers/quotation"
	"mariachi/internal/handlers/rehearsal"
	"mariachi/internal/handlers/reservation"
	"mariachi/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Availability availability.Handler
	Block        block.Handler
	Reservation  reservation.Handler
	Quotation    quotation.Handler
	Rehearsal    rehearsal.Handler
	Pricing      pricing.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Block.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Quotation.Router(routerGroup)
		r.DomainHandlers.Rehearsal.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
