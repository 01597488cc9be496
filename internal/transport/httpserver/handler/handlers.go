package handler

import (
	"net/http"

	accessdomain "rental-app-go/internal/domain/access"
	activitydomain "rental-app-go/internal/domain/activity"
	billingdomain "rental-app-go/internal/domain/billing"
	bookingdomain "rental-app-go/internal/domain/booking"
	maintenancedomain "rental-app-go/internal/domain/maintenance"
	pkgdomain "rental-app-go/internal/domain/pkgdelivery"
	propertydomain "rental-app-go/internal/domain/property"
	tenantdomain "rental-app-go/internal/domain/tenant"
	"rental-app-go/internal/notify"
	"rental-app-go/internal/transport/httpserver/middleware"
	"rental-app-go/pkg/logger"
)

type Handlers struct {
	Scopes      *accessdomain.Resolver
	Properties  *propertydomain.Service
	Bookings    *bookingdomain.Service
	Billing     *billingdomain.Service
	Maintenance *maintenancedomain.Service
	Packages    *pkgdomain.Service
	Tenants     *tenantdomain.Service
	Activity    *activitydomain.Recorder
	Notifier    *notify.Notifier

	log logger.Logger
}

func New(
	scopes *accessdomain.Resolver,
	properties *propertydomain.Service,
	bookings *bookingdomain.Service,
	billing *billingdomain.Service,
	maintenance *maintenancedomain.Service,
	packages *pkgdomain.Service,
	tenants *tenantdomain.Service,
	activity *activitydomain.Recorder,
	notifier *notify.Notifier,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Scopes:      scopes,
		Properties:  properties,
		Bookings:    bookings,
		Billing:     billing,
		Maintenance: maintenance,
		Packages:    packages,
		Tenants:     tenants,
		Activity:    activity,
		Notifier:    notifier,
		log:         log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scopeFor pulls the principal off the context and resolves its access
// scope; every authenticated handler funnels through here.
func (h *Handlers) scopeFor(w http.ResponseWriter, r *http.Request) (accessdomain.Principal, accessdomain.Scope, bool) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return accessdomain.Principal{}, accessdomain.Scope{}, false
	}

	scope, err := h.Scopes.ScopeFor(r.Context(), principal)
	if err != nil {
		h.log.InternalError("access: resolve scope failed", err, "user_id", principal.ID, "role", principal.Role)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return accessdomain.Principal{}, accessdomain.Scope{}, false
	}
	return principal, scope, true
}
