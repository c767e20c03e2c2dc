package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"mariachi/config"
	"mariachi/infras/jwt"
	"mariachi/infras/otel"
	"mariachi/permissions"
	"mariachi/shared/constant"
	"mariachi/shared/failure"
	"mariachi/transport/http/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuth = SkipAuthKey("skip")

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole is the chain installed on every /v1 route: APIKey, then Auth, then RBAC.
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) lookup(path, method string) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	return m.permission.FindPermissions(path, method)
}

// Auth resolves the bearer token into the caller's identity. Skipped routes are
// public; optional routes only authenticate when a token is sent.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		path := routeOf(request)
		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		permission := m.lookup(path, request.Method)

		if skipped(ctx) || permission.Skip || (permission.Optional && authHeader == "") {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		claims, err := m.authenticate(authHeader)
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authRoleImpl) authenticate(authHeader string) (*jwt.Claims, error) {
	if authHeader == "" {
		return nil, failure.Unauthorized("Missing authorization header")
	}

	token, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)

	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return nil, failure.Unauthorized("Token has expired")
	case errors.Is(err, jwt.ErrInvalidClaim):
		return nil, failure.Unauthorized("Invalid token claims")
	case errors.Is(err, jwt.ErrInvalidToken):
		return nil, failure.Unauthorized("Invalid token")
	case err != nil:
		return nil, failure.Unauthorized("Token validation failed")
	}

	if claims.UserID == "" || claims.Email == "" {
		log.Error().Str("token_id", claims.TokenID).Msg("access token without user id or email")

		return nil, failure.Unauthorized("Invalid token claims")
	}

	return claims, nil
}

// RBAC refuses callers whose role is not listed for the route. A route with an
// empty role list is open to any authenticated caller.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skipped(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		permission := m.lookup(routeOf(request), request.Method)

		if m.permission.Skip || permission.Skip || (permission.Optional && role == "") || permission.Allows(role) {
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"user_role":     role,
			"allowed_roles": permission.Permissions,
			"reason":        "role_not_allowed",
		})
		scope.TraceError(failure.ForbiddenError)
		response.WithError(writer, failure.ForbiddenError)
	})
}

// APIKey lets internal callers such as schedulers bypass Auth and RBAC with the
// shared key. Requests without the header continue as regular clients.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), skipAuth, false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), skipAuth, true)))
	})
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuth).(bool)

	return skip
}

// routeOf resolves the registered pattern of a request, e.g. /v1/reservations/{id}.
func routeOf(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil {
		return request.URL.Path
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}
