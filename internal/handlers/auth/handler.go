package auth

import (
	"net/http"

	"mariachi/infras/otel"
	"mariachi/internal/domains/auth/model/dto"
	"mariachi/internal/domains/auth/service"
	"mariachi/shared"
	"mariachi/shared/constant"
	"mariachi/shared/failure"
	"mariachi/shared/validator"
	"mariachi/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh", handler.RefreshToken)
		r.Post("/password", handler.ChangePassword)
	})
}

// bind decodes and validates the body into T. On failure the error response is
// already written and ok is false.
func bind[T any](w http.ResponseWriter, r *http.Request, scope otel.Scope) (req T, ok bool) {
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("rejected auth payload")

		response.WithError(w, err)

		return req, false
	}

	return req, true
}

// reject writes err. Credential and permission failures are expected traffic and
// are logged below error level.
func reject(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.IsCode(err, http.StatusUnauthorized) || failure.IsCode(err, http.StatusForbidden) {
		log.Warn().Err(err).Msg(msg)
	} else {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(w, err)
}

// Register opens a client account. An authenticated admin may open staff accounts by setting the role.
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account"
// @Success 201 {object} response.Message "Account registered"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req, ok := bind[dto.RegisterRequest](w, r, scope)
	if !ok {
		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		reject(w, scope, err, "failed to register account")

		return
	}

	scope.AddEvent("Account registered by " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusCreated, "Account registered")
}

// Login exchanges credentials for an access and refresh token pair.
// @Summary Login
// @Description Unknown emails and wrong passwords share one 401 message. Deactivated accounts get 403.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Token pair"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req, ok := bind[dto.LoginRequest](w, r, scope)
	if !ok {
		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		reject(w, scope, err, "login refused")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken issues a new access token from a valid refresh token.
// @Summary Refresh the access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse "Token pair"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req, ok := bind[dto.RefreshTokenRequest](w, r, scope)
	if !ok {
		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		reject(w, scope, err, "token refresh refused")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword replaces the caller's password after checking the current one.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Message "Password changed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req, ok := bind[dto.ChangePasswordRequest](w, r, scope)
	if !ok {
		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		reject(w, scope, err, "failed to change password")

		return
	}

	scope.AddEvent("Password changed for " + shared.UserFromContext(ctx))

	response.WithMessage(w, http.StatusOK, "Password changed")
}
