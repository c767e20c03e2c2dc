package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mariachi/config"
	"mariachi/infras/jwt"
	jwtMocks "mariachi/infras/jwt/mocks"
	"mariachi/infras/otel/mocks"
	"mariachi/internal/domains/auth/model/dto"
	"mariachi/internal/domains/auth/service"
	userMocks "mariachi/internal/domains/user/mocks"
	userModel "mariachi/internal/domains/user/model"
	"mariachi/shared/constant"
	gDto "mariachi/shared/dto"
	"mariachi/shared/failure"
	"mariachi/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	return service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT), mockUserRepo, mockJWT
}

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

func TestAuthService_Register(t *testing.T) {
	adminCtx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleAdmin)
	employeeCtx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleEmployee)

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.RegisterRequest
		exists   bool
		wantRole string
		wantCode int
	}{
		{
			name:     "public sign up gets the client role",
			ctx:      context.Background(),
			req:      dto.RegisterRequest{Email: "c@mariachi.test", Password: "password1", FullName: "Carmen"},
			wantRole: constant.RoleClient,
		},
		{
			name:     "admin registers an employee",
			ctx:      adminCtx,
			req:      dto.RegisterRequest{Email: "e@mariachi.test", Password: "password1", FullName: "Eva", Role: constant.RoleEmployee},
			wantRole: constant.RoleEmployee,
		},
		{
			name:     "employee cannot register an admin",
			ctx:      employeeCtx,
			req:      dto.RegisterRequest{Email: "a@mariachi.test", Password: "password1", FullName: "Ana", Role: constant.RoleAdmin},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "duplicate email",
			ctx:      context.Background(),
			req:      dto.RegisterRequest{Email: "c@mariachi.test", Password: "password1", FullName: "Carmen"},
			exists:   true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUserRepo, _ := newService(t)

			if tt.wantCode != http.StatusForbidden {
				mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.exists, nil)
			}

			if tt.wantCode == 0 {
				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, tt.wantRole, user.Role)
						assert.NotEqual(t, tt.req.Password, user.Password)

						return nil
					})
			}

			err := svc.Register(tt.ctx, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	validUser := userModel.User{
		ID:       "user-id-123",
		Email:    "staff@mariachi.test",
		Password: hashed(t, "password"),
		Role:     constant.RoleEmployee,
		FullName: "Rosa Medina",
		Active:   true,
	}

	inactiveUser := validUser
	inactiveUser.Active = false

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				jwtService.EXPECT().
					GenerateTokenPair(jwt.Subject{UserID: validUser.ID, Email: validUser.Email, Role: validUser.Role}).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer"}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block the login",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func(repo *userMocks.MockUser, jwtService *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				jwtService.EXPECT().GenerateTokenPair(gomock.Any()).Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@mariachi.test", Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "wrong"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactiveUser, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "store failure",
			req:  dto.LoginRequest{Email: validUser.Email, Password: "password"},
			setupMock: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUserRepo, mockJWT := newService(t)
			tt.setupMock(mockUserRepo, mockJWT)

			res, err := svc.Login(context.Background(), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, validUser.ID, res.User.ID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		svc, _, mockJWT := newService(t)

		mockJWT.EXPECT().RefreshTokens("refresh-token").Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		svc, _, mockJWT := newService(t)

		mockJWT.EXPECT().RefreshTokens(gomock.Any()).Return(nil, jwt.ErrExpiredToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "old"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")
	user := userModel.User{ID: "user-id-123", Password: hashed(t, "old-password")}

	t.Run("success", func(t *testing.T) {
		svc, mockUserRepo, _ := newService(t)

		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, ok := fields[userModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password", hash))

				return nil
			})

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})

		require.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, mockUserRepo, _ := newService(t)

		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("same password", func(t *testing.T) {
		svc, mockUserRepo, _ := newService(t)

		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "old-password"})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
