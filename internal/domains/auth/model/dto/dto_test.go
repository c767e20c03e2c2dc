package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mariachi/infras/jwt"
	"mariachi/internal/domains/auth/model/dto"
	"mariachi/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "cliente@mariachi.test",
		FullName: "Carmen Ríos",
		Phone:    "+51 999 111 222",
	}

	user := req.ToUserModel(constant.ContextGuest, "hashed", constant.RoleClient)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleClient, user.Role)
	assert.True(t, user.Active)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}
