package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/craftline/workshop/internal/domain"
	"github.com/craftline/workshop/internal/webserver"
	"github.com/craftline/workshop/pkg/common"
)

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes() {
	webserver.PubPOST("/api/login", login)
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", err.Error())
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and password are required", nil)
	}

	var operator domain.Operator
	if err := GetDB(c).
		Where("email = ? and status = ?", payload.Email, common.ENABLED).
		First(&operator).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if hashed != operator.Password {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
	}

	claims := jwt.MapClaims{
		"sub":  operator.ID,
		"name": operator.FullName,
		"role": operator.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	GetDB(c).Model(&domain.Operator{}).
		Where("id = ?", operator.ID).
		Update("last_login", time.Now())

	return ok(c, map[string]interface{}{"token": token})
}
