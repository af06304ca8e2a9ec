package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"pharmacore/internal/common"
)

// JWTCustomClaims carries the authenticated employee identity.
type JWTCustomClaims struct {
	EmployeeID int64  `json:"employee_id"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// JWTConfig builds the echo-jwt configuration. On success the employee
// id is copied into the request context for handlers and services.
func JWTConfig(secret []byte) echojwt.Config {
	return echojwt.Config{
		SigningKey: secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(JWTCustomClaims)
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*JWTCustomClaims)
			if !ok {
				return
			}
			ctx := context.WithValue(c.Request().Context(), common.EmployeeIDKey, claims.EmployeeID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}
