package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"pharmacore/internal/common"
	"pharmacore/internal/middleware"
	"pharmacore/internal/models"
	"pharmacore/internal/repositories"
)

const tokenTTL = 24 * time.Hour

// AuthHandlers handles employee login and identity
type AuthHandlers struct {
	employeeRepo repositories.EmployeeRepository
	jwtSecret    []byte
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(employeeRepo repositories.EmployeeRepository, jwtSecret []byte) *AuthHandlers {
	return &AuthHandlers{
		employeeRepo: employeeRepo,
		jwtSecret:    jwtSecret,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendDomainError(c, err)
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendDomainError(c, err)
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "password must be at least 8 characters")
	}

	existing, err := h.employeeRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return common.SendServerError(c, "Signup failed")
	}
	if existing != nil {
		return common.SendClientError(c, "Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return common.SendServerError(c, "Signup failed")
	}

	employee := &models.Employee{
		Name:         req.Name,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := h.employeeRepo.Create(ctx, employee); err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, employee)
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return common.SendValidationError(c, "credentials", "username and password are required")
	}

	employee, err := h.employeeRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return common.SendServerError(c, "Login failed")
	}
	if employee == nil {
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Invalid username or password", nil))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Invalid username or password", nil))
	}

	now := time.Now()
	claims := &middleware.JWTCustomClaims{
		EmployeeID: employee.ID,
		Username:   employee.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.jwtSecret)
	if err != nil {
		return common.SendServerError(c, "Login failed")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": signed,
		"employee": map[string]any{
			"id":       employee.ID,
			"name":     employee.Name,
			"username": employee.Username,
		},
	})
}

// Me handles GET /me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, ok := common.GetEmployeeIDFromContext(ctx)
	if !ok {
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Employee not found", nil))
	}

	employee, err := h.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return common.SendDomainError(c, err)
	}
	return c.JSON(http.StatusOK, employee)
}
