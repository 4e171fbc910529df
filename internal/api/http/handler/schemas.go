package handler

import (
	"net/mail"
	"strings"
	"time"

	"github.com/avolkov/calcpad-server/internal/model"
)

// crudOperations is the closed set of operation types accepted on the
// calculations CRUD surface. The standalone calculate endpoint accepts
// everything the dispatcher knows.
var crudOperations = []string{"add", "subtract", "multiply", "divide"}

// ValidationError describes a single failed field check.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field errors for an unprocessable request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, fieldErr := range e {
		messages = append(messages, fieldErr.Field+": "+fieldErr.Message)
	}
	return strings.Join(messages, "; ")
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	var errs ValidationErrors
	if len(r.Username) < 3 || len(r.Username) > 50 {
		errs = append(errs, ValidationError{Field: "username", Message: "Username must be 3-50 characters"})
	}
	if !validEmail(r.Email) {
		errs = append(errs, ValidationError{Field: "email", Message: "Invalid email address"})
	}
	if len(r.Password) < 8 || len(r.Password) > 100 {
		errs = append(errs, ValidationError{Field: "password", Message: "Password must be 8-100 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoginRequest is the payload for user login. Username holds either the
// username or the email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs ValidationErrors
	if r.Username == "" {
		errs = append(errs, ValidationError{Field: "username", Message: "Field is required"})
	}
	if r.Password == "" {
		errs = append(errs, ValidationError{Field: "password", Message: "Field is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserUpdateRequest is the payload for a partial user update.
// Nil fields are left unchanged.
type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *UserUpdateRequest) Validate() error {
	var errs ValidationErrors
	if r.Username != nil && (len(*r.Username) < 3 || len(*r.Username) > 50) {
		errs = append(errs, ValidationError{Field: "username", Message: "Username must be 3-50 characters"})
	}
	if r.Email != nil && !validEmail(*r.Email) {
		errs = append(errs, ValidationError{Field: "email", Message: "Invalid email address"})
	}
	if r.Password != nil && (len(*r.Password) < 8 || len(*r.Password) > 100) {
		errs = append(errs, ValidationError{Field: "password", Message: "Password must be 8-100 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalculateRequest is the payload for the standalone calculate endpoint.
type CalculateRequest struct {
	Num1      *float64 `json:"num1"`
	Num2      *float64 `json:"num2"`
	Operation string   `json:"operation"`
}

func (r *CalculateRequest) Validate() error {
	var errs ValidationErrors
	if r.Num1 == nil {
		errs = append(errs, ValidationError{Field: "num1", Message: "Field is required"})
	}
	if r.Num2 == nil {
		errs = append(errs, ValidationError{Field: "num2", Message: "Field is required"})
	}
	if r.Operation == "" {
		errs = append(errs, ValidationError{Field: "operation", Message: "Field is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalculationCreateRequest is the payload for creating a calculation.
type CalculationCreateRequest struct {
	A    *float64 `json:"a"`
	B    *float64 `json:"b"`
	Type string   `json:"type"`
}

func (r *CalculationCreateRequest) Validate() error {
	var errs ValidationErrors
	if r.A == nil {
		errs = append(errs, ValidationError{Field: "a", Message: "Field is required"})
	}
	if r.B == nil {
		errs = append(errs, ValidationError{Field: "b", Message: "Field is required"})
	}
	if !isCRUDOperation(r.Type) {
		errs = append(errs, ValidationError{Field: "type", Message: "Type must be one of: " + strings.Join(crudOperations, ", ")})
	}
	if r.Type == "divide" && r.B != nil && *r.B == 0 {
		errs = append(errs, ValidationError{Field: "b", Message: "Division by zero is not allowed"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalculationUpdateRequest is the payload for a partial calculation update.
// Nil fields are left unchanged.
type CalculationUpdateRequest struct {
	A    *float64 `json:"a"`
	B    *float64 `json:"b"`
	Type *string  `json:"type"`
}

func (r *CalculationUpdateRequest) Validate() error {
	var errs ValidationErrors
	if r.Type != nil && !isCRUDOperation(*r.Type) {
		errs = append(errs, ValidationError{Field: "type", Message: "Type must be one of: " + strings.Join(crudOperations, ", ")})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isCRUDOperation(operationType string) bool {
	for _, op := range crudOperations {
		if operationType == op {
			return true
		}
	}
	return false
}

func validEmail(email string) bool {
	if email == "" || len(email) > 100 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	host := email[strings.LastIndex(email, "@")+1:]
	return strings.Contains(host, ".")
}

// UserResponse is a user payload without credential fields.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

// CalculationResponse is a stored calculation payload.
type CalculationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Type      string    `json:"type"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

func newCalculationResponse(calculation model.Calculation) CalculationResponse {
	return CalculationResponse{
		ID:        calculation.ID,
		UserID:    calculation.UserID,
		A:         calculation.A,
		B:         calculation.B,
		Type:      calculation.Type,
		Result:    calculation.Result,
		CreatedAt: calculation.CreatedAt,
	}
}

// CalculateResponse is returned by the standalone calculate endpoint.
type CalculateResponse struct {
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
	Num1      float64 `json:"num1"`
	Num2      float64 `json:"num2"`
}

// MessageResponse is a generic confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// OperationStatsResponse summarizes stored results for one operation type.
type OperationStatsResponse struct {
	Operation     string  `json:"operation"`
	Count         int64   `json:"count"`
	AverageResult float64 `json:"average_result"`
	MinResult     float64 `json:"min_result"`
	MaxResult     float64 `json:"max_result"`
}

// StatsResponse summarizes a user's calculation history.
type StatsResponse struct {
	TotalCalculations int64                    `json:"total_calculations"`
	ByOperation       []OperationStatsResponse `json:"by_operation"`
}

func newStatsResponse(stats model.CalculationStats) StatsResponse {
	byOperation := make([]OperationStatsResponse, 0, len(stats.ByOperation))
	for _, op := range stats.ByOperation {
		byOperation = append(byOperation, OperationStatsResponse{
			Operation:     op.Operation,
			Count:         op.Count,
			AverageResult: op.AverageResult,
			MinResult:     op.MinResult,
			MaxResult:     op.MaxResult,
		})
	}
	return StatsResponse{
		TotalCalculations: stats.TotalCalculations,
		ByOperation:       byOperation,
	}
}
