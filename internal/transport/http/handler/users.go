package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/journal-api/internal/application/auth"
	"github.com/journal-api/internal/application/user"
	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
	"github.com/journal-api/internal/pkg/validate"
	"github.com/journal-api/internal/transport/http/middleware"
)

const (
	statusVerified = "VERIFIED"
	statusPending  = "PENDING"
	statusFailed   = "FAILED"
)

type UserHandler struct {
	users user.Service
	codes auth.Service
}

func NewUserHandler(users user.Service, codes auth.Service) *UserHandler {
	return &UserHandler{users: users, codes: codes}
}

// Register handles POST /register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, token, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: u, Token: token})
}

type verifyRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

// VerifyOTP handles POST /verifyOTP.
func (h *UserHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !id.Valid(req.UserID) {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if req.OTP == "" {
		writeJSON(w, http.StatusBadRequest, VerifyEnvelope{
			Status:  statusFailed,
			Message: "otp is required",
		})
		return
	}

	msg, err := h.codes.VerifyCode(r.Context(), req.UserID, req.OTP)
	if err != nil {
		if code := workflowCode(err); code != "" {
			writeJSON(w, http.StatusBadRequest, VerifyEnvelope{
				Status:  statusFailed,
				Code:    code,
				Message: err.Error(),
			})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{Status: statusVerified, Message: msg})
}

// workflowCode maps verification failures to their machine-readable codes.
// Non-workflow errors return "".
func workflowCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoPendingCode):
		return "NO_PENDING_CODE"
	case errors.Is(err, domain.ErrCodeExpired):
		return "CODE_EXPIRED"
	case errors.Is(err, domain.ErrCodeMismatch):
		return "CODE_MISMATCH"
	}
	return ""
}

type resendRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// ResendOTP handles POST /resendOTP. Unlike register, resend waits for mail
// delivery and reports a dispatch failure in the response body with HTTP 200:
// the code was already persisted, the user can simply retry.
func (h *UserHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !id.Valid(req.UserID) {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	err := h.codes.ResendCode(r.Context(), req.UserID, req.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, ResendEnvelope{
			Status:  statusPending,
			Message: "verification email sent",
		})
	case errors.Is(err, domain.ErrDispatch):
		writeJSON(w, http.StatusOK, ResendEnvelope{
			Status:  statusFailed,
			Message: "could not send verification email",
		})
	default:
		writeDomainError(w, err)
	}
}

// GetUserByToken handles GET /getUserByToken. The auth middleware has
// already verified the token and stashed the claims.
func (h *UserHandler) GetUserByToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token claims")
		return
	}

	u, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{User: u, Token: middleware.BearerToken(r)})
}

// UpdateInfo handles POST /updateInfo.
func (h *UserHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !id.Valid(req.UserID) {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.users.UpdateInfo(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateSocialInfo handles POST /updateSocialInfo.
func (h *UserHandler) UpdateSocialInfo(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSocialInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !id.Valid(req.UserID) {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.users.UpdateSocialInfo(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type loginRequest struct {
	ID string `json:"id"`
}

// LoginAdmin handles POST /loginAdmin.
func (h *UserHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	h.loginRole(w, r, domain.RoleAdmin)
}

// LoginJoury handles POST /loginJoury. The route name keeps the spelling the
// frontend already depends on.
func (h *UserHandler) LoginJoury(w http.ResponseWriter, r *http.Request) {
	h.loginRole(w, r, domain.RoleJuror)
}

func (h *UserHandler) loginRole(w http.ResponseWriter, r *http.Request, role string) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !id.Valid(req.ID) {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.users.LoginRole(r.Context(), req.ID, role); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "success"})
}
