package httpapi

import (
	"errors"
	"net/http"
	"time"

	"signupform/internal/domain"
	"signupform/internal/service"
)

type signupRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"display_name"`
}

type accountResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func writeAccount(w http.ResponseWriter, status int, acct domain.Account) {
	resp := accountResponse{
		ID:        acct.ID,
		Email:     acct.Email,
		CreatedAt: acct.CreatedAt,
	}
	if acct.HasDisplayName() {
		name := acct.DisplayName
		resp.DisplayName = &name
	}
	WriteJSON(w, status, resp)
}

func (a *api) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if !a.signupLimiter.Allow("ip:"+clientIP(r, a.trustProxy), a.now()) {
		WriteDomainError(w, domain.ErrRateLimited)
		return
	}

	acct, err := a.signupSvc.Register(r.Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !errors.Is(err, domain.ErrEmailTaken) {
			requestLogger(r.Context(), a.logger).Error("signup failed", "err", err)
		}
		WriteDomainError(w, err)
		return
	}

	requestLogger(r.Context(), a.logger).Info("account created", "account_id", acct.ID)
	writeAccount(w, http.StatusCreated, acct)
}

func (a *api) handleAccountGet(w http.ResponseWriter, r *http.Request) {
	acct, err := a.signupSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			requestLogger(r.Context(), a.logger).Error("get account failed", "err", err)
		}
		WriteDomainError(w, err)
		return
	}
	writeAccount(w, http.StatusOK, acct)
}
