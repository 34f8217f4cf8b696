package handler

import (
	"net/http"

	"github.com/threadboard/threadboard/shared/api"
	"github.com/threadboard/threadboard/shared/csrf"
	"github.com/threadboard/threadboard/shared/domain"
	mw "github.com/threadboard/threadboard/shared/middleware"
	"github.com/threadboard/threadboard/shared/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.auth.Register(r.Context(), domain.RegistrationData{Name: body.Name, Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, accessToken, err := h.auth.Login(r.Context(), domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	csrfToken, err := csrf.GenerateToken()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	maxAge := int(h.cfg.JwtTTL().Seconds())
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    accessToken,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	// readable by the frontend, echoed back in the X-CSRF-Token header
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     csrf.CookieName,
		Value:    csrfToken,
		MaxAge:   maxAge,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, api.LoginResponse{User: user, AccessToken: accessToken})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     mw.AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Path:   "/",
		Name:   csrf.CookieName,
		Value:  "",
		MaxAge: -1,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("You logged out"))
}
