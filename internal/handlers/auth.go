package handlers

import (
	"errors"
	"net/http"

	"recipeshare/internal/service"

	"github.com/gin-gonic/gin"
)

// signUpRequest enumerates the accepted fields explicitly. Required-ness is
// enforced by the service so missing fields get the domain message and a
// 422, not a generic binding 400.
type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	ImageURL string `json:"image_url"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// writeServiceError maps domain errors onto the wire contract:
// validation/conflict → 422, auth → 401, anything else → 500.
func (h *Handler) writeServiceError(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInstructionsTooShort):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoSession),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, sess, err := h.services.SignUp(c.Request.Context(), service.SignUpParams{
		Username: input.Username,
		Password: input.Password,
		ImageURL: input.ImageURL,
		Bio:      input.Bio,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("sign_up_failed", "username", input.Username, "err", err)
		}
		h.writeServiceError(c, "sign_up_error", err)
		return
	}

	setSessionCookie(c, sess)
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, sess, err := h.services.Login(c.Request.Context(), service.Credentials{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "username", input.Username, "err", err)
		}
		h.writeServiceError(c, "login_error", err)
		return
	}

	setSessionCookie(c, sess)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) checkSession(c *gin.Context) {
	user, err := h.services.CurrentUser(c.Request.Context(), sessionToken(c))
	if err != nil {
		h.writeServiceError(c, "check_session_error", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		// An unknown or expired token means the client still holds a cookie
		// that no session backs. Expire it along with the 401.
		if errors.Is(err, service.ErrNoSession) {
			clearSessionCookie(c)
		}
		h.writeServiceError(c, "logout_error", err)
		return
	}
	clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
