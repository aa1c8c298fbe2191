package handlers

import (
	"errors"
	"net/http"
	"strings"

	"saferail/internal/service"
	"saferail/internal/verification"

	"github.com/gin-gonic/gin"
)

// VerifyGenderRequest carries the identity-document number. It is never logged.
type VerifyGenderRequest struct {
	Aadhaar string `json:"aadhaar" example:"1234 5678 9012"`
}

// SignUpRequest is the account form submitted after verification.
type SignUpRequest struct {
	FullName           string `json:"full_name" example:"Priya Sharma"`
	Username           string `json:"username" example:"priya_s"`
	PhoneNumber        string `json:"phone_number" example:"+91 98765 43210"`
	Email              string `json:"email" example:"priya@example.com"`
	Password           string `json:"password" example:"secret123"`
	ConfirmPassword    string `json:"confirm_password" example:"secret123"`
	VerificationTicket string `json:"verification_ticket"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Verify gender
// @Description  Checks the identity document and returns a short-lived verification ticket. Rate limited per client.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      VerifyGenderRequest  true  "Document number"
// @Success      200   {object}  map[string]interface{}  "verified, ticket, step"
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      429   {object}  map[string]interface{}
// @Router       /auth/verify-gender [post]
func (h *Handler) verifyGender(c *gin.Context) {
	var req VerifyGenderRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	number := []byte(req.Aadhaar)
	req.Aadhaar = ""
	defer verification.Wipe(number)

	ticket, err := h.services.VerifyGender(c.Request.Context(), number)
	if err != nil {
		if h.log != nil && !errors.Is(err, verification.ErrInvalidFormat) {
			h.log.Infow("auth_verify_gender_failed", "client_ip", c.ClientIP(), "err", err)
		}
		h.writeError(c, err, "auth_verify_gender_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true, "ticket": ticket, "step": "success"})
}

// @Summary      Sign up
// @Description  Creates the account. Every field error is returned at once under "fields".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignUpRequest  true  "Account form"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  map[string]interface{}
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input SignUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), service.SignUpInput{
		FullName:           input.FullName,
		Username:           input.Username,
		PhoneNumber:        input.PhoneNumber,
		Email:              input.Email,
		Password:           input.Password,
		ConfirmPassword:    input.ConfirmPassword,
		VerificationTicket: input.VerificationTicket,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_sign_up_failed", "username", input.Username, "err", err)
		}
		h.writeError(c, err, "auth_sign_up_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  service.SignInResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]interface{}
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	key := strings.ToLower(strings.TrimSpace(input.Username)) + "|" + c.ClientIP()
	if !h.allow(c, h.opts.LoginRule, key) {
		return
	}

	res, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) || errors.Is(err, service.ErrUserNotFound) {
			if h.log != nil {
				h.log.Infow("auth_sign_in_failed", "username", input.Username, "err", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_in_failed", err)
		return
	}
	_ = h.opts.Limiter.Reset(c.Request.Context(), h.opts.LoginRule, key)

	c.JSON(http.StatusOK, res)
}

// @Summary      Log out
// @Description  Records the logout and returns the cleared session marker.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.Session
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auth/logout [post]
// @Security     BearerAuth
func (h *Handler) logout(c *gin.Context) {
	session, err := h.services.Logout(c.Request.Context(), userID(c))
	if err != nil {
		h.writeError(c, err, "auth_logout_failed")
		return
	}
	c.JSON(http.StatusOK, session)
}
