package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/civiclens/internal/pkg/response"
)

type Handler struct {
	verifier *Verifier
}

func NewHandler(verifier *Verifier) *Handler {
	return &Handler{verifier: verifier}
}

// VerifyGoogle godoc
// @Summary Verify a Google token
// @Description Exchanges a Google OAuth token for the caller's identity claims
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Token to verify"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/google/verify [post]
func (h *Handler) VerifyGoogle(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Token missing")
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), req.Token)
	if err != nil {
		// Upstream detail is not surfaced to callers.
		response.Unauthorized(c, "Invalid token")
		return
	}

	response.OK(c, VerifyResponse{User: identity})
}
