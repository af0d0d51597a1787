package handlers

import (
	"freshfold-web/internal/pkg/response"
	"freshfold-web/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler reports the viewer's decoded session tokens
type SessionHandler struct{}

// NewSessionHandler creates a new session handler
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// sessionEntry is one decoded token, without the raw claims internals.
type sessionEntry struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	UserID   uint   `json:"userId"`
	BranchID uint   `json:"branchId"`
}

// GetSession returns the roles the viewer currently holds tokens for
// @Summary Current session
// @Description Returns the decoded session tokens by role, or null when there is no session
// @Tags Session
// @Produce json
// @Success 200 {object} response.Response
// @Router /session [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	tokens := token.FromCookies(c)
	if tokens == nil {
		return response.Success(c, "No session", nil)
	}

	entries := make(map[string]sessionEntry, len(tokens))
	for role, claims := range tokens {
		entries[string(role)] = sessionEntry{
			Role:     claims.Role,
			Name:     claims.Name,
			UserID:   claims.UserID,
			BranchID: claims.BranchID,
		}
	}
	return response.Success(c, "Session retrieved", entries)
}
