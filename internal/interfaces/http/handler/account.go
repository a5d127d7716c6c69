package handler

import (
	"github.com/gin-gonic/gin"

	accountapp "github.com/shop/storefront/internal/application/account"
)

// AccountHandler handles account API endpoints
type AccountHandler struct {
	BaseHandler
	accountService *accountapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *accountapp.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// SaveCredentialRequest stores a session token
type SaveCredentialRequest struct {
	Token string `json:"token" binding:"required"`
}

// SessionResponse reports whether a usable session exists
type SessionResponse struct {
	SignedIn bool `json:"signed_in"`
}

// Session reports whether the stored credential is still usable
func (h *AccountHandler) Session(c *gin.Context) {
	h.Success(c, SessionResponse{SignedIn: h.accountService.SignedIn(c.Request.Context())})
}

// SaveCredential stores the session token obtained from the identity provider
func (h *AccountHandler) SaveCredential(c *gin.Context) {
	var req SaveCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.accountService.SaveCredential(c.Request.Context(), req.Token); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Profile returns the account profile, from cache when the server is unreachable
func (h *AccountHandler) Profile(c *gin.Context) {
	profile, err := h.accountService.Profile(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// Logout drops the credential and the cached profile
func (h *AccountHandler) Logout(c *gin.Context) {
	if err := h.accountService.Logout(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers all account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/account")
	{
		accounts.GET("/session", h.Session)
		accounts.PUT("/credential", h.SaveCredential)
		accounts.GET("/profile", h.Profile)
		accounts.POST("/logout", h.Logout)
	}
}
