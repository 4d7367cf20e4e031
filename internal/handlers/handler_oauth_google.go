package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fipithx/ficore_backend/internal/core/domain"
	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/middleware"
	"github.com/fipithx/ficore_backend/internal/platform/config"
)

const oauthStateCookie = "oauth_state"

// googleOAuthHandler handles the Google sign-in flows: the classic
// redirect/callback exchange and direct ID-token validation for SPA clients.
type googleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// newGoogleOAuthHandler creates a new googleOAuthHandler.
func newGoogleOAuthHandler(os portssvc.GoogleOAuthHandlerSvcFacade, us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *googleOAuthHandler {
	return &googleOAuthHandler{
		oauthService: os,
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, cfg)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login", h.login)
		google.GET("/callback", h.callback)
		google.POST("/id-token", h.idTokenLogin)
	}
}

// idTokenRequest carries a Google ID token obtained client-side.
type idTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// login godoc
// @Summary Start a Google sign-in
// @Description Redirects to Google's consent page with a CSRF state cookie.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) login(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// callback godoc
// @Summary Complete a Google sign-in
// @Description Validates the state cookie, exchanges the authorization code,
// @Description creates the account on first login and returns tokens.
// @Tags oauth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange Google authorization code", "error", err)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	info, err := h.oauthService.GetUserInfo(ctx, token)
	if err != nil {
		respondError(c, err, "Failed to fetch Google profile")
		return
	}

	h.finishGoogleLogin(c, info)
}

// idTokenLogin godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token obtained client-side (One Tap or SPA
// @Description flows), creates the account on first login and returns tokens.
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body idTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/id-token [post]
func (h *googleOAuthHandler) idTokenLogin(c *gin.Context) {
	ctx := c.Request.Context()

	var req idTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(ctx, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Google token is missing required claims"})
		return
	}

	h.finishGoogleLogin(c, &domain.GoogleUserInfo{
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
		Picture:       picture,
		Subject:       payload.Subject,
	})
}

// finishGoogleLogin resolves the local account for a verified Google identity
// and issues the usual token pair.
func (h *googleOAuthHandler) finishGoogleLogin(c *gin.Context, info *domain.GoogleUserInfo) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}

	resp, err := issueTokens(c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}

	logger.Info("Google sign-in completed", "userID", user.UserID)
	c.JSON(http.StatusOK, resp)
}
