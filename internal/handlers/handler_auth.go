package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/fipithx/ficore_backend/internal/core/ports/services"
	"github.com/fipithx/ficore_backend/internal/core/domain"
	"github.com/fipithx/ficore_backend/internal/dto"
	"github.com/fipithx/ficore_backend/internal/middleware"
	"github.com/fipithx/ficore_backend/internal/platform/config"
	"github.com/fipithx/ficore_backend/internal/utils"
)

// authHandler handles signup, login, 2FA and token lifecycle requests.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.User, services.TokenService, cfg)

	// Rate limit: 5 requests per minute per IP on credential endpoints
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	limitMiddleware := middleware.RateLimit(limiter.New(store, rate))

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/verify-otp", limitMiddleware, h.verifyOTP)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.logout)
		auth.POST("/forgot-password", limitMiddleware, h.forgotPassword)
		auth.POST("/reset-password", limitMiddleware, h.resetPassword)
	}
}

// issueTokens generates an access and refresh token pair, persists the
// refresh token hash, and sets the refresh cookie.
func issueTokens(c *gin.Context, cfg *config.Config, tokenSvc portssvc.TokenSvcFacade, userSvc portssvc.UserSvcFacade, user *domain.User) (*dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, _, err := tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiry, err := tokenSvc.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := userSvc.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		return nil, err
	}

	c.SetCookie(
		cfg.RefreshTokenCookieName,
		refreshToken,
		int(time.Until(refreshExpiry).Seconds()),
		cfg.RefreshTokenCookiePath,
		"",
		cfg.IsProduction,
		true,
	)

	userResp := dto.ToUserResponse(user)
	return &dto.LoginResponse{Token: accessToken, User: &userResp}, nil
}

// signup godoc
// @Summary Register a new account
// @Description Creates a user account and credits the signup bonus.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Signup details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username or email already taken"
// @Router /auth/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Log in with username and password
// @Description Authenticates a user. With 2FA enabled the response carries
// @Description otpRequired=true and the client follows up on /auth/verify-otp.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, otpRequired, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
		return
	}

	if otpRequired {
		userResp := dto.ToUserResponse(user)
		c.JSON(http.StatusOK, dto.LoginResponse{OTPRequired: true, User: &userResp})
		return
	}

	resp, err := issueTokens(c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// verifyOTP godoc
// @Summary Complete a 2FA login
// @Description Verifies the emailed one-time code and returns tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param otp body dto.VerifyOTPRequest true "Username and OTP"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Wrong or expired code"
// @Router /auth/verify-otp [post]
func (h *authHandler) verifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.VerifyOTP(c.Request.Context(), req.Username, req.OTP)
	if err != nil {
		respondError(c, err, "Failed to verify code")
		return
	}

	resp, err := issueTokens(c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// refreshRequest carries an explicit refresh token for non-browser clients.
// Browser clients rely on the refresh cookie instead.
type refreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken"`
}

// refresh godoc
// @Summary Refresh the access token
// @Description Exchanges a valid refresh token (cookie or body) for a new
// @Description access token, rotating the refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body refreshRequest true "User ID and optional token (cookie used when absent)"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		cookieToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
			return
		}
		refreshToken = cookieToken
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, refreshToken)
	if err != nil {
		respondError(c, err, "Failed to validate refresh token")
		return
	}

	resp, err := issueTokens(c, h.cfg, h.tokenService, h.userService, user)
	if err != nil {
		respondError(c, err, "Failed to generate tokens")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// logout godoc
// @Summary Log out
// @Description Revokes the stored refresh token and clears the cookie.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}

	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}

// forgotPassword godoc
// @Summary Start a password reset
// @Description Emails a reset link. Responds 202 whether or not the email
// @Description is known, to avoid account enumeration.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 202 "Accepted"
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (h *authHandler) forgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to start password reset")
		return
	}
	c.Status(http.StatusAccepted)
}

// resetPassword godoc
// @Summary Complete a password reset
// @Description Sets a new password from a valid reset token. The stored
// @Description refresh token is revoked so all sessions are logged out.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid or expired token"
// @Router /auth/reset-password [post]
func (h *authHandler) resetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.Status(http.StatusNoContent)
}
