package v1

import (
	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/credential"
	"go-jobboard-backend/pkg/metrics"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC    domain.UserUsecase
	collector *metrics.Collector
	cfg       *config.Config
}

// NewUserHandler registers registration, session and profile routes.
func NewUserHandler(public, protected *gin.RouterGroup, userUC domain.UserUsecase, collector *metrics.Collector, cfg *config.Config) {
	handler := &UserHandler{userUC: userUC, collector: collector, cfg: cfg}

	users := public.Group("/user")
	{
		users.POST("/register", handler.Register)
		users.POST("/login", middleware.RateLimit(middleware.LoginRateLimitConfig()), handler.Login)
		users.GET("/logout", handler.Logout)
	}

	protected.POST("/user/profile/update", handler.UpdateProfile)
}

// Register godoc
// @Summary      Register a new account
// @Description  Create a candidate or recruiter account with a profile photo
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname     formData  string  true  "Full name"
// @Param        email        formData  string  true  "Email"
// @Param        phoneNumber  formData  string  true  "Phone number"
// @Param        password     formData  string  true  "Password"
// @Param        role         formData  string  true  "candidate or recruiter"
// @Param        file         formData  file    true  "Profile photo"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	in := domain.RegisterInput{
		FullName:    c.PostForm("fullname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Password:    c.PostForm("password"),
		Role:        c.PostForm("role"),
	}
	if file, err := c.FormFile("file"); err == nil {
		in.Avatar = file
	}

	if err := h.userUC.Register(c.Request.Context(), in); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created successfully", nil)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// Login godoc
// @Summary      Log in
// @Description  Verify credentials and set the session cookie
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Router       /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email, password and role are required"))
		return
	}

	user, token, err := h.userUC.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		h.collector.RecordLoginFailure()
		if logger := audit.Default(); logger != nil {
			logger.Log(audit.Event{
				Event:     audit.EventLoginFailed,
				Subject:   req.Email,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString("RequestID"),
			})
		}
		c.Error(err)
		return
	}

	if logger := audit.Default(); logger != nil {
		logger.Log(audit.Event{
			Event:     audit.EventLoginSuccess,
			Subject:   user.ID,
			IP:        c.ClientIP(),
			RequestID: c.GetString("RequestID"),
		})
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookieName, token, int(credential.TokenTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)

	response.Success(c, http.StatusOK, "Welcome back "+user.FullName, gin.H{"user": user})
}

// Logout godoc
// @Summary      Log out
// @Description  Clear the session cookie
// @Tags         user
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/logout [get]
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", h.cfg.CookieSecure, true)

	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Partial profile update with a mandatory resume upload
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Param        fullname     formData  string  false  "Full name"
// @Param        email        formData  string  false  "Email"
// @Param        phoneNumber  formData  string  false  "Phone number"
// @Param        bio          formData  string  false  "Bio"
// @Param        skills       formData  string  false  "Comma-separated skills"
// @Param        file         formData  file    true   "Resume"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/profile/update [post]
// @Security     CookieAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	in := domain.ProfileUpdateInput{
		FullName:    c.PostForm("fullname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Bio:         c.PostForm("bio"),
		Skills:      c.PostForm("skills"),
	}
	if file, err := c.FormFile("file"); err == nil {
		in.Resume = file
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user})
}
