package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// AuthHandlers handles the identity-pipeline HTTP requests
type AuthHandlers struct {
	registrationSvc domain.RegistrationService
	authSvc         domain.AuthService
	cache           domain.VerificationCache
	notifier        domain.Notifier
	uploadDir       string
	exposeCode      bool
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(
	registrationSvc domain.RegistrationService,
	authSvc domain.AuthService,
	cache domain.VerificationCache,
	notifier domain.Notifier,
	uploadDir string,
	exposeCode bool,
) *AuthHandlers {
	return &AuthHandlers{
		registrationSvc: registrationSvc,
		authSvc:         authSvc,
		cache:           cache,
		notifier:        notifier,
		uploadDir:       uploadDir,
		exposeCode:      exposeCode,
	}
}

// SendCodeRequest represents a verification-code issue request
type SendCodeRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Type       string `json:"type"`
}

// VerifyCodeRequest represents a verification-code check request
type VerifyCodeRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required"`
	Type       string `json:"type"`
}

// RegisterRequest represents a registration request (JSON or multipart form)
type RegisterRequest struct {
	Name             string `json:"name" form:"name" binding:"required"`
	Building         string `json:"building" form:"building"`
	Unit             string `json:"unit" form:"unit"`
	Room             string `json:"room" form:"room"`
	Password         string `json:"password" form:"password" binding:"required,min=6"`
	Email            string `json:"email" form:"email"`
	Phone            string `json:"phone" form:"phone"`
	Identifier       string `json:"identifier" form:"identifier"`
	VerificationCode string `json:"verificationCode" form:"verificationCode"`
	VerificationType string `json:"verificationType" form:"verificationType"`
	Role             string `json:"role" form:"role"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile update; the password is the
// only mutable field.
type UpdateProfileRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// SendCode issues a verification code and delivers it over the channel
// implied by the identifier.
func (h *AuthHandlers) SendCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind, err := domain.ClassifyIdentifier(req.Identifier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.cache.Issue(c.Request.Context(), req.Identifier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue verification code"})
		return
	}

	// The code stays cached on delivery failure so a retry can succeed
	// without reissuing.
	if !h.notifier.Send(kind, req.Identifier, code) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deliver verification code"})
		return
	}

	data := gin.H{"message": "Verification code sent"}
	if h.exposeCode {
		data["code"] = code
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// VerifyCode checks a submitted code; a successful check consumes it.
func (h *AuthHandlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.cache.Verify(c.Request.Context(), req.Identifier, req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrCodeInvalid.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Verification code confirmed"}})
}

// Register provisions a new account. Accepts JSON or multipart form data
// with an optional identity-image file.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	imagePath := ""

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if file, err := c.FormFile("identityImage"); err == nil {
			imagePath = filepath.Join(h.uploadDir, ulid.Make().String()+filepath.Ext(file.Filename))
			if err := c.SaveUploadedFile(file, imagePath); err != nil {
				log.Printf("register: failed to store identity image: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store identity image"})
				return
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.registrationSvc.Register(c.Request.Context(), domain.RegistrationInput{
		Name:             req.Name,
		Building:         req.Building,
		Unit:             req.Unit,
		Room:             req.Room,
		Password:         req.Password,
		Email:            req.Email,
		Phone:            req.Phone,
		Identifier:       req.Identifier,
		VerificationCode: req.VerificationCode,
		Role:             req.Role,
		IdentityImage:    imagePath,
	})
	if err != nil {
		status := registrationErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Printf("register: %v", err)
			c.JSON(status, gin.H{"error": "Registration failed"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	log.Printf("USER_REGISTERED: user_id=%s name=%s role=%s", result.User.ID, result.User.Name, result.User.Role)

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"token":      result.Token,
			"expires_in": result.ExpiresIn,
			"user":       userJSON(result.User),
		},
	})
}

// Login authenticates by name, email or phone.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No account matches this identifier"})
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		default:
			log.Printf("login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"token":      result.Token,
			"expires_in": result.ExpiresIn,
			"user":       userJSON(result.User),
		},
	})
}

// UpdateProfile changes the authenticated user's password.
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.ChangePassword(c.Request.Context(), userID.(string), req.Password)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case domain.ErrPasswordRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("update profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	log.Printf("PASSWORD_CHANGED: user_id=%s", user.ID)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": userJSON(user)}})
}

// Me returns the authenticated user's profile projection.
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.Profile(c.Request.Context(), userID.(string))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": userJSON(user)}})
}

// userJSON is the public user projection; it never carries the password hash.
func userJSON(u *domain.User) gin.H {
	phone := u.Phone
	if !u.HasRealPhone() {
		phone = ""
	}
	return gin.H{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"phone":    phone,
		"role":     u.Role,
		"building": u.Building,
		"unit":     u.Unit,
		"room":     u.Room,
	}
}

func registrationErrorStatus(err error) int {
	switch err {
	case domain.ErrMissingFields, domain.ErrMissingIdentifier, domain.ErrIdentifierInvalid,
		domain.ErrEmailInvalid, domain.ErrPhoneInvalid, domain.ErrRoleNotAllowed,
		domain.ErrNameTaken, domain.ErrEmailTaken, domain.ErrPhoneTaken, domain.ErrRoomTaken,
		domain.ErrAlreadyRegistered, domain.ErrCodeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
