package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/dto"
	apierrors "github.com/pvsouza/blog-messenger-api/internal/errors"
	"github.com/pvsouza/blog-messenger-api/internal/middleware"
	"github.com/pvsouza/blog-messenger-api/internal/services"
	"github.com/pvsouza/blog-messenger-api/internal/utils"
)

// ProfileHandler coordinates profile HTTP handlers.
type ProfileHandler struct {
	profileService *services.ProfileService
	authService    *services.AuthService
	uploadDir      string
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, authService *services.AuthService, uploadDir string) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
		uploadDir:      uploadDir,
	}
}

// GetProfile returns the current user together with their profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.ToUserDTO(*user),
		"profile": dto.ToProfileDTO(*profile),
	})
}

// EditProfileForm returns the current profile values, mirroring the GET half
// of the edit form.
func (h *ProfileHandler) EditProfileForm(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// EditProfile updates only the supplied profile fields. Accepts multipart
// form data (for avatar uploads) or JSON.
func (h *ProfileHandler) EditProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var input services.UpdateProfileInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		parsed, err := h.parseMultipartProfile(c)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input = parsed
	} else {
		type EditProfileRequest struct {
			Bio       *string `json:"bio"`
			BirthDate *string `json:"birth_date"`
			Website   *string `json:"website"`
		}

		var req EditProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}

		input.Bio = req.Bio
		input.Website = req.Website
		if req.BirthDate != nil {
			birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				apierrors.BadRequest(c, "Invalid birth_date, expected YYYY-MM-DD")
				return
			}
			input.BirthDate = &birthDate
		}
	}

	profile, err := h.profileService.UpdateProfile(userID, input)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

func (h *ProfileHandler) parseMultipartProfile(c *gin.Context) (services.UpdateProfileInput, error) {
	var input services.UpdateProfileInput

	if bio, ok := c.GetPostForm("bio"); ok {
		input.Bio = &bio
	}
	if website, ok := c.GetPostForm("website"); ok {
		input.Website = &website
	}
	if birthDateStr, ok := c.GetPostForm("birth_date"); ok {
		birthDate, err := time.Parse("2006-01-02", birthDateStr)
		if err != nil {
			return input, errors.New("invalid birth_date, expected YYYY-MM-DD")
		}
		input.BirthDate = &birthDate
	}

	file, err := c.FormFile("avatar")
	if err == nil && file != nil {
		path, err := utils.SaveUpload(c, file, h.uploadDir, "avatars")
		if err != nil {
			return input, errors.New("failed to store avatar")
		}
		input.Avatar = &path
	}

	return input, nil
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
