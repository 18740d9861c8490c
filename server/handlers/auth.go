package handlers

import (
	"net/http"
	"strings"

	"github.com/ArjunKaliyath/socials/auth"
	"github.com/ArjunKaliyath/socials/model"
	"github.com/ArjunKaliyath/socials/server/apperr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// minPasswordLength mirrors the minimum enforced on post titles and contents.
const minPasswordLength = 5

// AuthHandler serves signup and login, the only two unauthenticated routes.
type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.TokenManager
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a new user. The email must not be registered already; the
// password must be at least 5 characters after trimming.
func (h *AuthHandler) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", err.Error()))
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Password = strings.TrimSpace(input.Password)
	if input.Name == "" || len(input.Password) < minPasswordLength {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", nil))
		return
	}

	var count int64
	if err := h.db.Model(&model.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		apperr.Abort(c, errors.Wrap(err, "fail to check email uniqueness"))
		return
	}
	if count > 0 {
		apperr.Abort(c, apperr.Validation("E-Mail address already exists!", nil))
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	user := model.User{
		Id:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		Status:       "I am new!",
	}
	if err := h.db.Create(&user).Error; err != nil {
		// The uniqueness pre-check races with concurrent signups; the unique
		// index is the authority and its violation is still a validation error.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			apperr.Abort(c, apperr.Validation("E-Mail address already exists!", nil))
			return
		}
		apperr.Abort(c, errors.Wrap(err, "fail to create user"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created!", "userId": user.Id})
}

// Login verifies the credentials and mints a fresh bearer token. Unknown email
// and wrong password are both 401; the messages differ but neither leaks the
// stored hash.
func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperr.Abort(c, apperr.Validation("Validation failed, entered data is incorrect.", err.Error()))
		return
	}

	var user model.User
	res := h.db.Where("email = ?", input.Email).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			apperr.Abort(c, apperr.Unauthenticated("A user with this email could not be found."))
			return
		}
		apperr.Abort(c, errors.Wrap(res.Error, "fail to load user"))
		return
	}

	if !auth.CheckPassword(user.PasswordHash, strings.TrimSpace(input.Password)) {
		apperr.Abort(c, apperr.Unauthenticated("Wrong password!"))
		return
	}

	token, err := h.tokens.Issue(user.Id, user.Email)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": user.Id})
}
