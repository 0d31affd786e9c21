package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/apperrors"
	"github.com/taskforge-dev/taskforge/internal/guard"
	"github.com/taskforge-dev/taskforge/internal/models"
	"github.com/taskforge-dev/taskforge/internal/render"
	"github.com/taskforge-dev/taskforge/internal/scope"
	"github.com/taskforge-dev/taskforge/internal/types"
	"github.com/taskforge-dev/taskforge/internal/utils"
	"github.com/taskforge-dev/taskforge/internal/validate"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Birthdate       string `json:"birthdate"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
	Image           string `json:"image"`
}

type UpdateUserRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Birthdate       string `json:"birthdate"`
	CanBeContacted  bool   `json:"can_be_contacted"`
	CanDataBeShared bool   `json:"can_data_be_shared"`
	Image           string `json:"image"`
}

const dateLayout = "2006-01-02"

func parseBirthdate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(dateLayout, value)

	if err != nil {
		return nil, apperrors.Validation("La date de naissance doit être au format AAAA-MM-JJ.")
	}

	return &parsed, nil
}

func toDate(value *time.Time) *datatypes.Date {
	if value == nil {
		return nil
	}

	date := datatypes.Date(*value)
	return &date
}

// CreateUser is the public signup endpoint.
func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	birthdate, err := parseBirthdate(body.Birthdate)

	if err != nil {
		respondError(ctx, err)
		return
	}

	canBeContacted, canDataBeShared, err := validate.Profile(birthdate, body.CanBeContacted, body.CanDataBeShared)

	if err != nil {
		respondError(ctx, err)
		return
	}

	info := validate.PersonalInfo{
		Username:  body.Username,
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
	}

	if birthdate != nil {
		info.BirthYear = strconv.Itoa(birthdate.Year())
	}

	if err := validate.Password(body.Password, body.PasswordConfirm, info); err != nil {
		respondError(ctx, err)
		return
	}

	var existing models.User

	err = db.DB.Where("username = ?", body.Username).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un utilisateur avec ce nom existe déjà."})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user := models.User{
		Username:        body.Username,
		Email:           body.Email,
		FirstName:       body.FirstName,
		LastName:        body.LastName,
		Birthdate:       toDate(birthdate),
		CanBeContacted:  canBeContacted,
		CanDataBeShared: canDataBeShared,
		Image:           body.Image,
		IsActive:        true,
		PasswordHash:    string(passwordHash),
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un utilisateur avec ce nom existe déjà."})
			return
		}
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	self := types.Principal{ID: user.ID, Username: user.Username}

	ctx.JSON(http.StatusCreated, render.User(user, &self, render.ModeDetail))
}

func ListUsers(ctx *gin.Context) {
	principal := utils.GetOptionalUser(ctx)

	var users []models.User

	if err := scope.Users(db.DB, principal, ctx.Query("username")).Order("users.id").Find(&users).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]render.UserView, 0, len(users))

	for _, user := range users {
		response = append(response, render.User(user, principal, render.ModeList))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	principal := utils.GetOptionalUser(ctx)

	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := scope.Users(db.DB, principal, "").Where("users.id = ?", id).First(&user).Error; err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, render.User(user, principal, render.ModeDetail))
}

func UpdateUser(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := scope.Users(db.DB, &principal, "").Where("users.id = ?", id).First(&user).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteUser(principal, user) {
		respondForbidden(ctx)
		return
	}

	var body UpdateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	birthdate, err := parseBirthdate(body.Birthdate)

	if err != nil {
		respondError(ctx, err)
		return
	}

	canBeContacted, canDataBeShared, err := validate.Profile(birthdate, body.CanBeContacted, body.CanDataBeShared)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if body.Username != user.Username {
		var existing models.User

		err := db.DB.Where("username = ? AND id != ?", body.Username, user.ID).First(&existing).Error

		if err == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un utilisateur avec ce nom existe déjà."})
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking existing username: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	user.Username = body.Username
	user.Email = body.Email
	user.FirstName = body.FirstName
	user.LastName = body.LastName
	user.Birthdate = toDate(birthdate)
	user.CanBeContacted = canBeContacted
	user.CanDataBeShared = canDataBeShared
	user.Image = body.Image

	if err := db.DB.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Un utilisateur avec ce nom existe déjà."})
			return
		}
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, render.User(user, &principal, render.ModeDetail))
}

func DeleteUser(ctx *gin.Context) {
	principal, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := scope.Users(db.DB, &principal, "").Where("users.id = ?", id).First(&user).Error; err != nil {
		respondError(ctx, err)
		return
	}

	if !guard.CanWriteUser(principal, user) {
		respondForbidden(ctx)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		return db.DeleteUserCascade(tx, user.ID)
	})

	if err != nil {
		log.Printf("Failed to delete user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
