package handlers

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/neonglow/neonglow-backend-go/database"
	"github.com/neonglow/neonglow-backend-go/models"
	"github.com/neonglow/neonglow-backend-go/utils"
)

type adminSignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func AdminSignup(c echo.Context) error {
	var req adminSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email, username and a password of at least 8 characters are required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid email format"})
	}

	collection := database.DB.Collection("admins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing := collection.FindOne(ctx, bson.M{"email": req.Email})
	if existing.Err() == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Admin already exists"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process password"})
	}

	admin := models.Admin{
		ID:        primitive.NewObjectID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := collection.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Admin already exists"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create admin"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Admin registered successfully"})
}

func AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if (req.Email == "" && req.Username == "") || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email/Username and password are required"})
	}

	filter := bson.M{"username": req.Username}
	if req.Email != "" {
		filter = bson.M{"email": req.Email}
	}

	collection := database.DB.Collection("admins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	if err := collection.FindOne(ctx, filter).Decode(&admin); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateAdminJWT(admin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user": map[string]interface{}{
			"id":       admin.ID.Hex(),
			"username": admin.Username,
			"email":    admin.Email,
			"isAdmin":  true,
			"role":     "admin",
		},
	})
}

// VerifyAdminToken checks the bearer token's signature, expiry and admin
// claims. Valid non-admin tokens are rejected with 403.
func VerifyAdminToken(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No token provided"})
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No token provided"})
	}

	claims, err := utils.ValidateAdminJWT(tokenParts[1])
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
	}

	if !claims.IsAdminToken() {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Not an admin token"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid": true,
		"user": map[string]interface{}{
			"id":       claims.ID,
			"username": claims.Username,
			"email":    claims.Email,
			"isAdmin":  claims.IsAdmin,
			"role":     claims.Role,
		},
	})
}
