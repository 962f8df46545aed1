package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"salesnav/database/repository"
	"salesnav/utils"
)

const adminTokenTTL = 12 * time.Hour

// AdminHandler serves the checkout audit log to the operator.
type AdminHandler struct {
	Checkouts    repository.CheckoutRepository
	Email        string
	PasswordHash string
	Secret       []byte
}

func NewAdminHandler(repo repository.CheckoutRepository, email, passwordHash string, secret []byte) *AdminHandler {
	return &AdminHandler{Checkouts: repo, Email: email, PasswordHash: passwordHash, Secret: secret}
}

type adminLoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler exchanges the admin credentials for a bearer token.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var in adminLoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if ah.Email == "" || ah.PasswordHash == "" || len(ah.Secret) == 0 {
		utils.JSONError(c, http.StatusServiceUnavailable, "admin access is not configured")
		return
	}
	if !strings.EqualFold(in.Email, ah.Email) ||
		bcrypt.CompareHashAndPassword([]byte(ah.PasswordHash), []byte(in.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(ah.Secret, "admin", ah.Email, adminTokenTTL)
	if err != nil {
		getLogger(c).Error("Failed to issue admin token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(adminTokenTTL.Seconds())})
}

// ListCheckoutsHandler returns the most recent checkout records.
func (ah *AdminHandler) ListCheckoutsHandler(c *gin.Context) {
	if ah.Checkouts == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "checkout log is not available")
		return
	}
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	records, err := ah.Checkouts.List(c.Request.Context(), limit)
	if err != nil {
		getLogger(c).Error("Failed to fetch checkouts", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch checkouts")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (ah *AdminHandler) GetCheckoutHandler(c *gin.Context) {
	if ah.Checkouts == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "checkout log is not available")
		return
	}
	rec, err := ah.Checkouts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
