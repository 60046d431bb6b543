package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

type AuthController struct {
	Ledger *services.Ledger
	Auth   *services.AuthService
	JWT    *utils.JWTManager
}

func NewAuthController(ledger *services.Ledger, auth *services.AuthService, jwt *utils.JWTManager) *AuthController {
	return &AuthController{Ledger: ledger, Auth: auth, JWT: jwt}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials, opens the register session for the user
// and returns a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := ac.Auth.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	token, err := ac.JWT.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not issue token"))
		return
	}

	ac.Ledger.Login(user)
	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("Operator logged in")

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
		"view":  ac.Ledger.CurrentView(),
	})
}

// Logout ends the session; the cart is discarded.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.Ledger.Logout()
	utils.InfoLogger.WithField("user_id", c.GetString("user_id")).Info("Operator logged out")
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// Profile resolves the token's account, so a removed account loses access
// even while its token is still valid.
func (ac *AuthController) Profile(c *gin.Context) {
	user, ok := ac.Auth.FindUser(c.GetString("user_id"))
	if !ok {
		respondLedgerError(c, services.ErrNotAuthenticated)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", gin.H{
		"user": user,
		"view": ac.Ledger.CurrentView(),
	})
}

func (ac *AuthController) GetView(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current view", gin.H{"view": ac.Ledger.CurrentView()})
}

type setViewRequest struct {
	View models.View `json:"view" binding:"required,view"`
}

func (ac *AuthController) SetView(c *gin.Context) {
	var input setViewRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ac.Ledger.SetCurrentView(input.View); err != nil {
		respondLedgerError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "View updated", gin.H{"view": input.View})
}
