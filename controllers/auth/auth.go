package auth

import (
	"diet-tracker-backend/app"
	"diet-tracker-backend/enums"
	"diet-tracker-backend/services/user"
	"diet-tracker-backend/structs"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	app *app.App
}

func NewAuthController(a *app.App) *AuthController {
	return &AuthController{app: a}
}

func (a *AuthController) Register(c *gin.Context) {
	var input structs.RegisterParam
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: err.Error()})
		return
	}

	userEntity, err := a.app.Users.Register(input.Email, input.Password, input.FullName)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: "Email already registered"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, structs.UserResponse{
		ID:       userEntity.ID,
		Email:    userEntity.Email,
		FullName: userEntity.FullName,
	})
}

// Token exchanges username (email) and password for a bearer token.
// Accepts the OAuth2 password form or a JSON body.
func (a *AuthController) Token(c *gin.Context) {
	var input structs.TokenParam
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, structs.ErrorResponse{Error: err.Error()})
		return
	}

	userEntity, err := a.app.Users.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, structs.ErrorResponse{Error: "Incorrect credentials"})
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: enums.InternalErrorMessage})
		return
	}

	token, err := a.app.Tokens.GenerateToken(userEntity.ID, userEntity.Email)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, structs.ErrorResponse{Error: "Could not generate token"})
		return
	}
	c.JSON(http.StatusOK, structs.TokenResponse{AccessToken: token, TokenType: enums.TokenTypeBearer})
}
