package controller

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"

	"fotostand/database"
	"fotostand/models"
	"fotostand/utils"
)

func RegisterUser(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := c.ShouldBind(&user); err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "Invalid Request Body"})
		return
	}

	validate := validator.New()
	if err := validate.Struct(user); err != nil {
		log.Println(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation Failed", "details": err.Error()})
		return
	}

	hashPass, err := utils.HashPass(user.Password)
	if err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "Error Hashing Password"})
		return
	}

	collection := database.Client.Database("fotostand").Collection("users")
	count, err := collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exist"})
		return
	}

	user.UserID = bson.NewObjectID().Hex()
	user.Password = hashPass
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	user.Role = "admin"

	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "Error Adding user"})
		return
	}

	c.IndentedJSON(http.StatusOK, result)
}

func Login(c *gin.Context) {
	var userLogin models.UserLogin

	if err := c.ShouldBind(&userLogin); err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "Invalid Request Body"})
		return
	}
	validate := validator.New()
	if err := validate.Struct(userLogin); err != nil {
		log.Println(err)
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "Validation Failed"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	collection := database.Client.Database("fotostand").Collection("users")

	userExist := &models.User{}
	err := collection.FindOne(ctx, bson.M{"email": userLogin.Email}).Decode(userExist)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := utils.ComparePass(userLogin.Password, userExist.Password); err != nil {
		log.Println(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.SignedToken(userExist.Email, userExist.Name, userExist.Role)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "Bearer",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(8 * time.Hour),
		Secure:   false,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response := struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}{
		Status: "Login Successfull",
		Token:  token,
	}
	c.IndentedJSON(http.StatusOK, response)
}

func Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "Bearer",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Second),
		MaxAge:   -1,
		Secure:   false,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response := struct {
		Status string `json:"status"`
	}{
		Status: "Logout Successfull",
	}
	c.IndentedJSON(http.StatusOK, response)
}
