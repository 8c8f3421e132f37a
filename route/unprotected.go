package route

import (
	"fotostand/controller"

	"github.com/gin-gonic/gin"
)

func Unprotected(router *gin.Engine, rateLimit gin.HandlerFunc) {
	router.POST("/registration", controller.RegisterUser)
	router.POST("/login", controller.Login)
	router.POST("/logout", controller.Logout)

	// The public photo-search page hits these.
	public := router.Group("/", rateLimit)
	public.GET("/lookup/:day/:number", controller.LookupPhoto)
	public.GET("/cooldown/:day/:number", controller.CheckCooldown)
	public.POST("/cooldown/:day/:number", controller.RecordDownload)
}
