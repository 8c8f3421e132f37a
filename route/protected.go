package route

import (
	"fotostand/controller"
	mw "fotostand/middlewares"

	"github.com/gin-gonic/gin"
)

func Protected(router *gin.Engine) {
	protected := router.Group("/")

	protected.Use(mw.JWT())
	protected.POST("/photos/:day", controller.UploadPhotos)
	protected.GET("/photos/:day", controller.ListPhotos)
	protected.DELETE("/photos/:day/:id", controller.DeletePhoto)
	protected.POST("/photos/:day/delete", controller.DeleteSelected)
	protected.POST("/photos/:day/purge", controller.PurgeDay)
	protected.GET("/uploads/active", controller.UploadInFlight)
}
