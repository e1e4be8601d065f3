package routes

import (
	"Townsquare/controllers"
	"Townsquare/services/town"
	utils "Townsquare/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, store *town.Store) {
	// utils global
	router.Use(utils.Logger())
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Town administration
	api.GET("/towns", controllers.ListTowns(store))
	api.POST("/towns", controllers.CreateTown(store))
	api.PATCH("/towns/:townID", controllers.UpdateTown(store))
	api.DELETE("/towns/:townID", controllers.DeleteTown(store))

	// Area creation, all requiring a session token issued at join
	towns := api.Group("/towns/:townID")
	{
		towns.POST("/conversationArea", controllers.CreateConversationArea(store))
		towns.POST("/viewingArea", controllers.CreateViewingArea(store))
		towns.POST("/posterSessionArea", controllers.CreatePosterSessionArea(store))
		towns.POST("/watchTogetherArea", controllers.CreateWatchTogetherArea(store))

		// Typed per-area operations
		towns.PATCH("/:interactableID/imageContents", controllers.GetPosterAreaImageContents(store))
		towns.PATCH("/:interactableID/incStars", controllers.IncrementPosterAreaStars(store))
		towns.PATCH("/:interactableID/updateVideoInfo", controllers.UpdateWatchTogetherVideo(store))
		towns.PATCH("/:interactableID/hostID", controllers.GetWatchTogetherHostID(store))
		towns.POST("/:interactableID/addVideotoPlaylist", controllers.PushWatchTogetherPlayList(store))
		towns.PATCH("/:interactableID/playNext", controllers.WatchTogetherPlayNext(store))
	}
}
