package controllers

import (
	"errors"
	"log"
	"net/http"

	"Townsquare/models"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
)

// @Summary Service health check
// @Description Returns pong
// @Tags meta
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Lists the public towns
// @Description Returns the ID, name and occupancy of every publicly listed town
// @Tags towns
// @Produce json
// @Success 200 {array} models.TownSummary
// @Router /towns [get]
func ListTowns(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.ListTowns())
	}
}

// @Summary Creates a new town
// @Description Returns the new town's ID and the one-time update password
// @Tags towns
// @Accept json
// @Produce json
// @Param body body models.TownCreateParams true "The public-facing information for the new town"
// @Success 200 {object} models.TownCreateResponse
// @Failure 400 {object} object{error=string}
// @Router /towns [post]
func CreateTown(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.TownCreateParams
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid town create request"})
			return
		}

		response, err := store.CreateTown(params)
		if err != nil {
			log.Printf("[TOWN-ERROR] creating town: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating town"})
			return
		}
		c.JSON(http.StatusOK, response)
	}
}

// @Summary Updates a town's settings
// @Description Applies a settings change and broadcasts it to the town's clients
// @Tags towns
// @Accept json
// @Produce json
// @Param townID path string true "ID of the town to update"
// @Param X-Town-Password header string true "Update password returned when the town was created"
// @Param body body models.TownSettingsUpdate true "The updated settings"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /towns/{townID} [patch]
func UpdateTown(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update models.TownSettingsUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings update"})
			return
		}

		err := store.UpdateTown(c.Param("townID"), c.GetHeader("X-Town-Password"), update)
		switch {
		case errors.Is(err, town.ErrTownNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Town not found"})
		case errors.Is(err, town.ErrBadPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid town update password"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating town"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Town updated"})
		}
	}
}

// @Summary Deletes a town
// @Description Broadcasts townClosing to every client, then removes the town
// @Tags towns
// @Produce json
// @Param townID path string true "ID of the town to delete"
// @Param X-Town-Password header string true "Update password returned when the town was created"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /towns/{townID} [delete]
func DeleteTown(store *town.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.DeleteTown(c.Param("townID"), c.GetHeader("X-Town-Password"))
		switch {
		case errors.Is(err, town.ErrTownNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Town not found"})
		case errors.Is(err, town.ErrBadPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid town update password"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting town"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Town deleted"})
		}
	}
}
