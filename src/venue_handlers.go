package main

import (
	"cems/src/db"
	"cems/src/models"
	"cems/src/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func venueHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/venues", func(ctx *gin.Context) {
			var venues []models.Venue
			conn := db.GetDb()
			if err := conn.Order("name asc").Find(&venues).Error; err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": venues})
		}).
		POST("/venues", func(ctx *gin.Context) {
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			venue := models.Venue{
				Name:     body.Name,
				Capacity: body.Capacity,
				Status:   types.VENUE_FREE,
				Location: body.Location,
			}
			conn := db.GetDb()
			err := conn.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.Venue{}).Where("name = ?", body.Name).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return types.NewConflictError("a venue with this name already exists")
				}
				return tx.Create(&venue).Error
			})
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": venue.ID})
		}).
		PATCH("/venues/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Capacity != nil {
				updates["capacity"] = *body.Capacity
			}
			if body.Location != nil {
				updates["location"] = *body.Location
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			conn := db.GetDb()
			err := conn.Transaction(func(tx *gorm.DB) error {
				var venue models.Venue
				if err := tx.Where(&models.Venue{ID: params.ID}).First(&venue).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewValidationError("venue not found")
					}
					return err
				}
				return tx.Model(&models.Venue{}).Where("id = ?", venue.ID).Updates(updates).Error
			})
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		PUT("/venues/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.VenueActionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status := types.VENUE_FREE
			if body.Action == "block" {
				status = types.VENUE_BLOCKED
			}
			conn := db.GetDb()
			err := conn.Transaction(func(tx *gorm.DB) error {
				var venue models.Venue
				if err := tx.Where(&models.Venue{ID: params.ID}).First(&venue).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return types.NewValidationError("venue not found")
					}
					return err
				}
				return tx.Model(&models.Venue{}).Where("id = ?", venue.ID).Update("status", status).Error
			})
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": status})
		})
	return g
}
