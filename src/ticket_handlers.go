package main

import (
	"cems/src/db"
	"cems/src/lib"
	"cems/src/models"
	"cems/src/types"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// ticketHandlers serves the generated ticket artifacts back to the
// booking owner. Resolved paths are cached in redis so repeat downloads
// skip the database.
func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings/:id/ticket", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")

			cacheKey := fmt.Sprintf("%d:%d:ticket", userId, params.ID)
			if rd := lib.GetRedisClient(); rd != nil {
				if cached, err := rd.Get(context.Background(), cacheKey).Result(); err == nil && cached != "" {
					if _, err := os.Stat(cached); err == nil {
						ctx.FileAttachment(cached, filepath.Base(cached))
						return
					}
				}
			}

			var booking models.Booking
			conn := db.GetDb()
			if err := conn.Where(&models.Booking{ID: params.ID}).First(&booking).Error; err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			if booking.UserID != userId && role != types.ROLE_ADMIN {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
				return
			}
			if booking.Status != types.BOOKING_CONFIRMED {
				ctx.JSON(http.StatusConflict, gin.H{"error": "booking is not confirmed"})
				return
			}

			var fpath string
			if booking.PDFPath != nil {
				fpath = *booking.PDFPath
			} else if booking.QRPath != nil {
				fpath = *booking.QRPath
			}
			if fpath == "" {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "ticket artifacts unavailable"})
				return
			}
			if _, err := os.Stat(fpath); err != nil {
				log.Printf("Ticket artifact missing on disk for booking %d: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusNotFound, gin.H{"error": "ticket artifacts unavailable"})
				return
			}

			if rd := lib.GetRedisClient(); rd != nil {
				rd.SetEx(context.Background(), cacheKey, fpath, time.Hour)
			}
			ctx.FileAttachment(fpath, filepath.Base(fpath))
		})
	return g
}
