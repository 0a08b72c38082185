package main

import (
	"cems/src/common"
	"cems/src/db"
	"cems/src/middlewares"
	"cems/src/models"
	"cems/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events/:id/book", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			result, err := common.CreateBooking(userId, role, params.ID)
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			status := http.StatusCreated
			if result.AlreadyBooked {
				status = http.StatusOK
			}
			ctx.JSON(status, gin.H{"data": result})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var bookings []models.Booking
			conn := db.GetDb()
			err := conn.
				Preload("Event").
				Preload("Event.Venue").
				Where(&models.Booking{UserID: userId}).
				Order("created_at desc").
				Find(&bookings).
				Error
			if err != nil {
				log.Printf("Error listing bookings for user %d: %s\n", userId, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			if err := common.CancelBooking(params.ID, userId, role); err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}

func approvalHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	facultyOnly := middlewares.RoleRequired(types.ROLE_FACULTY, types.ROLE_ADMIN)
	organizerOnly := middlewares.RoleRequired(types.ROLE_ORGANIZER, types.ROLE_ADMIN)

	faculty := g.Group("/faculty")
	faculty.Use(facultyOnly)
	faculty.
		GET("/bookings", func(ctx *gin.Context) {
			var bookings []models.Booking
			conn := db.GetDb()
			err := conn.
				Preload("Event").
				Preload("User").
				Joins("JOIN events ON events.id = bookings.event_id").
				Where("events.requires_faculty_approval = ?", true).
				Where("bookings.status = ? AND bookings.faculty_approved = ?", types.BOOKING_PENDING, false).
				Order("bookings.created_at asc").
				Find(&bookings).
				Error
			if err != nil {
				log.Printf("Error listing faculty queue: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		POST("/bookings/:id/approve", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			result, err := common.ApproveBooking(params.ID, userId, role, types.APPROVAL_FACULTY)
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		})

	organizer := g.Group("/organizer")
	organizer.Use(organizerOnly)
	organizer.
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			conn := db.GetDb()
			q := conn.
				Preload("Event").
				Preload("User").
				Joins("JOIN events ON events.id = bookings.event_id").
				Where("bookings.status = ? AND bookings.organizer_approved = ?", types.BOOKING_PENDING, false).
				Order("bookings.created_at asc")
			if role == types.ROLE_ORGANIZER {
				q = q.Where("events.organizer_id = ?", userId)
			}
			var bookings []models.Booking
			if err := q.Find(&bookings).Error; err != nil {
				log.Printf("Error listing organizer queue: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		}).
		POST("/bookings/:id/approve", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			result, err := common.ApproveBooking(params.ID, userId, role, types.APPROVAL_ORGANIZER)
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": result})
		})
	return g
}
