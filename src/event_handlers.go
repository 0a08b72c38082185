package main

import (
	"cems/src/common"
	"cems/src/db"
	"cems/src/middlewares"
	"cems/src/models"
	"cems/src/types"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.
		GET("/events", func(ctx *gin.Context) {
			var filters types.EventQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			q := conn.
				Model(&models.Event{}).
				Preload("Venue").
				Preload("Category").
				Where("status = ?", types.EVENT_APPROVED).
				Where("end_time > ?", time.Now()).
				Order("start_time asc")
			if filters.Category != "" {
				q = q.
					Joins("JOIN categories ON categories.id = events.category_id").
					Where("categories.name = ?", filters.Category)
			}
			var events []models.Event
			if err := q.Find(&events).Error; err != nil {
				log.Printf("Error listing events: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			conn := db.GetDb()
			var event models.Event
			err := conn.
				Preload("Venue").
				Preload("Category").
				Where(&models.Event{ID: params.ID}).
				First(&event).
				Error
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			left, limited, err := common.SeatsAvailable(conn, &event)
			if err != nil {
				log.Printf("Error counting seats for event %d: %s\n", event.ID, err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			payload := gin.H{"data": event, "unbounded": !limited}
			if limited {
				payload["seats_available"] = left
			}
			ctx.JSON(http.StatusOK, payload)
		}).
		GET("/categories", func(ctx *gin.Context) {
			var categories []models.Category
			conn := db.GetDb()
			if err := conn.Order("name asc").Find(&categories).Error; err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": categories})
		})
	return apiv1
}

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	organizerOnly := middlewares.RoleRequired(types.ROLE_ORGANIZER, types.ROLE_ADMIN)
	g.
		POST("/events", organizerOnly, func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			eventId, err := common.CreateEvent(&body, userId)
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": eventId})
		}).
		PATCH("/events/:id", organizerOnly, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			if err := common.UpdateEvent(params.ID, &body, userId, role); err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/organizer/events", organizerOnly, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var events []models.Event
			conn := db.GetDb()
			err := conn.
				Preload("Venue").
				Preload("Bookings").
				Where(&models.Event{OrganizerID: userId}).
				Order("start_time asc").
				Find(&events).
				Error
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		GET("/organizer/dashboard", organizerOnly, func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var totalEvents, pendingApprovals, confirmedSeats int64
			conn.Model(&models.Event{}).Where("organizer_id = ?", userId).Count(&totalEvents)
			conn.
				Model(&models.Booking{}).
				Joins("JOIN events ON events.id = bookings.event_id").
				Where("events.organizer_id = ? AND bookings.status = ? AND bookings.organizer_approved = ?",
					userId, types.BOOKING_PENDING, false).
				Count(&pendingApprovals)
			conn.
				Model(&models.Booking{}).
				Joins("JOIN events ON events.id = bookings.event_id").
				Where("events.organizer_id = ? AND bookings.status = ?", userId, types.BOOKING_CONFIRMED).
				Count(&confirmedSeats)
			ctx.JSON(http.StatusOK, gin.H{
				"events":            totalEvents,
				"pending_approvals": pendingApprovals,
				"confirmed_seats":   confirmedSeats,
			})
		}).
		GET("/events/:id/bookings", middlewares.RoleRequired(types.ROLE_ORGANIZER, types.ROLE_FACULTY, types.ROLE_ADMIN), func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			conn := db.GetDb()
			var event models.Event
			if err := conn.Where(&models.Event{ID: params.ID}).First(&event).Error; err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			if role == types.ROLE_ORGANIZER && event.OrganizerID != userId {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "not the organizer of this event"})
				return
			}
			var bookings []models.Booking
			err := conn.
				Preload("User").
				Where(&models.Booking{EventID: params.ID}).
				Order("created_at asc").
				Find(&bookings).
				Error
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings})
		})
	return g
}
