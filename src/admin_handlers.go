package main

import (
	"cems/src/common"
	"cems/src/db"
	"cems/src/lib/mailer"
	"cems/src/models"
	"cems/src/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/dashboard", func(ctx *gin.Context) {
			conn := db.GetDb()
			var totalUsers, totalEvents, totalBookings, pendingEvents int64
			conn.Model(&models.User{}).Count(&totalUsers)
			conn.Model(&models.Event{}).Count(&totalEvents)
			conn.Model(&models.Booking{}).Count(&totalBookings)
			conn.Model(&models.Event{}).Where("status = ?", types.EVENT_PENDING).Count(&pendingEvents)
			ctx.JSON(http.StatusOK, gin.H{
				"users":          totalUsers,
				"events":         totalEvents,
				"bookings":       totalBookings,
				"pending_events": pendingEvents,
			})
		}).
		GET("/users", func(ctx *gin.Context) {
			var users []models.User
			conn := db.GetDb()
			if err := conn.Order("id asc").Find(&users).Error; err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users})
		}).
		POST("/users", func(ctx *gin.Context) {
			var body types.CreateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			user := models.User{
				Email:    body.Email,
				FullName: body.FullName,
				Role:     body.Role,
				Active:   true,
			}
			if body.StudentID != "" {
				user.StudentID = &body.StudentID
			}
			if err := user.SetPassword(body.Password); err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			conn := db.GetDb()
			err := conn.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.User{}).Where("email = ?", body.Email).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return types.NewConflictError("an account with this email already exists")
				}
				return tx.Create(&user).Error
			})
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": user.ID})
		}).
		PATCH("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Role != nil {
				updates["role"] = *body.Role
			}
			if body.Active != nil {
				updates["active"] = *body.Active
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			conn := db.GetDb()
			err := conn.
				Model(&models.User{}).
				Where("id = ?", params.ID).
				Updates(updates).
				Error
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		GET("/events/pending", func(ctx *gin.Context) {
			var events []models.Event
			conn := db.GetDb()
			err := conn.
				Preload("Venue").
				Preload("Organizer").
				Where("status = ?", types.EVENT_PENDING).
				Order("start_time asc").
				Find(&events).
				Error
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events})
		}).
		POST("/events/:id/approve", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.ApproveEvent(params.ID); err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": types.EVENT_APPROVED})
		}).
		POST("/events/:id/reject", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := common.RejectEvent(params.ID); err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": types.EVENT_REJECTED})
		}).
		GET("/settings/mail", func(ctx *gin.Context) {
			conn := db.GetDb()
			cfg := mailer.LoadConfig(conn)
			ctx.JSON(http.StatusOK, gin.H{
				"server":         cfg.Server,
				"port":           cfg.Port,
				"username":       cfg.Username,
				"use_tls":        cfg.UseTLS,
				"use_ssl":        cfg.UseSSL,
				"default_sender": cfg.DefaultSender,
				"enabled":        cfg.Enabled(),
			})
		}).
		PUT("/settings/mail", func(ctx *gin.Context) {
			var body types.MailSettingsRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			values := map[string]string{
				mailer.KeyMailServer:        body.Server,
				mailer.KeyMailPort:          strconv.Itoa(body.Port),
				mailer.KeyMailUsername:      body.Username,
				mailer.KeyMailPassword:      body.Password,
				mailer.KeyMailUseTLS:        strconv.FormatBool(body.UseTLS),
				mailer.KeyMailUseSSL:        strconv.FormatBool(body.UseSSL),
				mailer.KeyMailDefaultSender: body.DefaultSender,
			}
			conn := db.GetDb()
			err := conn.Transaction(func(tx *gorm.DB) error {
				for key, value := range values {
					setting := models.Setting{Key: key}
					if err := tx.Where(&models.Setting{Key: key}).FirstOrInit(&setting).Error; err != nil {
						return err
					}
					setting.Value = value
					if err := tx.Save(&setting).Error; err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
