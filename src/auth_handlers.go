package main

import (
	"cems/src/db"
	"cems/src/models"
	"cems/src/types"
	"cems/src/utils"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	guest := apiv1.Group("/auth")
	guest.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			role := body.Role
			if role == "" {
				role = types.ROLE_STUDENT
			}
			user := models.User{
				Email:    body.Email,
				FullName: body.FullName,
				Role:     role,
				Active:   true,
			}
			if body.StudentID != "" {
				user.StudentID = &body.StudentID
			}
			if err := user.SetPassword(body.Password); err != nil {
				log.Printf("Error hashing password: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			conn := db.GetDb()
			err := conn.Transaction(func(tx *gorm.DB) error {
				var count int64
				q := tx.Model(&models.User{}).Where("email = ?", body.Email)
				if body.StudentID != "" {
					q = q.Or("student_id = ?", body.StudentID)
				}
				if err := q.Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return types.NewConflictError("an account with this email or campus ID already exists")
				}
				return tx.Create(&user).Error
			})
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"id": user.ID})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			conn := db.GetDb()
			err := conn.
				Where("email = ? OR student_id = ?", body.Identifier, body.Identifier).
				First(&user).
				Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
					return
				}
				ctx.Status(http.StatusInternalServerError)
				return
			}
			if !user.CheckPassword(body.Password) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			if !user.Active {
				ctx.JSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
				return
			}
			token, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"token": token,
				"user": gin.H{
					"id":        user.ID,
					"email":     user.Email,
					"full_name": user.FullName,
					"role":      user.Role,
				},
			})
		})
	return guest
}

func profileHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/me", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			var user models.User
			conn := db.GetDb()
			if err := conn.Where(&models.User{ID: userId}).First(&user).Error; err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		PUT("/me", func(ctx *gin.Context) {
			var body types.UpdateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			updates := map[string]any{}
			if body.FullName != nil {
				updates["full_name"] = *body.FullName
			}
			if body.Phone != nil {
				updates["phone"] = *body.Phone
			}
			if body.Department != nil {
				updates["department"] = *body.Department
			}
			if body.Year != nil {
				updates["year"] = *body.Year
			}
			if len(updates) == 0 {
				ctx.Status(http.StatusNoContent)
				return
			}
			conn := db.GetDb()
			err := conn.
				Model(&models.User{}).
				Where("id = ?", userId).
				Updates(updates).
				Error
			if err != nil {
				abortWithFlowError(ctx, err)
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
