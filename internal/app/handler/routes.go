package handler

import (
	"voucher-backend/internal/app/middleware"
	"voucher-backend/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// Проверка работоспособности
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	{
		// ============ Аутентификация ============
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.AuthHandler.LoginUser)
			auth.POST("/logout", authMiddleware.WithAuthCheck(role.Accountant, role.AdminStaff), h.AuthHandler.LogoutUser)
			auth.GET("/profile", authMiddleware.WithAuthCheck(role.Accountant, role.AdminStaff), h.AuthHandler.GetUserProfile)
		}

		// ============ Пользователи (только суперпользователь) ============
		api.POST("/users", authMiddleware.WithSuperuserCheck(), h.AuthHandler.CreateUser)

		// ============ Должности (только суперпользователь) ============
		designations := api.Group("/designations")
		{
			designations.POST("", authMiddleware.WithSuperuserCheck(), h.CreateDesignation)
			designations.GET("", authMiddleware.WithAuthCheck(role.Accountant, role.AdminStaff), h.GetDesignations)
		}

		// ============ Конфигурация согласования (только суперпользователь) ============
		approvalControl := api.Group("/approval-control")
		{
			approvalControl.GET("", authMiddleware.WithSuperuserCheck(), h.GetApprovalControl)
			approvalControl.POST("", authMiddleware.WithSuperuserCheck(), h.SetApprovalControl)
		}

		// ============ Ваучеры ============
		vouchers := api.Group("/vouchers")
		{
			// Подача строго для бухгалтеров, без обхода суперпользователем
			vouchers.POST("", authMiddleware.WithCapabilityCheck(role.CanSubmitVouchers), h.CreateVoucher)
			vouchers.GET("", authMiddleware.WithAuthCheck(role.Accountant, role.AdminStaff), h.GetVouchers)
			vouchers.GET("/:id", authMiddleware.WithAuthCheck(role.Accountant, role.AdminStaff), h.GetVoucher)
			// Решение принимает административный персонал или суперпользователь
			vouchers.POST("/:id/approve", authMiddleware.WithCapabilityCheck(role.CanRecordDecisions), h.ApproveVoucher)
		}
	}
}
