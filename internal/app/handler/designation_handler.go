package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"voucher-backend/internal/app/dto"
	"voucher-backend/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ДОЛЖНОСТИ ============

// CreateDesignation создает должность
// @Summary Создание должности
// @Description Создает новую должность для согласования (только суперпользователь)
// @Tags Designations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDesignationRequest true "Название должности"
// @Success 201 {object} dto.DesignationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/designations [post]
func (h *APIHandler) CreateDesignation(c *gin.Context) {
	userID, _, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.CreateDesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Название должности обязательно")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		h.errorResponse(c, http.StatusBadRequest, "Название должности обязательно")
		return
	}

	designation, err := h.Repository.CreateDesignation(req.Name, userID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateDesignation) {
			h.errorResponse(c, http.StatusBadRequest, "Должность с таким названием уже существует")
			return
		}
		logrus.Error("Error creating designation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания должности")
		return
	}

	c.JSON(http.StatusCreated, dto.DesignationResponse{
		ID:   designation.ID,
		Name: designation.Name,
	})
}

// GetDesignations возвращает справочник должностей
// @Summary Список должностей
// @Description Возвращает все должности
// @Tags Designations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.DesignationResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/designations [get]
func (h *APIHandler) GetDesignations(c *gin.Context) {
	designations, err := h.Repository.GetAllDesignations()
	if err != nil {
		logrus.Error("Error getting designations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения должностей")
		return
	}

	responses := make([]dto.DesignationResponse, len(designations))
	for i, d := range designations {
		responses[i] = dto.DesignationResponse{ID: d.ID, Name: d.Name}
	}

	c.JSON(http.StatusOK, responses)
}

// GetApprovalControl возвращает конфигурацию согласования
// @Summary Конфигурация согласования
// @Description Возвращает активные должности и полный справочник (только суперпользователь)
// @Tags ApprovalControl
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApprovalControlResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/approval-control [get]
func (h *APIHandler) GetApprovalControl(c *gin.Context) {
	activeIDs, err := h.Repository.GetActiveDesignationIDs()
	if err != nil {
		logrus.Error("Error getting active designations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения конфигурации согласования")
		return
	}

	designations, err := h.Repository.GetAllDesignations()
	if err != nil {
		logrus.Error("Error getting designations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения должностей")
		return
	}

	all := make([]dto.DesignationResponse, len(designations))
	for i, d := range designations {
		all[i] = dto.DesignationResponse{ID: d.ID, Name: d.Name}
	}

	c.JSON(http.StatusOK, dto.ApprovalControlResponse{
		ActiveDesignationIDs: activeIDs,
		AllDesignations:      all,
	})
}

// SetApprovalControl заменяет набор активных должностей
// @Summary Настройка согласования
// @Description Полная замена набора активных должностей: все должности вне списка деактивируются (только суперпользователь)
// @Tags ApprovalControl
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SetActiveDesignationsRequest true "ID активных должностей"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/approval-control [post]
func (h *APIHandler) SetApprovalControl(c *gin.Context) {
	userID, _, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	var req dto.SetActiveDesignationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "active_designation_ids должен быть списком ID")
		return
	}

	err = h.Repository.SetActiveDesignations(req.ActiveDesignationIDs, userID)
	if err != nil {
		logrus.Error("Error setting active designations: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления конфигурации согласования")
		return
	}

	h.successResponse(c, http.StatusOK,
		fmt.Sprintf("Конфигурация согласования обновлена. Активных должностей: %d", len(req.ActiveDesignationIDs)),
		gin.H{"active_count": len(req.ActiveDesignationIDs)})
}
