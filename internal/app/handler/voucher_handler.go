package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"voucher-backend/internal/app/ds"
	"voucher-backend/internal/app/dto"
	"voucher-backend/internal/app/repository"
	"voucher-backend/internal/app/role"
	"voucher-backend/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Формат времени решения в ответах API
const approvedAtFormat = "02 Jan 15:04"

// ============ ДОМЕН ВАУЧЕРЫ ============

// CreateVoucher подача нового ваучера
// @Summary Подача ваучера
// @Description Принимает multipart форму с полями ваучера, позициями расхода и вложениями (только бухгалтеры)
// @Tags Vouchers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param voucher_date formData string true "Дата ваучера (YYYY-MM-DD)"
// @Param payment_type formData string true "Тип оплаты: CASH, CHEQUE, PETTY_CASH"
// @Param name_title formData string true "Обращение: MR, MRS, MS"
// @Param pay_to formData string true "Получатель платежа"
// @Param cheque_number formData string false "Номер чека (обязателен для CHEQUE)"
// @Param attachment formData file true "Основное вложение"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} dto.ValidationErrors
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/vouchers [post]
func (h *APIHandler) CreateVoucher(c *gin.Context) {
	userID, _, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	// Вся валидация до любой записи, при ошибке ничего не сохраняется
	errs := dto.ValidationErrors{}

	voucherDate, err := time.Parse("2006-01-02", c.PostForm("voucher_date"))
	if err != nil {
		errs["voucher_date"] = "дата ваучера обязательна в формате YYYY-MM-DD"
	}

	paymentType := c.PostForm("payment_type")
	if !validPaymentType(paymentType) {
		errs["payment_type"] = "тип оплаты должен быть CASH, CHEQUE или PETTY_CASH"
	}

	nameTitle := c.PostForm("name_title")
	if !validNameTitle(nameTitle) {
		errs["name_title"] = "обращение должно быть MR, MRS или MS"
	}

	payTo := c.PostForm("pay_to")
	if payTo == "" {
		errs["pay_to"] = "получатель платежа обязателен"
	}

	// Номер чека: обязателен и только цифры для CHEQUE, иначе
	// принудительно очищается
	chequeNumber, chequeErr := validateChequeNumber(paymentType, c.PostForm("cheque_number"))
	if chequeErr != "" {
		errs["cheque_number"] = chequeErr
	}

	// ---------- Восстанавливаем позиции из формы ----------
	form, err := c.MultipartForm()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверная multipart форма")
		return
	}

	type parsedParticular struct {
		description string
		amount      float64
		file        *multipart.FileHeader
	}

	var particulars []parsedParticular
	i := 0
	for {
		desc, ok := c.GetPostForm(fmt.Sprintf("particulars[%d][description]", i))
		if !ok {
			break
		}
		amountStr := c.PostForm(fmt.Sprintf("particulars[%d][amount]", i))

		amount, msg := validateParticular(i+1, desc, amountStr)
		if msg != "" {
			errs["particulars"] = msg
			break
		}

		p := parsedParticular{description: desc, amount: amount}

		// Необязательное вложение позиции
		fileKey := fmt.Sprintf("particulars[%d][attachment]", i)
		if files := form.File[fileKey]; len(files) > 0 {
			if msg := validateAttachment(files[0].Filename, files[0].Size); msg != "" {
				errs["particulars"] = fmt.Sprintf("вложение в позиции %d: %s", i+1, msg)
				break
			}
			p.file = files[0]
		}

		particulars = append(particulars, p)
		i++
	}

	if _, ok := errs["particulars"]; !ok && len(particulars) == 0 {
		errs["particulars"] = "требуется хотя бы одна позиция"
	}

	// ---------- Основное вложение ----------
	mainFile, err := c.FormFile("attachment")
	if err != nil {
		errs["attachment"] = "основное вложение обязательно"
	} else if msg := validateAttachment(mainFile.Filename, mainFile.Size); msg != "" {
		errs["attachment"] = msg
	}

	if len(errs) > 0 {
		h.validationErrorResponse(c, errs)
		return
	}

	// ---------- Загрузка вложений в MinIO ----------
	var uploaded []string

	mainObject, err := h.uploadAttachment(mainFile, storage.FolderVoucherAttachments)
	if err != nil {
		logrus.Error("Error uploading voucher attachment: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки вложения")
		return
	}
	uploaded = append(uploaded, mainObject)

	newVoucher := repository.NewVoucher{
		VoucherDate:  voucherDate,
		PaymentType:  paymentType,
		NameTitle:    nameTitle,
		PayTo:        payTo,
		ChequeNumber: chequeNumber,
		Attachment:   mainObject,
		CreatedBy:    userID,
	}

	for _, p := range particulars {
		np := repository.NewParticular{
			Description: p.description,
			Amount:      p.amount,
		}
		if p.file != nil {
			object, err := h.uploadAttachment(p.file, storage.FolderParticularAttachments)
			if err != nil {
				logrus.Error("Error uploading particular attachment: ", err)
				h.cleanupUploads(uploaded)
				h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки вложения позиции")
				return
			}
			uploaded = append(uploaded, object)
			np.Attachment = &object
		}
		newVoucher.Particulars = append(newVoucher.Particulars, np)
	}

	// ---------- Атомарное сохранение ----------
	voucher, err := h.Repository.CreateVoucher(newVoucher)
	if err != nil {
		logrus.Error("Error creating voucher: ", err)
		h.cleanupUploads(uploaded)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания ваучера")
		return
	}

	required, err := h.Repository.RequiredApprovers()
	if err != nil {
		logrus.Error("Error resolving required approvers: ", err)
		required = []string{}
	}

	c.JSON(http.StatusCreated, h.buildVoucherResponse(voucher, required, true))
}

// GetVouchers возвращает список ваучеров
// @Summary Список ваучеров
// @Description Возвращает ваучеры с счетчиками решений, бухгалтеры видят только свои
// @Tags Vouchers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.VoucherListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/vouchers [get]
func (h *APIHandler) GetVouchers(c *gin.Context) {
	userID, userRole, isSuperuser, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	// Бухгалтеры видят только свои ваучеры
	var creatorID *uint
	if userRole == role.Accountant && !isSuperuser {
		creatorID = &userID
	}

	vouchers, err := h.Repository.GetVouchers(creatorID)
	if err != nil {
		logrus.Error("Error getting vouchers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения ваучеров")
		return
	}

	required, err := h.Repository.RequiredApprovers()
	if err != nil {
		logrus.Error("Error resolving required approvers: ", err)
		required = []string{}
	}

	responses := make([]dto.VoucherResponse, len(vouchers))
	for i := range vouchers {
		responses[i] = h.buildVoucherResponse(&vouchers[i], required, false)
	}

	c.JSON(http.StatusOK, dto.VoucherListResponse{
		Vouchers: responses,
		Total:    len(responses),
	})
}

// GetVoucher возвращает один ваучер
// @Summary Детали ваучера
// @Description Возвращает полную проекцию ваучера с процентом согласования
// @Tags Vouchers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID ваучера"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/vouchers/{id} [get]
func (h *APIHandler) GetVoucher(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID ваучера")
		return
	}

	voucher, err := h.Repository.GetVoucherByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Ваучер не найден")
			return
		}
		logrus.Error("Error getting voucher: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения ваучера")
		return
	}

	required, err := h.Repository.RequiredApprovers()
	if err != nil {
		logrus.Error("Error resolving required approvers: ", err)
		required = []string{}
	}

	response := h.buildVoucherResponse(voucher, required, true)

	// Процент согласования: доля APPROVED от требуемых, 0 если набор пуст
	percentage := 0.0
	if len(required) > 0 {
		percentage = float64(response.ApprovedCount) / float64(len(required)) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"voucher":             response,
		"approval_percentage": percentage,
	})
}

// ApproveVoucher фиксирует решение согласующего
// @Summary Решение по ваучеру
// @Description Записывает решение APPROVED/REJECTED и пересчитывает статус ваучера (административный персонал или суперпользователь)
// @Tags Vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID ваучера"
// @Param request body dto.RecordDecisionRequest true "Решение"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/vouchers/{id}/approve [post]
func (h *APIHandler) ApproveVoucher(c *gin.Context) {
	userID, _, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID ваучера")
		return
	}

	var req dto.RecordDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		(req.Status != ds.StatusApproved && req.Status != ds.StatusRejected) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "недопустимое значение, ожидается APPROVED или REJECTED"})
		return
	}

	approver, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не найден")
		return
	}

	// Право согласовать проверяется по живому набору внутри транзакции
	voucher, approval, err := h.Repository.RecordDecision(uint(id), approver, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrVoucherNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Ваучер не найден")
			return
		}
		if errors.Is(err, repository.ErrNotRequiredApprover) {
			h.errorResponse(c, http.StatusForbidden, "Вы не входите в текущий набор согласующих этого ваучера")
			return
		}
		logrus.Error("Error recording decision: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка записи решения")
		return
	}

	required, err := h.Repository.RequiredApprovers()
	if err != nil {
		logrus.Error("Error resolving required approvers: ", err)
		required = []string{}
	}

	response := h.buildVoucherResponse(voucher, required, true)

	c.JSON(http.StatusOK, gin.H{
		"voucher": response,
		"approval": gin.H{
			"approver":    approver.Login,
			"approved_at": approval.ApprovedAt.Format(approvedAtFormat),
		},
	})
}

// ============ Вспомогательные функции домена ваучеров ============

// uploadAttachment читает multipart файл и загружает его в MinIO
func (h *APIHandler) uploadAttachment(fh *multipart.FileHeader, folder string) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return h.MinIOClient.UploadFile(data, fh.Filename, folder)
}

// cleanupUploads удаляет уже загруженные объекты при откате подачи
func (h *APIHandler) cleanupUploads(objects []string) {
	for _, object := range objects {
		if err := h.MinIOClient.DeleteFile(object); err != nil {
			logrus.Warnf("Failed to delete uploaded object %s: %v", object, err)
		}
	}
}

// buildVoucherResponse собирает полную проекцию ваучера
func (h *APIHandler) buildVoucherResponse(v *ds.Voucher, required []string, withPending bool) dto.VoucherResponse {
	approvedCount, rejectedCount := repository.CountDecisions(v.Approvals)

	particulars := make([]dto.ParticularResponse, len(v.Particulars))
	for i, p := range v.Particulars {
		particulars[i] = dto.ParticularResponse{
			ID:          p.ID,
			Description: p.Description,
			Amount:      p.Amount,
			Attachment:  p.Attachment,
		}
	}

	approvals := make([]dto.ApprovalResponse, len(v.Approvals))
	approvedBy := make(map[string]bool)
	for i, a := range v.Approvals {
		approvals[i] = dto.ApprovalResponse{
			Approver:   a.Approver.Login,
			Status:     a.Status,
			ApprovedAt: a.ApprovedAt.Format(approvedAtFormat),
		}
		if a.Status == ds.StatusApproved {
			approvedBy[a.Approver.Login] = true
		}
	}

	response := dto.VoucherResponse{
		ID:                v.ID,
		VoucherNumber:     v.VoucherNumber,
		VoucherDate:       v.VoucherDate.Format("2006-01-02"),
		PaymentType:       v.PaymentType,
		NameTitle:         v.NameTitle,
		PayTo:             v.PayTo,
		ChequeNumber:      v.ChequeNumber,
		Attachment:        v.Attachment,
		CreatedBy:         v.Creator.Login,
		CreatedAt:         v.CreatedAt,
		Status:            v.Status,
		Particulars:       particulars,
		Approvals:         approvals,
		RequiredApprovers: required,
		ApprovedCount:     approvedCount,
		RejectedCount:     rejectedCount,
	}

	// Временный URL основного вложения, не критично при ошибке
	if h.MinIOClient != nil {
		if url, err := h.MinIOClient.GetFileURL(v.Attachment); err == nil {
			response.AttachmentURL = url
		}
	}

	if withPending {
		pending := make([]dto.PendingApprover, len(required))
		for i, name := range required {
			pending[i] = dto.PendingApprover{
				Name:        name,
				HasApproved: approvedBy[name],
			}
		}
		response.PendingApprovers = pending
	}

	return response
}
