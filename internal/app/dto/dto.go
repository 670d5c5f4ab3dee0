package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationErrors - ошибки валидации по полям, индексы позиций 1-based
type ValidationErrors map[string]string

// ============ Пользователи (Users) ============

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Login         string `json:"login" binding:"required,min=3,max=50"`
	Password      string `json:"password" binding:"required,min=6"`
	FullName      string `json:"full_name"`
	Role          int    `json:"role" binding:"oneof=0 1"` // 0 - бухгалтер, 1 - административный персонал
	DesignationID *uint  `json:"designation_id"`           // Только для административного персонала
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Login       string `json:"login"`
	FullName    string `json:"full_name"`
	Role        int    `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
}

// ============ Должности (Designations) ============

type CreateDesignationRequest struct {
	Name string `json:"name" binding:"required"`
}

type DesignationResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ApprovalControlResponse - текущая конфигурация согласования
type ApprovalControlResponse struct {
	ActiveDesignationIDs []uint                `json:"active_designation_ids"`
	AllDesignations      []DesignationResponse `json:"all_designations"`
}

// SetActiveDesignationsRequest - полная замена набора активных должностей,
// все должности вне списка становятся неактивными
type SetActiveDesignationsRequest struct {
	ActiveDesignationIDs []uint `json:"active_designation_ids"`
}

// ============ Ваучеры (Vouchers) ============

type ParticularResponse struct {
	ID          uint    `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Attachment  *string `json:"attachment,omitempty"`
}

type ApprovalResponse struct {
	Approver   string `json:"approver"`
	Status     string `json:"status"`
	ApprovedAt string `json:"approved_at"` // формат "02 Jan 15:04"
}

// PendingApprover - требуемый согласующий и отметка о его решении
type PendingApprover struct {
	Name        string `json:"name"`
	HasApproved bool   `json:"has_approved"`
}

// VoucherResponse - полная проекция ваучера
type VoucherResponse struct {
	ID                uint                 `json:"id"`
	VoucherNumber     string               `json:"voucher_number"`
	VoucherDate       string               `json:"voucher_date"` // YYYY-MM-DD
	PaymentType       string               `json:"payment_type"`
	NameTitle         string               `json:"name_title"`
	PayTo             string               `json:"pay_to"`
	ChequeNumber      *string              `json:"cheque_number"`
	Attachment        string               `json:"attachment"`
	AttachmentURL     string               `json:"attachment_url,omitempty"`
	CreatedBy         string               `json:"created_by"`
	CreatedAt         time.Time            `json:"created_at"`
	Status            string               `json:"status"`
	Particulars       []ParticularResponse `json:"particulars"`
	Approvals         []ApprovalResponse   `json:"approvals"`
	RequiredApprovers []string             `json:"required_approvers"`
	ApprovedCount     int                  `json:"approved_count"`
	RejectedCount     int                  `json:"rejected_count"`
	PendingApprovers  []PendingApprover    `json:"pending_approvers,omitempty"`
}

type VoucherListResponse struct {
	Vouchers []VoucherResponse `json:"vouchers"`
	Total    int               `json:"total"`
}

// RecordDecisionRequest - решение согласующего по ваучеру
type RecordDecisionRequest struct {
	Status string `json:"status" binding:"required"` // APPROVED или REJECTED
}
