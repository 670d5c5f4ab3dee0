package ds

import "time"

// Типы оплаты ваучера
const (
	PaymentCash      = "CASH"
	PaymentCheque    = "CHEQUE"
	PaymentPettyCash = "PETTY_CASH"
)

// Статусы ваучера
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Обращения к получателю платежа
const (
	TitleMr  = "MR"
	TitleMrs = "MRS"
	TitleMs  = "MS"
)

// 5. Таблица ваучеров - единица согласования
type Voucher struct {
	ID            uint      `gorm:"primaryKey"`
	VoucherNumber string    `gorm:"type:varchar(20);unique;not null"` // VCH0001, VCH0002, ...
	VoucherDate   time.Time `gorm:"type:date;not null"`
	PaymentType   string    `gorm:"type:varchar(20);not null"` // CASH, CHEQUE, PETTY_CASH
	NameTitle     string    `gorm:"type:varchar(5);not null"`  // MR, MRS, MS
	PayTo         string    `gorm:"type:varchar(200);not null"`
	ChequeNumber  *string   `gorm:"type:varchar(20);default:null"` // Только для CHEQUE, иначе NULL
	Attachment    string    `gorm:"type:varchar(255);not null"`    // Имя объекта в MinIO
	CreatedBy     uint      `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	// Статус пишется только пересчетом консенсуса, никогда напрямую
	Status string `gorm:"type:varchar(10);default:'PENDING';not null"`

	Creator     User              `gorm:"foreignKey:CreatedBy"`
	Particulars []Particular      `gorm:"foreignKey:VoucherID;constraint:OnDelete:CASCADE"`
	Approvals   []VoucherApproval `gorm:"foreignKey:VoucherID;constraint:OnDelete:CASCADE"`
}

// 6. Таблица позиций расхода - строки ваучера, неизменяемы после подачи
type Particular struct {
	ID          uint    `gorm:"primaryKey"`
	VoucherID   uint    `gorm:"not null;index"`
	Description string  `gorm:"type:varchar(300);not null"`
	Amount      float64 `gorm:"type:decimal(12,2);not null"`
	Attachment  *string `gorm:"type:varchar(255);default:null"` // Nullable - чек/счет по позиции
}

// 7. Таблица решений согласующих - не более одной записи на пару
// (ваучер, согласующий), повторное решение перезаписывает прежнее
type VoucherApproval struct {
	ID         uint      `gorm:"primaryKey"`
	VoucherID  uint      `gorm:"not null;index;uniqueIndex:idx_voucher_approver"`
	ApproverID uint      `gorm:"not null;index;uniqueIndex:idx_voucher_approver"`
	Status     string    `gorm:"type:varchar(10);not null"` // APPROVED или REJECTED
	ApprovedAt time.Time `gorm:"not null"`

	Approver User `gorm:"foreignKey:ApproverID"`
}
