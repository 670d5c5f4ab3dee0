package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"voucher-backend/internal/app/ds"

	"gorm.io/gorm"
)

// Ключ advisory lock для выдачи номеров ваучеров. Схема "прочитать максимум
// и увеличить" небезопасна при конкурентных вставках, поэтому выдача номера
// сериализуется блокировкой на время транзакции.
const voucherNumberLockID = 874011

// NewParticular - позиция расхода при подаче ваучера
type NewParticular struct {
	Description string
	Amount      float64
	Attachment  *string
}

// NewVoucher - данные для подачи нового ваучера
type NewVoucher struct {
	VoucherDate  time.Time
	PaymentType  string
	NameTitle    string
	PayTo        string
	ChequeNumber *string
	Attachment   string
	CreatedBy    uint
	Particulars  []NewParticular
}

// NextVoucherNumber вычисляет следующий номер по последнему выданному:
// VCH + суффикс последнего + 1 с дополнением нулями до 4 цифр,
// VCH0001 если номеров еще нет
func NextVoucherNumber(last string) string {
	if strings.HasPrefix(last, "VCH") {
		num, err := strconv.Atoi(last[3:])
		if err == nil {
			return fmt.Sprintf("VCH%04d", num+1)
		}
	}
	return "VCH0001"
}

// CreateVoucher атомарно сохраняет ваучер и его позиции, присваивая
// следующий последовательный номер. Статус нового ваучера всегда PENDING.
func (r *Repository) CreateVoucher(data NewVoucher) (*ds.Voucher, error) {
	voucher := ds.Voucher{
		VoucherDate:  data.VoucherDate,
		PaymentType:  data.PaymentType,
		NameTitle:    data.NameTitle,
		PayTo:        data.PayTo,
		ChequeNumber: data.ChequeNumber,
		Attachment:   data.Attachment,
		CreatedBy:    data.CreatedBy,
		CreatedAt:    time.Now(),
		Status:       ds.StatusPending,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Сериализуем выдачу номера до конца транзакции
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", voucherNumberLockID).Error; err != nil {
			return err
		}

		var last ds.Voucher
		err := tx.Order("id DESC").First(&last).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		voucher.VoucherNumber = NextVoucherNumber(last.VoucherNumber)

		if err := tx.Create(&voucher).Error; err != nil {
			return err
		}

		for _, p := range data.Particulars {
			particular := ds.Particular{
				VoucherID:   voucher.ID,
				Description: p.Description,
				Amount:      p.Amount,
				Attachment:  p.Attachment,
			}
			if err := tx.Create(&particular).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetVoucherByID(voucher.ID)
}

// GetVoucherByID возвращает ваучер с позициями и решениями
func (r *Repository) GetVoucherByID(id uint) (*ds.Voucher, error) {
	var voucher ds.Voucher
	err := r.db.Preload("Creator").
		Preload("Particulars").
		Preload("Approvals").
		Preload("Approvals.Approver").
		First(&voucher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVoucherNotFound
	}
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

// GetVouchers возвращает ваучеры, при creatorID != nil - только созданные
// этим пользователем (бухгалтеры видят только свои)
func (r *Repository) GetVouchers(creatorID *uint) ([]ds.Voucher, error) {
	query := r.db.Preload("Creator").
		Preload("Particulars").
		Preload("Approvals").
		Preload("Approvals.Approver").
		Order("id DESC")
	if creatorID != nil {
		query = query.Where("created_by = ?", *creatorID)
	}

	var vouchers []ds.Voucher
	err := query.Find(&vouchers).Error
	return vouchers, err
}
