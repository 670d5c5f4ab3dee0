package repository

import (
	"time"

	"voucher-backend/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы консенсуса согласования

// RecordDecision фиксирует решение согласующего и атомарно пересчитывает
// статус ваучера. Право согласовать проверяется по живому набору требуемых
// согласующих, не по кешу; при отказе ничего не записывается.
// Повторное решение того же согласующего перезаписывает прежнее.
func (r *Repository) RecordDecision(voucherID uint, approver *ds.User, decision string) (*ds.Voucher, *ds.VoucherApproval, error) {
	var approval ds.VoucherApproval

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Блокируем строку ваучера: read-modify-write по одному ваучеру
		// должен быть последовательным, разные ваучеры независимы
		var voucher ds.Voucher
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&voucher, voucherID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrVoucherNotFound
			}
			return err
		}

		required, err := requiredApprovers(tx)
		if err != nil {
			return err
		}
		if !containsApprover(required, approver.Login) {
			return ErrNotRequiredApprover
		}

		// Upsert решения по паре (ваучер, согласующий)
		approval = ds.VoucherApproval{
			VoucherID:  voucherID,
			ApproverID: approver.ID,
			Status:     decision,
			ApprovedAt: time.Now(),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "voucher_id"}, {Name: "approver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "approved_at"}),
		}).Create(&approval).Error
		if err != nil {
			return err
		}

		// Полный пересчет статуса по всем сохраненным решениям
		var approvals []ds.VoucherApproval
		if err := tx.Where("voucher_id = ?", voucherID).Find(&approvals).Error; err != nil {
			return err
		}

		newStatus := ComputeStatus(voucher.Status, len(required), approvals)
		if newStatus != voucher.Status {
			err = tx.Model(&ds.Voucher{}).Where("id = ?", voucherID).
				Update("status", newStatus).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	voucher, err := r.GetVoucherByID(voucherID)
	if err != nil {
		return nil, nil, err
	}

	return voucher, &approval, nil
}

func containsApprover(approvers []string, login string) bool {
	for _, a := range approvers {
		if a == login {
			return true
		}
	}
	return false
}
