package repository

import (
	"sort"

	"voucher-backend/internal/app/ds"
	"voucher-backend/internal/app/role"

	"gorm.io/gorm"
)

// Чистые функции консенсуса. Статус ваучера всегда является функцией от
// сохраненных решений и текущего набора требуемых согласующих, поэтому
// пересчет выполняется полностью при каждом решении, а не инкрементально.

// ResolveApprovers вычисляет логины требуемых согласующих: пользователи
// административного персонала, чья должность входит в активный набор.
// Результат отсортирован и без дубликатов; пустой активный набор дает
// пустой результат.
func ResolveApprovers(profiles []ds.UserProfile, activeDesignationIDs []uint) []string {
	active := make(map[uint]bool, len(activeDesignationIDs))
	for _, id := range activeDesignationIDs {
		active[id] = true
	}

	seen := make(map[string]bool)
	approvers := make([]string, 0)
	for _, p := range profiles {
		if p.DesignationID == nil || !active[*p.DesignationID] {
			continue
		}
		if p.User.Role != role.AdminStaff {
			continue
		}
		if seen[p.User.Login] {
			continue
		}
		seen[p.User.Login] = true
		approvers = append(approvers, p.User.Login)
	}

	sort.Strings(approvers)
	return approvers
}

// ComputeStatus пересчитывает статус ваучера по машине состояний:
//   - пустой набор согласующих: статус не меняется, ваучер без требуемых
//     согласующих не может разрешиться автоматически;
//   - любое решение REJECTED: статус REJECTED;
//   - число решений APPROVED равно числу требуемых: статус APPROVED;
//   - иначе PENDING.
//
// Решения пользователей, выбывших из текущего набора, продолжают
// учитываться как сохранены - пересчет не чистит устаревшие записи.
func ComputeStatus(currentStatus string, requiredCount int, approvals []ds.VoucherApproval) string {
	if requiredCount == 0 {
		return currentStatus
	}

	approvedCount, rejectedCount := CountDecisions(approvals)

	if rejectedCount > 0 {
		return ds.StatusRejected
	}
	if approvedCount == requiredCount {
		return ds.StatusApproved
	}
	return ds.StatusPending
}

// CountDecisions считает решения APPROVED и REJECTED по ваучеру
func CountDecisions(approvals []ds.VoucherApproval) (approved, rejected int) {
	for _, a := range approvals {
		switch a.Status {
		case ds.StatusApproved:
			approved++
		case ds.StatusRejected:
			rejected++
		}
	}
	return approved, rejected
}

// RequiredApprovers возвращает актуальный набор требуемых согласующих.
// Набор вычисляется заново на каждый вызов без кеширования: изменение
// активных должностей немедленно меняет требования для всех ваучеров.
func (r *Repository) RequiredApprovers() ([]string, error) {
	return requiredApprovers(r.db)
}

// requiredApprovers читает набор внутри переданной транзакции, чтобы
// пересчет консенсуса видел последнее зафиксированное состояние
func requiredApprovers(db *gorm.DB) ([]string, error) {
	var activeIDs []uint
	err := db.Model(&ds.ActiveApprovalDesignation{}).
		Where("is_active = ?", true).
		Pluck("designation_id", &activeIDs).Error
	if err != nil {
		return nil, err
	}
	if len(activeIDs) == 0 {
		return []string{}, nil
	}

	var profiles []ds.UserProfile
	err = db.Preload("User").
		Where("designation_id IN ?", activeIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	return ResolveApprovers(profiles, activeIDs), nil
}
