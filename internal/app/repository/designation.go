package repository

import (
	"errors"
	"strings"
	"time"

	"voucher-backend/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для должностей и конфигурации согласования

// CreateDesignation создает должность, название уникально.
// Дубликат ловится уникальным индексом, а не предварительной проверкой:
// два одновременных создания с одним именем предварительную проверку
// проходят оба.
func (r *Repository) CreateDesignation(name string, createdBy uint) (*ds.Designation, error) {
	designation := ds.Designation{
		Name:      strings.TrimSpace(name),
		CreatedBy: &createdBy,
		CreatedAt: time.Now(),
	}

	err := r.db.Create(&designation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateDesignation
		}
		return nil, err
	}

	return &designation, nil
}

// GetAllDesignations возвращает все должности
func (r *Repository) GetAllDesignations() ([]ds.Designation, error) {
	var designations []ds.Designation
	err := r.db.Find(&designations).Error
	return designations, err
}

// GetDesignationByID возвращает должность по ID
func (r *Repository) GetDesignationByID(id uint) (*ds.Designation, error) {
	var designation ds.Designation
	err := r.db.First(&designation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDesignationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &designation, nil
}

// GetActiveDesignationIDs возвращает ID должностей, участвующих сейчас
// в требованиях к согласованию
func (r *Repository) GetActiveDesignationIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.ActiveApprovalDesignation{}).
		Where("is_active = ?", true).
		Order("designation_id").
		Pluck("designation_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// SetActiveDesignations выполняет полную замену набора активных должностей:
// каждая существующая должность помечается активной если ее ID есть в списке,
// иначе неактивной. Операция идемпотентна; updated_by и updated_at
// проставляются на всех записях, включая неизменившиеся.
func (r *Repository) SetActiveDesignations(activeIDs []uint, actorID uint) error {
	activeSet := make(map[uint]bool, len(activeIDs))
	for _, id := range activeIDs {
		activeSet[id] = true
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var designations []ds.Designation
		if err := tx.Find(&designations).Error; err != nil {
			return err
		}

		for _, d := range designations {
			record := ds.ActiveApprovalDesignation{
				DesignationID: d.ID,
				IsActive:      activeSet[d.ID],
				UpdatedBy:     actorID,
				UpdatedAt:     time.Now(),
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "designation_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"is_active", "updated_by", "updated_at"}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
