package repository

import (
	"errors"
	"fmt"

	"voucher-backend/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Ошибки доменного уровня, обработчики переводят их в HTTP статусы
var (
	ErrDuplicateDesignation = errors.New("должность с таким названием уже существует")
	ErrDesignationNotFound  = errors.New("должность не найдена")
	ErrVoucherNotFound      = errors.New("ваучер не найден")
	ErrNotRequiredApprover  = errors.New("пользователь не входит в текущий набор согласующих")
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	// TranslateError превращает нарушения уникальных индексов в
	// gorm.ErrDuplicatedKey, на этом держится обработка дубликатов
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return &Repository{
		db: db,
	}, nil
}

// Migrate выполняет автоматическую миграцию всех таблиц
func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&ds.User{},
		&ds.Designation{},
		&ds.UserProfile{},
		&ds.ActiveApprovalDesignation{},
		&ds.Voucher{},
		&ds.Particular{},
		&ds.VoucherApproval{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
