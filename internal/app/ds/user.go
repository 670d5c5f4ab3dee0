package ds

import (
	"time"

	"voucher-backend/internal/app/role"
)

// 1. Таблица пользователей
type User struct {
	ID          uint      `gorm:"primaryKey"`
	Login       string    `gorm:"type:varchar(50);unique;not null"`
	Password    string    `gorm:"type:varchar(255);not null"`
	FullName    string    `gorm:"type:varchar(100)"`
	Role        role.Role `gorm:"type:int;default:0;not null"` // 0 - бухгалтер, 1 - административный персонал
	IsSuperuser bool      `gorm:"type:boolean;default:false;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// 2. Профиль пользователя (один-к-одному, хранит должность)
type UserProfile struct {
	ID            uint  `gorm:"primaryKey"`
	UserID        uint  `gorm:"not null;uniqueIndex"`
	DesignationID *uint `gorm:"default:null;index"` // Nullable - должность можно переназначить

	User        User         `gorm:"foreignKey:UserID"`
	Designation *Designation `gorm:"foreignKey:DesignationID"`
}
