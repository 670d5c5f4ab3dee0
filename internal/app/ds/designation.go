package ds

import "time"

// 3. Таблица должностей - справочник ролей, дающих право согласования
type Designation struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedBy *uint     `gorm:"default:null"` // Nullable - создатель может быть удален
	CreatedAt time.Time `gorm:"not null"`

	Creator *User `gorm:"foreignKey:CreatedBy"`
}

// 4. Таблица активных должностей согласования - флаг участия должности
// в требованиях к согласованию, ровно одна запись на должность
type ActiveApprovalDesignation struct {
	ID            uint      `gorm:"primaryKey"`
	DesignationID uint      `gorm:"not null;uniqueIndex"`
	IsActive      bool      `gorm:"type:boolean;default:true;not null"`
	UpdatedBy     uint      `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`

	Designation Designation `gorm:"foreignKey:DesignationID"`
	Updater     User        `gorm:"foreignKey:UpdatedBy"`
}
