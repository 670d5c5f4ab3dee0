package repository

import (
	"time"

	"voucher-backend/internal/app/ds"
	"voucher-backend/internal/app/role"

	"gorm.io/gorm"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	return count > 0, err
}

// CreateUser создает пользователя и, для административного персонала с
// указанной должностью, его профиль - в одной транзакции
func (r *Repository) CreateUser(login, password, fullName string, userRole role.Role, designationID *uint) (*ds.User, error) {
	user := ds.User{
		Login:     login,
		Password:  password,
		FullName:  fullName,
		Role:      userRole,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		// Профиль с должностью имеет смысл только для согласующих
		if userRole == role.AdminStaff && designationID != nil {
			profile := ds.UserProfile{
				UserID:        user.ID,
				DesignationID: designationID,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetProfileByUserID возвращает профиль пользователя (если есть)
func (r *Repository) GetProfileByUserID(userID uint) (*ds.UserProfile, error) {
	var profile ds.UserProfile
	err := r.db.Preload("Designation").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
