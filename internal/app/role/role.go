package role

// Role определяет группу пользователя в системе согласования
type Role int

const (
	Accountant Role = iota // Бухгалтер - подает ваучеры
	AdminStaff             // Административный персонал - согласует ваучеры
)

func (r Role) String() string {
	switch r {
	case Accountant:
		return "accountant"
	case AdminStaff:
		return "admin_staff"
	default:
		return "unknown"
	}
}

// Предикаты возможностей. Проверяются на каждый запрос, без кеширования.

// CanSubmitVouchers - подача ваучеров разрешена только бухгалтерам
func CanSubmitVouchers(r Role, isSuperuser bool) bool {
	return r == Accountant
}

// CanRecordDecisions - решения по ваучерам принимает административный
// персонал, суперпользователь имеет переопределение
func CanRecordDecisions(r Role, isSuperuser bool) bool {
	return r == AdminStaff || isSuperuser
}

// CanManageDesignations - управление должностями и набором активных
// должностей доступно только суперпользователю
func CanManageDesignations(r Role, isSuperuser bool) bool {
	return isSuperuser
}
