package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"voucher-backend/internal/app/ds"
	"voucher-backend/internal/app/dsn"
	"voucher-backend/internal/app/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционные тесты против реального Postgres включаются через
// DB_DSN_TEST=1 и стандартные переменные подключения к базе
func setupTestRepository(t *testing.T) *Repository {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}

	repo, err := New(dsn.FromEnv())
	require.NoError(t, err)
	require.NoError(t, repo.Migrate())
	return repo
}

// uniq добавляет суффикс, чтобы тесты можно было гонять повторно
// против одной базы без конфликтов уникальности
func uniq(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func createApprover(t *testing.T, repo *Repository, designationID uint) *ds.User {
	t.Helper()
	user, err := repo.CreateUser(uniq("approver"), "secret", "Согласующий", role.AdminStaff, &designationID)
	require.NoError(t, err)
	return user
}

func submitVoucher(t *testing.T, repo *Repository, creatorID uint) *ds.Voucher {
	t.Helper()
	voucher, err := repo.CreateVoucher(NewVoucher{
		VoucherDate: time.Now(),
		PaymentType: ds.PaymentCash,
		NameTitle:   ds.TitleMr,
		PayTo:       "Поставщик",
		Attachment:  "vouchers/attachments/test.pdf",
		CreatedBy:   creatorID,
		Particulars: []NewParticular{
			{Description: "Канцелярские товары", Amount: 1500.50},
		},
	})
	require.NoError(t, err)
	return voucher
}

func TestDesignationLifecycle(t *testing.T) {
	repo := setupTestRepository(t)

	admin, err := repo.CreateUser(uniq("admin"), "secret", "Администратор", role.AdminStaff, nil)
	require.NoError(t, err)

	name := uniq("Бухгалтер-контролер")
	designation, err := repo.CreateDesignation(name, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, name, designation.Name)

	// повторное создание с тем же именем отклоняется
	_, err = repo.CreateDesignation(name, admin.ID)
	assert.ErrorIs(t, err, ErrDuplicateDesignation)

	// активация и деактивация через полную замену набора
	require.NoError(t, repo.SetActiveDesignations([]uint{designation.ID}, admin.ID))
	activeIDs, err := repo.GetActiveDesignationIDs()
	require.NoError(t, err)
	assert.Contains(t, activeIDs, designation.ID)

	// повторная установка того же набора идемпотентна
	require.NoError(t, repo.SetActiveDesignations([]uint{designation.ID}, admin.ID))
	repeatIDs, err := repo.GetActiveDesignationIDs()
	require.NoError(t, err)
	assert.Equal(t, activeIDs, repeatIDs)

	require.NoError(t, repo.SetActiveDesignations([]uint{}, admin.ID))
	activeIDs, err = repo.GetActiveDesignationIDs()
	require.NoError(t, err)
	assert.NotContains(t, activeIDs, designation.ID)
}

func TestVoucherNumberSequence(t *testing.T) {
	repo := setupTestRepository(t)

	accountant, err := repo.CreateUser(uniq("accountant"), "secret", "Бухгалтер", role.Accountant, nil)
	require.NoError(t, err)

	first := submitVoucher(t, repo, accountant.ID)
	second := submitVoucher(t, repo, accountant.ID)

	assert.Equal(t, ds.StatusPending, first.Status)
	assert.NotEqual(t, first.VoucherNumber, second.VoucherNumber)
	assert.Equal(t, NextVoucherNumber(first.VoucherNumber), second.VoucherNumber)
}

func TestApprovalConsensusFlow(t *testing.T) {
	repo := setupTestRepository(t)

	admin, err := repo.CreateUser(uniq("admin"), "secret", "Администратор", role.AdminStaff, nil)
	require.NoError(t, err)
	accountant, err := repo.CreateUser(uniq("accountant"), "secret", "Бухгалтер", role.Accountant, nil)
	require.NoError(t, err)

	designation, err := repo.CreateDesignation(uniq("Финансовый директор"), admin.ID)
	require.NoError(t, err)
	require.NoError(t, repo.SetActiveDesignations([]uint{designation.ID}, admin.ID))

	approver := createApprover(t, repo, designation.ID)
	voucher := submitVoucher(t, repo, accountant.ID)

	// бухгалтер не входит в набор согласующих
	_, _, err = repo.RecordDecision(voucher.ID, accountant, ds.StatusApproved)
	assert.ErrorIs(t, err, ErrNotRequiredApprover)

	// единственный требуемый согласующий одобряет - ваучер APPROVED
	updated, approvalRecord, err := repo.RecordDecision(voucher.ID, approver, ds.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusApproved, updated.Status)
	assert.Equal(t, ds.StatusApproved, approvalRecord.Status)

	// повторное решение того же согласующего перезаписывает запись
	updated, _, err = repo.RecordDecision(voucher.ID, approver, ds.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusRejected, updated.Status)
	assert.Len(t, updated.Approvals, 1)

	// несуществующий ваучер
	_, _, err = repo.RecordDecision(0, approver, ds.StatusApproved)
	assert.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestApprovalSetChangeBetweenDecisions(t *testing.T) {
	repo := setupTestRepository(t)

	admin, err := repo.CreateUser(uniq("admin"), "secret", "Администратор", role.AdminStaff, nil)
	require.NoError(t, err)
	accountant, err := repo.CreateUser(uniq("accountant"), "secret", "Бухгалтер", role.Accountant, nil)
	require.NoError(t, err)

	designationA, err := repo.CreateDesignation(uniq("Менеджер"), admin.ID)
	require.NoError(t, err)
	designationB, err := repo.CreateDesignation(uniq("Директор"), admin.ID)
	require.NoError(t, err)

	approverA := createApprover(t, repo, designationA.ID)
	approverB := createApprover(t, repo, designationB.ID)

	// активен только набор A, его согласующий одобряет ваучер
	require.NoError(t, repo.SetActiveDesignations([]uint{designationA.ID}, admin.ID))
	voucher := submitVoucher(t, repo, accountant.ID)

	updated, _, err := repo.RecordDecision(voucher.ID, approverA, ds.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusApproved, updated.Status)

	// расширение набора до A+B: согласующий B видит недостаток одобрений,
	// его решение пересчитывает статус по новому набору
	require.NoError(t, repo.SetActiveDesignations([]uint{designationA.ID, designationB.ID}, admin.ID))

	updated, _, err = repo.RecordDecision(voucher.ID, approverB, ds.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusApproved, updated.Status)
	assert.Len(t, updated.Approvals, 2)
}
