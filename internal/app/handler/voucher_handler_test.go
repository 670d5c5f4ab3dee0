package handler

import (
	"testing"
	"time"

	"voucher-backend/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVoucherResponse(t *testing.T) {
	h := &APIHandler{}

	approvedAt := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)
	voucher := &ds.Voucher{
		VoucherNumber: "VCH0042",
		VoucherDate:   time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		PaymentType:   ds.PaymentCash,
		NameTitle:     ds.TitleMrs,
		PayTo:         "Поставщик",
		Attachment:    "vouchers/attachments/a.pdf",
		Status:        ds.StatusPending,
		Creator:       ds.User{Login: "accountant1"},
		Particulars: []ds.Particular{
			{Description: "Канцелярские товары", Amount: 1500.50},
			{Description: "Транспорт", Amount: 300},
		},
		Approvals: []ds.VoucherApproval{
			{
				Status:     ds.StatusApproved,
				ApprovedAt: approvedAt,
				Approver:   ds.User{Login: "manager"},
			},
		},
	}

	response := h.buildVoucherResponse(voucher, []string{"director", "manager"}, true)

	assert.Equal(t, "VCH0042", response.VoucherNumber)
	assert.Equal(t, "2026-03-01", response.VoucherDate)
	assert.Equal(t, "accountant1", response.CreatedBy)
	assert.Nil(t, response.ChequeNumber)
	assert.Len(t, response.Particulars, 2)
	assert.Equal(t, 1, response.ApprovedCount)
	assert.Equal(t, 0, response.RejectedCount)
	assert.Equal(t, []string{"director", "manager"}, response.RequiredApprovers)

	require.Len(t, response.Approvals, 1)
	assert.Equal(t, "manager", response.Approvals[0].Approver)
	assert.Equal(t, "05 Mar 14:30", response.Approvals[0].ApprovedAt)

	require.Len(t, response.PendingApprovers, 2)
	assert.Equal(t, "director", response.PendingApprovers[0].Name)
	assert.False(t, response.PendingApprovers[0].HasApproved)
	assert.Equal(t, "manager", response.PendingApprovers[1].Name)
	assert.True(t, response.PendingApprovers[1].HasApproved)
}

func TestBuildVoucherResponseWithoutPending(t *testing.T) {
	h := &APIHandler{}

	voucher := &ds.Voucher{
		VoucherNumber: "VCH0001",
		VoucherDate:   time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		Status:        ds.StatusPending,
		Creator:       ds.User{Login: "accountant1"},
	}

	response := h.buildVoucherResponse(voucher, []string{"manager"}, false)
	assert.Nil(t, response.PendingApprovers)
	assert.Equal(t, []string{"manager"}, response.RequiredApprovers)
}
