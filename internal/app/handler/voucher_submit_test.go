package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"voucher-backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Роутер с подставленным аутентифицированным бухгалтером: проверяется
// валидация подачи, до хранилищ запрос не доходит
func setupSubmitRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &APIHandler{}

	r := gin.New()
	r.POST("/vouchers", func(c *gin.Context) {
		c.Set("userID", uint(1))
		c.Set("userLogin", "accountant1")
		c.Set("userRole", role.Accountant)
		c.Set("isSuperuser", false)
	}, h.CreateVoucher)
	return r
}

type voucherForm struct {
	fields map[string]string
	files  map[string][]byte
}

func submitVoucherForm(t *testing.T, r http.Handler, form voucherForm) *httptest.ResponseRecorder {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for key, value := range form.fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	for key, content := range form.files {
		w, err := mw.CreateFormFile(key, "scan.pdf")
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/vouchers", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func validVoucherFields() map[string]string {
	return map[string]string{
		"voucher_date": "2026-03-01",
		"payment_type": "CASH",
		"name_title":   "MR",
		"pay_to":       "Поставщик",
	}
}

func decodeValidationErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var errs map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errs))
	return errs
}

func TestCreateVoucherWithoutParticulars(t *testing.T) {
	r := setupSubmitRouter()

	rec := submitVoucherForm(t, r, voucherForm{
		fields: validVoucherFields(),
		files:  map[string][]byte{"attachment": []byte("%PDF-1.4")},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, "требуется хотя бы одна позиция", errs["particulars"])
}

func TestCreateVoucherParticularErrorsUseOneBasedIndex(t *testing.T) {
	r := setupSubmitRouter()

	fields := validVoucherFields()
	fields["particulars[0][description]"] = "Канцелярские товары"
	fields["particulars[0][amount]"] = "1500.50"
	fields["particulars[1][description]"] = "Транспорт"
	fields["particulars[1][amount]"] = "-10"

	rec := submitVoucherForm(t, r, voucherForm{
		fields: fields,
		files:  map[string][]byte{"attachment": []byte("%PDF-1.4")},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, "сумма должна быть больше 0 в позиции 2", errs["particulars"])
}

func TestCreateVoucherChequeNumberRequired(t *testing.T) {
	r := setupSubmitRouter()

	fields := validVoucherFields()
	fields["payment_type"] = "CHEQUE"
	fields["particulars[0][description]"] = "Канцелярские товары"
	fields["particulars[0][amount]"] = "100"

	rec := submitVoucherForm(t, r, voucherForm{
		fields: fields,
		files:  map[string][]byte{"attachment": []byte("%PDF-1.4")},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, "номер чека обязателен для оплаты чеком", errs["cheque_number"])
}

func TestCreateVoucherMissingAttachment(t *testing.T) {
	r := setupSubmitRouter()

	fields := validVoucherFields()
	fields["particulars[0][description]"] = "Канцелярские товары"
	fields["particulars[0][amount]"] = "100"

	rec := submitVoucherForm(t, r, voucherForm{fields: fields})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decodeValidationErrors(t, rec)
	assert.Equal(t, "основное вложение обязательно", errs["attachment"])
}
