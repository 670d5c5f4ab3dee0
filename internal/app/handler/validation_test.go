package handler

import (
	"testing"

	"voucher-backend/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateChequeNumber(t *testing.T) {
	t.Run("номер обязателен для оплаты чеком", func(t *testing.T) {
		cheque, msg := validateChequeNumber(ds.PaymentCheque, "")
		assert.Nil(t, cheque)
		assert.Equal(t, "номер чека обязателен для оплаты чеком", msg)
	})

	t.Run("номер из цифр принимается", func(t *testing.T) {
		cheque, msg := validateChequeNumber(ds.PaymentCheque, "1204")
		require.Empty(t, msg)
		require.NotNil(t, cheque)
		assert.Equal(t, "1204", *cheque)
	})

	t.Run("буквы в номере отклоняются", func(t *testing.T) {
		cheque, msg := validateChequeNumber(ds.PaymentCheque, "12A4")
		assert.Nil(t, cheque)
		assert.Equal(t, "номер чека должен содержать только цифры", msg)
	})

	t.Run("пробелы вокруг номера обрезаются", func(t *testing.T) {
		cheque, msg := validateChequeNumber(ds.PaymentCheque, "  7777  ")
		require.Empty(t, msg)
		require.NotNil(t, cheque)
		assert.Equal(t, "7777", *cheque)
	})

	t.Run("для наличных номер принудительно очищается", func(t *testing.T) {
		cheque, msg := validateChequeNumber(ds.PaymentCash, "1204")
		assert.Nil(t, cheque)
		assert.Empty(t, msg)
	})

	t.Run("для мелких расходов номер принудительно очищается", func(t *testing.T) {
		cheque, msg := validateChequeNumber(ds.PaymentPettyCash, "не цифры")
		assert.Nil(t, cheque)
		assert.Empty(t, msg)
	})
}

func TestValidateParticular(t *testing.T) {
	t.Run("корректная позиция", func(t *testing.T) {
		amount, msg := validateParticular(1, "Канцелярские товары", "1500.50")
		assert.Empty(t, msg)
		assert.Equal(t, 1500.50, amount)
	})

	t.Run("пустое описание с номером позиции в сообщении", func(t *testing.T) {
		_, msg := validateParticular(2, "   ", "100")
		assert.Equal(t, "описание обязательно в позиции 2", msg)
	})

	t.Run("нечисловая сумма", func(t *testing.T) {
		_, msg := validateParticular(3, "Транспорт", "сто")
		assert.Equal(t, "неверная сумма в позиции 3", msg)
	})

	t.Run("нулевая сумма отклоняется", func(t *testing.T) {
		_, msg := validateParticular(1, "Транспорт", "0")
		assert.Equal(t, "сумма должна быть больше 0 в позиции 1", msg)
	})

	t.Run("отрицательная сумма отклоняется", func(t *testing.T) {
		_, msg := validateParticular(4, "Транспорт", "-25.00")
		assert.Equal(t, "сумма должна быть больше 0 в позиции 4", msg)
	})
}

func TestValidateAttachment(t *testing.T) {
	t.Run("pdf в пределах лимита", func(t *testing.T) {
		assert.Empty(t, validateAttachment("invoice.pdf", 4*1024*1024))
	})

	t.Run("размер ровно на границе принимается", func(t *testing.T) {
		assert.Empty(t, validateAttachment("scan.jpg", maxAttachmentSize))
	})

	t.Run("превышение лимита отклоняется", func(t *testing.T) {
		msg := validateAttachment("scan.jpg", maxAttachmentSize+1)
		assert.Equal(t, "размер файла не может превышать 5 МБ", msg)
	})

	t.Run("недопустимое расширение", func(t *testing.T) {
		msg := validateAttachment("archive.zip", 1024)
		assert.Contains(t, msg, "недопустимое расширение")
	})

	t.Run("файл без расширения", func(t *testing.T) {
		msg := validateAttachment("receipt", 1024)
		assert.Contains(t, msg, "недопустимое расширение")
	})

	t.Run("регистр расширения не важен", func(t *testing.T) {
		assert.Empty(t, validateAttachment("SCAN.PDF", 1024))
	})

	t.Run("все разрешенные расширения", func(t *testing.T) {
		for _, name := range []string{"a.pdf", "a.jpg", "a.jpeg", "a.png", "a.doc", "a.docx"} {
			assert.Empty(t, validateAttachment(name, 1024), name)
		}
	})
}

func TestValidPaymentType(t *testing.T) {
	assert.True(t, validPaymentType(ds.PaymentCash))
	assert.True(t, validPaymentType(ds.PaymentCheque))
	assert.True(t, validPaymentType(ds.PaymentPettyCash))
	assert.False(t, validPaymentType("CARD"))
	assert.False(t, validPaymentType(""))
	assert.False(t, validPaymentType("cash"))
}

func TestValidNameTitle(t *testing.T) {
	assert.True(t, validNameTitle(ds.TitleMr))
	assert.True(t, validNameTitle(ds.TitleMrs))
	assert.True(t, validNameTitle(ds.TitleMs))
	assert.False(t, validNameTitle("DR"))
	assert.False(t, validNameTitle(""))
}

func TestIsDigits(t *testing.T) {
	assert.True(t, isDigits("0123456789"))
	assert.False(t, isDigits(""))
	assert.False(t, isDigits("12 34"))
	assert.False(t, isDigits("12.34"))
	assert.False(t, isDigits("１２３４")) // полноширинные цифры не принимаются
}
