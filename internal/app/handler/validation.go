package handler

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"voucher-backend/internal/app/ds"
)

// Правила валидации подачи ваучера. Вся валидация выполняется до любой
// записи: при ошибке ничего не сохраняется ни в БД, ни в MinIO.

const maxAttachmentSize = 5 * 1024 * 1024 // 5 MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".doc":  true,
	".docx": true,
}

// validateAttachment проверяет расширение и размер вложения,
// возвращает текст ошибки или пустую строку
func validateAttachment(filename string, size int64) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return fmt.Sprintf("недопустимое расширение файла %q, разрешены: pdf, jpg, jpeg, png, doc, docx", ext)
	}
	if size > maxAttachmentSize {
		return "размер файла не может превышать 5 МБ"
	}
	return ""
}

// validateParticular проверяет позицию расхода, index 1-based для сообщений
func validateParticular(index int, description, amountStr string) (float64, string) {
	if strings.TrimSpace(description) == "" {
		return 0, fmt.Sprintf("описание обязательно в позиции %d", index)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err != nil {
		return 0, fmt.Sprintf("неверная сумма в позиции %d", index)
	}
	if amount <= 0 {
		return 0, fmt.Sprintf("сумма должна быть больше 0 в позиции %d", index)
	}

	return amount, ""
}

// validateChequeNumber применяет правило номера чека: для оплаты чеком
// номер обязателен и состоит только из цифр, для остальных типов оплаты
// номер принудительно очищается независимо от того, что было передано
func validateChequeNumber(paymentType, chequeNumber string) (*string, string) {
	if paymentType != ds.PaymentCheque {
		return nil, ""
	}

	chequeNumber = strings.TrimSpace(chequeNumber)
	if chequeNumber == "" {
		return nil, "номер чека обязателен для оплаты чеком"
	}
	if !isDigits(chequeNumber) {
		return nil, "номер чека должен содержать только цифры"
	}

	return &chequeNumber, ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// validPaymentType проверяет тип оплаты
func validPaymentType(paymentType string) bool {
	switch paymentType {
	case ds.PaymentCash, ds.PaymentCheque, ds.PaymentPettyCash:
		return true
	}
	return false
}

// validNameTitle проверяет обращение к получателю
func validNameTitle(title string) bool {
	switch title {
	case ds.TitleMr, ds.TitleMrs, ds.TitleMs:
		return true
	}
	return false
}
