package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextVoucherNumber(t *testing.T) {
	tests := []struct {
		name     string
		last     string
		expected string
	}{
		{"первый номер при пустой таблице", "", "VCH0001"},
		{"инкремент с дополнением нулями", "VCH0001", "VCH0002"},
		{"переход через десяток", "VCH0009", "VCH0010"},
		{"переход через сотню", "VCH0099", "VCH0100"},
		{"выход за четыре цифры", "VCH9999", "VCH10000"},
		{"продолжение после пяти цифр", "VCH10000", "VCH10001"},
		{"неожиданный формат начинает последовательность заново", "INV-42", "VCH0001"},
		{"мусор после префикса начинает последовательность заново", "VCHabc", "VCH0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextVoucherNumber(tt.last))
		})
	}
}
