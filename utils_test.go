package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasDistinctDigits(t *testing.T) {
	tests := []struct {
		name string
		id   TicketID
		want bool
	}{
		{"all distinct", 123456, true},
		{"repeated digit", 112345, false},
		{"leading zero form", 12345, true},   // 012345
		{"zero inside", 102345, true},        // 102345
		{"double zero", 1234, false},         // 001234
		{"all same", 555555, false},
		{"too many digits", 1234567, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasDistinctDigits(tt.id))
		})
	}
}

func TestFormatTicket(t *testing.T) {
	assert.Equal(t, "123456", FormatTicket(123456))
	assert.Equal(t, "012345", FormatTicket(12345))
	assert.Equal(t, "000000", FormatTicket(0))
}
