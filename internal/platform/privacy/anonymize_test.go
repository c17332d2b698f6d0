package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskMobile(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"ten digits", "9876543210", "******3210"},
		{"surrounding space", " 9876543210 ", "******3210"},
		{"short value", "123", "***"},
		{"exactly four", "1234", "****"},
		{"blank", "  ", ""},
		{"non ascii digits", "९८७६५४३२१०", "******३२१०"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, MaskMobile(tt.input))
		})
	}
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "R. K.", MaskName("Ram Kumar"))
	assert.Equal(t, "S.", MaskName(" Sita "))
	assert.Equal(t, "", MaskName(""))
}
