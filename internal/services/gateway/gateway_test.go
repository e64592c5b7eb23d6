package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Provider
		wantErr bool
	}{
		{"empty defaults to khalti", "", ProviderKhalti, false},
		{"khalti", "khalti", ProviderKhalti, false},
		{"esewa", "esewa", ProviderEsewa, false},
		{"unknown provider", "paypal", "", true},
		{"case sensitive", "Khalti", "", true},
		{"whitespace is not trimmed", " khalti", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProvider(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
