package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequestStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    RequestStatus
		wantErr bool
	}{
		{"PENDING", RequestPending, false},
		{"CONTACTED", RequestContacted, false},
		{"RESOLVED", RequestResolved, false},
		{"resolved", "", true},
		{"DONE", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRequestStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
