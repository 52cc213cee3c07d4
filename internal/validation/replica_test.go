package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReplicaID(t *testing.T) {
	tests := []struct {
		name      string
		replicaID string
		wantErr   bool
	}{
		{
			name:      "uuid",
			replicaID: "550e8400-e29b-41d4-a716-446655440000",
			wantErr:   false,
		},
		{
			name:      "short name",
			replicaID: "replica-a",
			wantErr:   false,
		},
		{
			name:      "underscores",
			replicaID: "laptop_home",
			wantErr:   false,
		},
		{
			name:      "empty",
			replicaID: "",
			wantErr:   true,
		},
		{
			name:      "too long",
			replicaID: strings.Repeat("a", MaxReplicaIDLen+1),
			wantErr:   true,
		},
		{
			name:      "spaces",
			replicaID: "my replica",
			wantErr:   true,
		},
		{
			name:      "control bytes",
			replicaID: "replica\x00a",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReplicaID(tt.replicaID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
