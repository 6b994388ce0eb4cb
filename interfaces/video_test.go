package interfaces

import (
	"errors"
	"testing"
)

func TestSinkWantsValidate(t *testing.T) {
	tests := []struct {
		name    string
		wants   SinkWants
		wantErr error
	}{
		{name: "zero value", wants: SinkWants{}, wantErr: nil},
		{name: "rotation applied", wants: SinkWants{RotationApplied: true}, wantErr: nil},
		{name: "bounded", wants: SinkWants{MaxPixelCount: 640 * 480}, wantErr: nil},
		{name: "negative budget", wants: SinkWants{MaxPixelCount: -1}, wantErr: ErrInvalidSinkWants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wants.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
