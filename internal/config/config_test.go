package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  Config{TokenCodeLength: 8, PublicRateLimit: 30},
		},
		{
			name:    "code length too short",
			cfg:     Config{TokenCodeLength: 4, PublicRateLimit: 30},
			wantErr: true,
		},
		{
			name:    "code length too long",
			cfg:     Config{TokenCodeLength: 64, PublicRateLimit: 30},
			wantErr: true,
		},
		{
			name: "code length upper bound",
			cfg:  Config{TokenCodeLength: 32, PublicRateLimit: 1},
		},
		{
			name:    "zero rate limit",
			cfg:     Config{TokenCodeLength: 8, PublicRateLimit: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
