package main

import (
	"testing"

	"github.com/dshills/textcore/internal/locale"
)

func TestBuildMask(t *testing.T) {
	tests := []struct {
		spec    string
		display string
		wantErr bool
	}{
		{"date", "__/__/____", false},
		{"date:yyyy-MM-dd", "____-__-__", false},
		{"pattern:(000) 000-0000", "(___) ___-____", false},
		{"integer:4", "", false},
		{"integer:x", "", true},
		{"number:#0.0", "", false},
		{"money", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := buildMask(tt.spec, locale.Default())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if tt.display != "" && f.Display() != tt.display {
				t.Errorf("Display = %q, want %q", f.Display(), tt.display)
			}
		})
	}
}
