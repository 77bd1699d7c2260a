package models

import "testing"

func TestInstallScopeIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    InstallScope
		want bool
	}{
		{name: "global", s: ScopeGlobal, want: true},
		{name: "local", s: ScopeLocal, want: true},
		{name: "empty", s: InstallScope(""), want: false},
		{name: "invalid", s: InstallScope("remote"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.s.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidInstallScopes(t *testing.T) {
	t.Parallel()

	scopes := ValidInstallScopes()
	if len(scopes) != 2 {
		t.Fatalf("ValidInstallScopes() returned %d scopes, want 2", len(scopes))
	}
	for _, s := range scopes {
		if !s.IsValid() {
			t.Errorf("scope %q from ValidInstallScopes() is not valid", s)
		}
	}
}
