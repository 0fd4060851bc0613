package auth

import "testing"

func TestResolveRole(t *testing.T) {
	cases := []struct {
		name     string
		app      map[string]any
		user     map[string]any
		expected string
	}{
		{"app role staff", map[string]any{"role": "staff"}, nil, RoleStaff},
		{"app role wins over user type", map[string]any{"role": "admin"}, map[string]any{"user_type": "volunteer"}, RoleAdmin},
		{"self-set admin ignored", map[string]any{"provider": "email"}, map[string]any{"user_type": "admin"}, RoleAdopter},
		{"self-set staff ignored", nil, map[string]any{"user_type": "staff"}, RoleAdopter},
		{"self-set volunteer", nil, map[string]any{"user_type": "volunteer"}, RoleVolunteer},
		{"unknown", map[string]any{"role": "owner"}, map[string]any{"user_type": "wizard"}, RoleAdopter},
		{"empty", nil, nil, RoleAdopter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveRole(tc.app, tc.user); got != tc.expected {
				t.Fatalf("got %s, want %s", got, tc.expected)
			}
		})
	}
}

func TestSanitizeProfile(t *testing.T) {
	in := map[string]any{"full_name": "Ali", "role": "admin", "user_type": "staff"}
	out := SanitizeProfile(in)
	if _, ok := out["role"]; ok {
		t.Fatalf("role must be dropped: %v", out)
	}
	if _, ok := out["user_type"]; ok {
		t.Fatalf("privileged user_type must be dropped: %v", out)
	}
	if out["full_name"] != "Ali" || in["role"] != "admin" {
		t.Fatalf("unexpected copy %v / input %v", out, in)
	}

	if got := SanitizeProfile(map[string]any{"user_type": "volunteer"}); got["user_type"] != "volunteer" {
		t.Fatalf("volunteer user_type should be kept: %v", got)
	}
	if got := SanitizeProfile(nil); got == nil || len(got) != 0 {
		t.Fatalf("nil profile should give empty map, got %v", got)
	}
}
