package domain

import "testing"

func TestIdentity_KeyNamespacing(t *testing.T) {
	cases := []struct {
		name string
		id   Identity
		key  string
	}{
		{"user", UserIdentity("abc123"), "user:abc123"},
		{"ip", IPIdentity("203.0.113.7"), "ip:203.0.113.7"},
		{"ip localhost placeholder", IPIdentity("localhost"), "ip:localhost"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.id.Key(); got != tc.key {
				t.Fatalf("Key() = %q; want %q", got, tc.key)
			}
		})
	}

	// Same raw value under different kinds must produce distinct keys.
	if UserIdentity("x").Key() == IPIdentity("x").Key() {
		t.Fatalf("user and ip namespaces collide")
	}
}

func TestIdentity_Authenticated(t *testing.T) {
	if !UserIdentity("abc").Authenticated() {
		t.Fatalf("user identity should be authenticated")
	}
	if IPIdentity("203.0.113.7").Authenticated() {
		t.Fatalf("ip identity should not be authenticated")
	}
}
