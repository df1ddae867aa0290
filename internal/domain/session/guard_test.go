package session

import "testing"

func TestGuard(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		path          string
		want          string
		redirect      bool
	}{
		{"anon protected", false, "/users", LoginPath, true},
		{"anon home", false, "/", LoginPath, true},
		{"anon login", false, LoginPath, "", false},
		{"anon health", false, "/health", "", false},
		{"anon static", false, "/static/panel.css", "", false},
		{"auth login", true, LoginPath, HomePath, true},
		{"auth protected", true, "/children", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, redirect := Guard(tc.authenticated, tc.path)
			if got != tc.want || redirect != tc.redirect {
				t.Fatalf("Guard(%v,%q) = %q,%v want %q,%v", tc.authenticated, tc.path, got, redirect, tc.want, tc.redirect)
			}
		})
	}
}
