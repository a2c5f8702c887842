package authz

import (
	"errors"
	"testing"

	"github.com/hirewire/clientcore/session"
)

func newTestRoutes(t *testing.T) *RouteTable {
	t.Helper()

	table := NewRouteTable()
	if err := table.Register("/jobs", Roles(session.RoleSeeker)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := table.Register("/post-job", Roles(session.RoleEmployer)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := table.Register("/profile", RoleSet(0)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return table
}

func TestRouteTableRegisterErrors(t *testing.T) {
	table := newTestRoutes(t)

	if err := table.Register("", Roles(session.RoleSeeker)); err == nil {
		t.Fatal("empty view name must be rejected")
	}
	if err := table.Register("/jobs", Roles(session.RoleEmployer)); err == nil {
		t.Fatal("duplicate registration must be rejected")
	}

	table.Freeze()
	if err := table.Register("/late", Roles(session.RoleSeeker)); err == nil {
		t.Fatal("registration after Freeze must be rejected")
	}
}

func TestRouteTableRequired(t *testing.T) {
	table := newTestRoutes(t)

	required, err := table.Required("/jobs")
	if err != nil {
		t.Fatalf("Required failed: %v", err)
	}
	if !required.Has(session.RoleSeeker) {
		t.Fatal("declared role set lost")
	}

	if _, err := table.Required("/nowhere"); !errors.Is(err, ErrRouteUnknown) {
		t.Fatalf("expected ErrRouteUnknown, got %v", err)
	}
}

func TestRouteTableCheck(t *testing.T) {
	table := newTestRoutes(t)
	table.Freeze()

	tests := []struct {
		name    string
		view    string
		loading bool
		sess    *session.Session
		want    VerdictKind
	}{
		{name: "registered view allows matching role", view: "/jobs", sess: seekerSession(), want: VerdictAllow},
		{name: "registered view bounces other role", view: "/jobs", sess: employerSession(), want: VerdictRedirectToRoleHome},
		{name: "any-role view admits all", view: "/profile", sess: employerSession(), want: VerdictAllow},
		{name: "registered view pending while loading", view: "/jobs", loading: true, want: VerdictPending},
		{name: "unknown view pending while loading", view: "/nowhere", loading: true, want: VerdictPending},
		{name: "unknown view without session goes to login", view: "/nowhere", want: VerdictRedirectToLogin},
		{name: "unknown view with session is unauthorized", view: "/nowhere", sess: seekerSession(), want: VerdictRedirectToUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Check(tt.view, tt.loading, tt.sess)
			if got.Kind != tt.want {
				t.Fatalf("Check = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}
