package app

import (
	"context"
	"testing"
	"time"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/admin"
	"studentgigs/internal/domain/analytics"
	"studentgigs/internal/security"
)

func newAdminFixture(t *testing.T) (*AdminService, *fakeAdminRepo, *recordingAnalyticsRepo) {
	t.Helper()
	adminRepo := newFakeAdminRepo()
	events := &recordingAnalyticsRepo{}
	jwt := security.NewJWTProvider("test-secret")
	admins := NewAdminService(adminRepo, events, jwt, time.Hour)
	return admins, adminRepo, events
}

func seedAdmin(t *testing.T, admins *AdminService, role admin.Role, email string) *admin.AdminUser {
	t.Helper()
	created, err := admins.CreateAdmin(context.Background(), admin.RoleSuperAdmin, admin.AdminUser{
		Email: email,
		Name:  "Ops",
		Role:  role,
	}, "AdminPass1")
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return created
}

func TestAdminServiceLogin_Success(t *testing.T) {
	admins, _, _ := newAdminFixture(t)
	seedAdmin(t, admins, admin.RoleAdmin, "ops@market.example")

	a, token, err := admins.Login(context.Background(), "ops@market.example", "AdminPass1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if a.Role != admin.RoleAdmin {
		t.Fatalf("unexpected role: %s", a.Role)
	}
}

func TestAdminServiceLogin_DeactivatedForbidden(t *testing.T) {
	admins, _, _ := newAdminFixture(t)
	created := seedAdmin(t, admins, admin.RoleAdmin, "ops@market.example")

	inactive := false
	if _, err := admins.UpdateAdmin(context.Background(), admin.RoleSuperAdmin, created.ID, AdminPatch{Active: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, _, err := admins.Login(context.Background(), "ops@market.example", "AdminPass1"); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAdminServiceCreateAdmin_SuperAdminOnly(t *testing.T) {
	admins, _, _ := newAdminFixture(t)

	_, err := admins.CreateAdmin(context.Background(), admin.RoleAdmin, admin.AdminUser{
		Email: "new@market.example",
		Role:  admin.RoleAdmin,
	}, "AdminPass1")
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := admins.UpdateAdmin(context.Background(), admin.RoleAdmin, common.NewUUID(), AdminPatch{}); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden on update, got %v", err)
	}
}

func TestAdminServiceSummary_CountsEvents(t *testing.T) {
	admins, _, events := newAdminFixture(t)
	_ = events.Create(context.Background(), analytics.Event{Name: "job.created"})
	_ = events.Create(context.Background(), analytics.Event{Name: "job.created"})
	_ = events.Create(context.Background(), analytics.Event{Name: "application.created"})

	summary, err := admins.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary["job.created"] != 2 || summary["application.created"] != 1 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}
