package models_test

import (
	"errors"
	"strings"
	"testing"

	"notenledger-backend/models"
)

func TestUserCreateHashesAndStripsPassword(t *testing.T) {
	repo := models.UserRepo{DB: newWorkbook(t)}

	created, err := repo.Create(admin, models.UserInput{
		Name:     "Vik",
		Email:    "vik@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UserID != "USR001" {
		t.Errorf("User_ID = %q, want USR001", created.UserID)
	}
	if created.Password != "" {
		t.Error("Create echoed the credential hash")
	}
	if created.Role != models.RoleViewer {
		t.Errorf("Role default = %q, want Viewer", created.Role)
	}
	if created.Active != "TRUE" {
		t.Errorf("Active default = %q, want TRUE", created.Active)
	}

	// The stored hash verifies the raw password and is never the plain text.
	stored, err := repo.FindByEmail("VIK@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if stored.Password == "" || stored.Password == "s3cret-pass" || !strings.HasPrefix(stored.Password, "$2") {
		t.Fatalf("stored credential looks wrong: %q", stored.Password)
	}
	if err := stored.ComparePassword("s3cret-pass"); err != nil {
		t.Errorf("ComparePassword: %v", err)
	}
	if err := stored.ComparePassword("wrong"); err == nil {
		t.Error("ComparePassword accepted a wrong password")
	}
}

func TestUserListAndGetAreSanitized(t *testing.T) {
	repo := models.UserRepo{DB: newWorkbook(t)}
	if _, err := repo.Create(admin, models.UserInput{Name: "Vik", Email: "vik@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Password != "" {
		t.Fatalf("List leaked the hash: %+v", list)
	}
	got, err := repo.Get("USR001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Password != "" {
		t.Error("Get leaked the hash")
	}
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	repo := models.UserRepo{DB: newWorkbook(t)}
	if _, err := repo.Create(admin, models.UserInput{Email: "vik@example.com", Password: "pw123456"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(admin, models.UserInput{Email: "VIK@EXAMPLE.COM", Password: "pw123456"}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("duplicate email = %v, want ErrValidation", err)
	}
}

func TestUserMutationsRequireAdmin(t *testing.T) {
	repo := models.UserRepo{DB: newWorkbook(t)}
	if _, err := repo.Create(viewer, models.UserInput{Email: "x@example.com", Password: "pw123456"}); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("viewer Create = %v, want ErrPermissionDenied", err)
	}
	if _, err := repo.Update(viewer, "USR001", models.UserPatch{}); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("viewer Update = %v, want ErrPermissionDenied", err)
	}
	if err := repo.Remove(viewer, "USR001"); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("viewer Remove = %v, want ErrPermissionDenied", err)
	}
}

func TestUserUpdateRehashesSuppliedPassword(t *testing.T) {
	repo := models.UserRepo{DB: newWorkbook(t)}
	if _, err := repo.Create(admin, models.UserInput{Email: "vik@example.com", Password: "oldpass123"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(admin, "USR001", models.UserPatch{Name: str("Vikram"), Password: str("newpass456")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Vikram" {
		t.Errorf("Name = %q", updated.Name)
	}
	if updated.Password != "" {
		t.Error("Update echoed the credential hash")
	}

	stored, err := repo.FindByEmail("vik@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if err := stored.ComparePassword("newpass456"); err != nil {
		t.Errorf("new password not accepted: %v", err)
	}
	if err := stored.ComparePassword("oldpass123"); err == nil {
		t.Error("old password still accepted")
	}
}

func TestUserIsActive(t *testing.T) {
	cases := []struct {
		active string
		want   bool
	}{
		{"TRUE", true},
		{"true", true},
		{"", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{" False ", false},
	}
	for _, c := range cases {
		u := models.User{Active: c.active}
		if got := u.IsActive(); got != c.want {
			t.Errorf("IsActive(%q) = %v, want %v", c.active, got, c.want)
		}
	}
}

func TestUserRemoveMissingIsNotFound(t *testing.T) {
	repo := models.UserRepo{DB: newWorkbook(t)}
	if err := repo.Remove(admin, "USR404"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Remove missing = %v, want ErrNotFound", err)
	}
}
