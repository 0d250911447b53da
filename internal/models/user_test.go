package models

import "testing"

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		name string
		role string
		cap  Capability
		want bool
	}{
		{"master manages users", RoleMaster, CapManageUsers, true},
		{"master manages properties", RoleMaster, CapManageProperties, true},
		{"master deletes properties", RoleMaster, CapDeleteProperties, true},
		{"editor manages properties", RoleEditor, CapManageProperties, true},
		{"editor cannot manage users", RoleEditor, CapManageUsers, false},
		{"editor cannot delete properties", RoleEditor, CapDeleteProperties, false},
		{"viewer views properties", RoleViewer, CapViewProperties, true},
		{"viewer cannot manage properties", RoleViewer, CapManageProperties, false},
		{"pending has nothing", RolePending, CapViewProperties, false},
		{"unknown role has nothing", "superuser", CapManageUsers, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Role: tt.role}
			if got := user.Can(tt.cap); got != tt.want {
				t.Errorf("User{Role: %q}.Can(%q) = %v, want %v", tt.role, tt.cap, got, tt.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleMaster, RoleEditor, RoleViewer, RolePending} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "admin", "Master", "owner"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestIsMaster(t *testing.T) {
	if !(&User{Role: RoleMaster}).IsMaster() {
		t.Error("IsMaster() = false for master")
	}
	if (&User{Role: RoleEditor}).IsMaster() {
		t.Error("IsMaster() = true for editor")
	}
}
