package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-02-28"); !ok {
		t.Error("IsValidDate(2025-02-28) = false, want true")
	}
	for _, s := range []string{"2025-02-30", "28-02-2025", "2025/02/28", "", "today"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	for _, s := range []string{"09:00", "23:59", "09:00:30"} {
		if _, ok := IsValidTimeOfDay(s); !ok {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"24:00", "9am", "", "09:60"} {
		if _, ok := IsValidTimeOfDay(s); ok {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+62 812 3456 789", "081234567890", "0812-3456-7890"}
	invalid := []string{"12345", "phone", "", "+62 812 3456 7890 1234 5"}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"TDM-0042", "AB-123", "WXYZ-123456"}
	invalid := []string{"tdm-0042", "TDM0042", "T-123", "TDM-12", ""}
	for _, c := range valid {
		if !IsValidEmployeeCode(c) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", c)
		}
	}
	for _, c := range invalid {
		if IsValidEmployeeCode(c) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", c)
		}
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "name", Message: "name is required"},
	}
	m := errs.ToMap()
	if len(m) != 2 || m["email"] != "email is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() == "" {
		t.Error("Error() should not be empty")
	}
}
