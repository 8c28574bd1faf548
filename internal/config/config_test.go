package config

import "testing"

func TestGetEnvAsBool(t *testing.T) {
	cases := map[string]bool{
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"yes":   true,
		"Y":     true,
		"0":     false,
		"false": false,
		"no":    false,
		"N":     false,
	}
	for raw, want := range cases {
		t.Setenv("TEST_BOOL_FLAG", raw)
		// Default is the opposite of want so a fallthrough is caught.
		if got := getEnvAsBool("TEST_BOOL_FLAG", !want); got != want {
			t.Errorf("getEnvAsBool(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestGetEnvAsBoolDefaults(t *testing.T) {
	if !getEnvAsBool("TEST_BOOL_FLAG_UNSET", true) {
		t.Error("expected default for unset variable")
	}
	t.Setenv("TEST_BOOL_FLAG", "maybe")
	if !getEnvAsBool("TEST_BOOL_FLAG", true) {
		t.Error("expected default for unparseable value")
	}
}
