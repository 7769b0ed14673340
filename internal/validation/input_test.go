package validation

import "testing"

func TestValidateURL(t *testing.T) {
	validCases := []string{
		"http://localhost:8080/casc-bundle-export/jenkins.yaml",
		"https://ci.example.com/f.txt",
		"https://ci.example.com/job/x/ws/items.yaml?raw=true",
	}

	invalidCases := []string{
		"",
		"   ",
		"/f.txt",
		"ftp://ci.example.com/f.txt",
		"https://",
		"http://[::1",
	}

	for _, valid := range validCases {
		if err := ValidateURL(valid); err != nil {
			t.Errorf("Expected %s to be valid, got error: %v", valid, err)
		}
	}

	for _, invalid := range invalidCases {
		if err := ValidateURL(invalid); err == nil {
			t.Errorf("Expected %s to be invalid, but validation passed", invalid)
		}
	}
}

func TestValidateContainerID(t *testing.T) {
	validCases := []string{
		"casc-bundle-files-table",
		"files",
		"a.b:c_d",
	}

	invalidCases := []string{
		"",
		"1table",
		"has space",
		"-leading",
	}

	for _, valid := range validCases {
		if err := ValidateContainerID(valid); err != nil {
			t.Errorf("Expected %s to be valid, got error: %v", valid, err)
		}
	}

	for _, invalid := range invalidCases {
		if err := ValidateContainerID(invalid); err == nil {
			t.Errorf("Expected %s to be invalid, but validation passed", invalid)
		}
	}
}

func TestValidateTriggerID(t *testing.T) {
	if err := ValidateTriggerID("jenkins.yaml"); err != nil {
		t.Errorf("Expected valid id, got %v", err)
	}
	if err := ValidateTriggerID(""); err == nil {
		t.Error("Expected empty id to be invalid")
	}
	if err := ValidateTriggerID("two words"); err == nil {
		t.Error("Expected id with whitespace to be invalid")
	}
}

func TestValidateBackend(t *testing.T) {
	validCases := []string{"", "auto", "system", "Command", " osc52 "}
	for _, valid := range validCases {
		if err := ValidateBackend(valid); err != nil {
			t.Errorf("Expected %q to be valid, got error: %v", valid, err)
		}
	}

	if err := ValidateBackend("pasteboard"); err == nil {
		t.Error("Expected unknown backend to be invalid")
	}
}
