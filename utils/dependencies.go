package utils

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ToolStatus describes one external tool for the check report
type ToolStatus struct {
	Name        string
	Required    bool
	Available   bool
	Version     string
	InstallHint string
}

// ValidateConversionDependencies checks that cjxl and exiftool are available in PATH.
// djxl is deliberately not required here; without it health checks fall back
// to signature checks only.
func ValidateConversionDependencies() error {
	// Check for cjxl
	if _, err := exec.LookPath("cjxl"); err != nil {
		return fmt.Errorf("cjxl not found in PATH. %s", getInstallationInstructions("cjxl"))
	}

	// Check for exiftool
	if _, err := exec.LookPath("exiftool"); err != nil {
		return fmt.Errorf("exiftool not found in PATH. %s", getInstallationInstructions("exiftool"))
	}

	return nil
}

// CheckTools probes every external tool this program can use and captures
// availability plus the version string the tool reports.
func CheckTools() []ToolStatus {
	probes := []struct {
		name       string
		required   bool
		versionArg string
	}{
		{"cjxl", true, "--version"},
		{"djxl", false, "--version"},
		{"exiftool", true, "-ver"},
	}

	statuses := make([]ToolStatus, 0, len(probes))
	for _, probe := range probes {
		status := ToolStatus{Name: probe.name, Required: probe.required}

		if _, err := exec.LookPath(probe.name); err != nil {
			status.InstallHint = getInstallationInstructions(probe.name)
			statuses = append(statuses, status)
			continue
		}

		status.Available = true
		status.Version = toolVersion(probe.name, probe.versionArg)
		statuses = append(statuses, status)
	}

	return statuses
}

// toolVersion runs the tool's version command and returns the first output line
func toolVersion(name, versionArg string) string {
	out, err := exec.Command(name, versionArg).CombinedOutput()
	if err != nil {
		return "unknown"
	}

	line := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	if line == "" {
		return "unknown"
	}
	return line
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions(tool string) string {
	pkg := "jpeg-xl"
	debPkg := "libjxl-tools"
	if tool == "exiftool" {
		pkg = "exiftool"
		debPkg = "libimage-exiftool-perl"
	}

	switch runtime.GOOS {
	case "darwin":
		return fmt.Sprintf("Install with: brew install %s", pkg)
	case "linux":
		return fmt.Sprintf("Install with: apt-get install %s (Ubuntu/Debian) or dnf install %s (Fedora)", debPkg, pkg)
	case "windows":
		if tool == "exiftool" {
			return "Download from https://exiftool.org and add to PATH"
		}
		return "Download from https://github.com/libjxl/libjxl/releases and add to PATH"
	default:
		return fmt.Sprintf("Install %s from your platform's package manager", pkg)
	}
}
