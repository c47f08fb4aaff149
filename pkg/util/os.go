package util

import (
	"os"
	"strings"
)

const machineIDEnv = "PROCWARDEN_MACHINE_ID"

var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// GetMachineID identifies this host in metrics and detection records: the
// PROCWARDEN_MACHINE_ID environment variable, the systemd machine id, then the hostname.
func GetMachineID() string {
	if id := strings.TrimSpace(os.Getenv(machineIDEnv)); id != "" {
		return id
	}
	for _, path := range machineIDPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown-machine-id"
}
