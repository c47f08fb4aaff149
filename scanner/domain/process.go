package domain

import (
	"fmt"
	"strings"
)

// ProcessDescriptor is a snapshot of one live process taken at enumeration time.
type ProcessDescriptor struct {
	PID            int32
	ExecutableName string
	// ExecutablePath is empty when the enumerator could not (or did not) resolve it.
	ExecutablePath string
}

func (d ProcessDescriptor) String() string {
	return fmt.Sprintf("%s(pid:%d)", d.ExecutableName, d.PID)
}

// FindProcessIDs returns the PIDs whose executable name equals name, ignoring case.
func FindProcessIDs(descriptors []ProcessDescriptor, name string) []int32 {
	pids := []int32{}
	for _, d := range descriptors {
		if strings.EqualFold(d.ExecutableName, name) {
			pids = append(pids, d.PID)
		}
	}
	return pids
}
