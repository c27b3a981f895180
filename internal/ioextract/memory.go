package ioextract

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MemProbe reports the resident set size of the current process in
// bytes. Memory introspection is platform-specific and purely a
// diagnostic, so it is injected rather than hardwired: a nil probe,
// or a probe error, simply disables memory reporting and the budget
// check.
type MemProbe func() (uint64, error)

// ProcStatusRSS reads VmRSS from /proc/self/status. Only works on
// Linux, which is where multi-gigabyte phenotype exports are
// processed in practice.
func ProcStatusRSS() (uint64, error) {
	data, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, err
		}
		return kb * 1024, nil
	}
	return 0, fmt.Errorf("no VmRSS entry in /proc/self/status")
}
