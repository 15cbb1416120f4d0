package housekeeping

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/windows"

	"skihide/pkg/core"
)

var (
	psapi               = windows.NewLazySystemDLL("psapi.dll")
	procEmptyWorkingSet = psapi.NewProc("EmptyWorkingSet")
)

// TrimWorkingSets asks Windows to page out the working set of every process
// it may open. Processes that refuse (protected, other users) count as
// failed.
func TrimWorkingSets(log core.Logger) (cleaned, failed int, err error) {
	pids, err := process.Pids()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to enumerate processes: %w", err)
	}

	for _, pid := range pids {
		// System Idle Process and System
		if pid == 0 || pid == 4 {
			continue
		}
		if trimProcess(uint32(pid)) {
			cleaned++
		} else {
			failed++
		}
	}

	log.Info("Working sets trimmed", "cleaned", cleaned, "failed", failed)
	return cleaned, failed, nil
}

func trimProcess(pid uint32) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_SET_QUOTA, false, pid)
	if err != nil {
		return false
	}
	defer windows.CloseHandle(h)

	ret, _, _ := procEmptyWorkingSet.Call(uintptr(h))
	return ret != 0
}
