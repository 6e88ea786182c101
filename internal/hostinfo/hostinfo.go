package hostinfo

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Info describes the machine that produced a report.
type Info struct {
	Hostname     string `json:"hostname,omitempty"`
	OS           string `json:"os"`
	Platform     string `json:"platform,omitempty"`
	Arch         string `json:"arch"`
	CPUModel     string `json:"cpu_model,omitempty"`
	LogicalCores int    `json:"logical_cores,omitempty"`
	MemoryBytes  uint64 `json:"memory_bytes,omitempty"`
}

// Collect probes the host. Probes that fail leave their fields empty and
// their errors are joined into the returned error; Info is always usable.
func Collect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	var errs []error

	if h, err := host.InfoWithContext(ctx); err != nil {
		errs = append(errs, err)
	} else {
		info.Hostname = h.Hostname
		info.Platform = strings.TrimSpace(h.Platform + " " + h.PlatformVersion)
	}

	if cpus, err := cpu.InfoWithContext(ctx); err != nil {
		errs = append(errs, err)
	} else if len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}

	if n, err := cpu.CountsWithContext(ctx, true); err != nil {
		errs = append(errs, err)
	} else {
		info.LogicalCores = n
	}

	if v, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, err)
	} else {
		info.MemoryBytes = v.Total
	}

	return info, errors.Join(errs...)
}
