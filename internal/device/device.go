// Package device picks where the regressor runs. Only the CPU is supported; a requested GPU is
// reported as unavailable.
package device

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Device describes the selected processor
type Device struct {
	Name    string
	Cores   int
	Threads int

	// Vector lists the SIMD extensions available to the vector maths
	Vector []string

	// Fallback is set when a GPU was asked for and the CPU was used instead
	Fallback bool
}

func (d Device) String() string {
	return fmt.Sprintf("CPU %s (%d cores, %d threads)", d.Name, d.Cores, d.Threads)
}

// Select returns the device to use. A negative gpu, or cpuOnly, requests the CPU.
func Select(gpu int, cpuOnly bool) Device {
	d := cpu()
	d.Fallback = gpu >= 0 && !cpuOnly
	return d
}

func cpu() Device {
	d := Device{
		Name:    cpuid.CPU.BrandName,
		Cores:   cpuid.CPU.PhysicalCores,
		Threads: cpuid.CPU.LogicalCores,
	}

	if d.Name == "" {
		d.Name = runtime.GOARCH
	}
	if d.Threads < 1 {
		d.Threads = runtime.NumCPU()
	}
	if d.Cores < 1 {
		d.Cores = d.Threads
	}

	exts := []struct {
		name string
		id   cpuid.FeatureID
	}{
		{"SSE2", cpuid.SSE2},
		{"AVX", cpuid.AVX},
		{"AVX2", cpuid.AVX2},
		{"FMA3", cpuid.FMA3},
		{"AVX512F", cpuid.AVX512F},
		{"ASIMD", cpuid.ASIMD},
	}
	for _, e := range exts {
		if cpuid.CPU.Supports(e.id) {
			d.Vector = append(d.Vector, e.name)
		}
	}

	return d
}
