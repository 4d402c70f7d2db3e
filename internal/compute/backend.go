package compute

import (
	"fmt"
	"sort"
)

type Backend interface {
	Name() string
	Available() bool
	Workers() int
	ForRows(n int, fn func(start, end int))
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func setBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.Available() && cpu.Workers() > 1 {
		return cpu
	}
	return NewSerialBackend()
}

var constructors = map[string]func(workers int) Backend{
	"cpu": func(workers int) Backend {
		if workers > 0 {
			return NewCPUBackendWorkers(workers)
		}
		return NewCPUBackend()
	},
	"serial": func(int) Backend { return NewSerialBackend() },
	"auto":   func(int) Backend { return AutoSelectBackend() },
}

// ByName builds a backend. workers <= 0 keeps the backend's default.
func ByName(name string, workers int) (Backend, error) {
	if name == "" {
		name = "auto"
	}
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, Names())
	}
	return fn(workers), nil
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
