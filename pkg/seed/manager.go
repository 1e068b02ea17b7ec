package seed

import (
	"fmt"
	"hash/fnv"
	"os"

	"github.com/moznion/go-optional"
)

// DefaultSeed is the base seed used when none is configured.
const DefaultSeed int64 = 42

// BackendResult records the outcome of seeding one backend.
type BackendResult struct {
	Backend string
	Applied bool
	Error   string
}

// Report describes the configuration applied by ConfigureEnvironment.
type Report struct {
	Seed              int64
	GPUAvailable      bool
	GPUMemoryFraction optional.Option[float64]
	Backends          []BackendResult
}

// Manager holds the active base seed and derives deterministic sub-seeds for
// named experiments. Create one instance per run; there is no hidden global.
type Manager struct {
	seed        int64
	backends    []Backend
	experiments map[string]uint32
}

// New creates a Manager with the given base seed. When no backends are given,
// DefaultBackends are used.
func New(seed int64, backends ...Backend) *Manager {
	if len(backends) == 0 {
		backends = DefaultBackends()
	}

	return &Manager{
		seed:        seed,
		backends:    backends,
		experiments: make(map[string]uint32),
	}
}

// Seed returns the active base seed.
func (m *Manager) Seed() int64 {
	return m.seed
}

// SetSeed sets the base seed and applies it to every backend, returning the
// per-backend outcomes. Backend failures are recorded, never raised. Derived
// experiment seeds are invalidated because they depend on the base seed.
func (m *Manager) SetSeed(seed int64) []BackendResult {
	m.seed = seed
	m.experiments = make(map[string]uint32)

	results := make([]BackendResult, 0, len(m.backends))

	for _, backend := range m.backends {
		result := BackendResult{Backend: backend.Name(), Applied: true}
		if err := backend.Seed(seed); err != nil {
			result.Applied = false
			result.Error = err.Error()
		}

		results = append(results, result)
	}

	return results
}

// ExperimentSeed derives a deterministic sub-seed for the named experiment
// from the experiment name and the base seed. Repeated lookups for the same
// name return the value computed on first access.
func (m *Manager) ExperimentSeed(name string) uint32 {
	if derived, ok := m.experiments[name]; ok {
		return derived
	}

	h := fnv.New32a()
	fmt.Fprintf(h, "%s_%d", name, m.seed)
	derived := h.Sum32() % (1<<32 - 1)
	m.experiments[name] = derived

	return derived
}

// Reset restores the default seed, clears derived experiment seeds, and
// reseeds all backends.
func (m *Manager) Reset() []BackendResult {
	return m.SetSeed(DefaultSeed)
}

// ConfigureEnvironment applies the seed and reports what was configured,
// including whether an accelerator is visible to the process. The GPU memory
// fraction is recorded in the report when provided; capping allocation is left
// to the consumer that owns the accelerator.
func (m *Manager) ConfigureEnvironment(seedValue int64, gpuFraction optional.Option[float64], verbose bool) Report {
	report := Report{
		Seed:              seedValue,
		GPUAvailable:      gpuAvailable(),
		GPUMemoryFraction: gpuFraction,
		Backends:          m.SetSeed(seedValue),
	}

	if verbose {
		fmt.Println("Environment Configuration:")
		fmt.Printf("  Random Seed: %d\n", report.Seed)
		fmt.Printf("  GPU Available: %t\n", report.GPUAvailable)

		if report.GPUMemoryFraction.IsSome() {
			fmt.Printf("  GPU Memory Fraction: %.2f\n", report.GPUMemoryFraction.Unwrap())
		}

		for _, result := range report.Backends {
			fmt.Printf("  Backend %s: applied=%t\n", result.Backend, result.Applied)
		}
	}

	return report
}

// gpuAvailable probes for a visible CUDA device.
func gpuAvailable() bool {
	devices := os.Getenv("CUDA_VISIBLE_DEVICES")

	return devices != "" && devices != "-1"
}
