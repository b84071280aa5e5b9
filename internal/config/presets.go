package config

import "sort"

// Presets are ready-made scenarios selectable by name.
var Presets = map[string]*Config{
	"collision": {
		Output: OutputConfig{BaseName: "collision", WriteFrequency: 50, Format: "xyz"},
		Simulation: SimulationConfig{
			TEnd: 20, DeltaT: 0.0005, Epsilon: 5, Sigma: 1, CutoffRadius: 3,
			Force: ForceLennardJones, Container: ContainerLinkedCell, Parallel: "serial",
			Seed: DefaultSeed, BrownianDims: 2,
		},
		Domain: DomainConfig{Size: [3]float64{180, 90, 1}, Boundary: []string{"outflow"}},
		Cuboids: []CuboidConfig{
			{Position: [3]float64{20, 20, 0}, Dimensions: [3]int{100, 20, 1}, MeshWidth: 1.1225, Mass: 1, MeanVelocity: 0.1},
			{Position: [3]float64{70, 60, 0}, Velocity: [3]float64{0, -10, 0}, Dimensions: [3]int{20, 20, 1}, MeshWidth: 1.1225, Mass: 1, MeanVelocity: 0.1, Type: 1},
		},
	},
	"drop": {
		Output: OutputConfig{BaseName: "drop", WriteFrequency: 50, Format: "xyz"},
		Simulation: SimulationConfig{
			TEnd: 10, DeltaT: 0.00005, Epsilon: 5, Sigma: 1, CutoffRadius: 3,
			Force: ForceLennardJones, Container: ContainerLinkedCell, Parallel: "serial",
			Seed: DefaultSeed, BrownianDims: 2,
		},
		Domain: DomainConfig{
			Size:     [3]float64{120, 50, 1},
			Boundary: []string{"outflow", "outflow", "reflective", "outflow", "outflow", "outflow"},
		},
		Discs: []DiscConfig{
			{Center: [3]float64{60, 25, 0}, Velocity: [3]float64{0, -10, 0}, Radius: 15, MeshWidth: 1.1225, Mass: 1},
		},
	},
	"orbit": {
		Output: OutputConfig{BaseName: "orbit", WriteFrequency: 10, Format: "csv"},
		Simulation: SimulationConfig{
			TEnd: 1000, DeltaT: 0.014, Force: ForceGravity, Container: ContainerDirect,
			Parallel: "serial", Seed: DefaultSeed, BrownianDims: 2,
		},
		Cuboids: []CuboidConfig{
			{Position: [3]float64{0, 0, 0}, Dimensions: [3]int{1, 1, 1}, MeshWidth: 1, Mass: 1},
			{Position: [3]float64{0, 1, 0}, Velocity: [3]float64{-1, 0, 0}, Dimensions: [3]int{1, 1, 1}, MeshWidth: 1, Mass: 3.0e-6},
			{Position: [3]float64{0, 5.36, 0}, Velocity: [3]float64{-0.425, 0, 0}, Dimensions: [3]int{1, 1, 1}, MeshWidth: 1, Mass: 9.55e-4},
			{Position: [3]float64{34.75, 0, 0}, Velocity: [3]float64{0, 0.0296, 0}, Dimensions: [3]int{1, 1, 1}, MeshWidth: 1, Mass: 1.0e-14},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Domain.Boundary = append([]string(nil), p.Domain.Boundary...)
	cfg.Cuboids = append([]CuboidConfig(nil), p.Cuboids...)
	cfg.Discs = append([]DiscConfig(nil), p.Discs...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
