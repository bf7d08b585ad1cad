package noncomparable

// Settings is a configuration shape with non-comparable fields.
type Settings struct {
	Tags   []string
	Limits map[string]int
}

// Processor handles types that don't support the '==' operator (slices and maps).
type Processor struct {
	ProcessSlice func(data []string) int
	ProcessMap   func(config map[string]int) bool
	Apply        func(name string, tags []string, limits map[string]int) error
}

// Run drives a Processor with non-comparable arguments.
func Run(p Processor, settings Settings) error {
	if p.ProcessSlice(settings.Tags) == 0 {
		return nil
	}

	if !p.ProcessMap(settings.Limits) {
		return nil
	}

	return p.Apply("default", settings.Tags, settings.Limits)
}
