// Package options contains the program options.
package options

// Parameters contains input selection options.
type Parameters struct {
	Input   string   // firmware image to decode
	Regions []string // names of the memory map regions to decode
	Custom  bool     // decode the range Start-End instead of named regions
	Start   int      // start offset of a custom region
	End     int      // end offset of a custom region, exclusive
}

// Flags contains behavior options.
type Flags struct {
	Debug       bool
	Quiet       bool
	ListRegions bool
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	Format string // text or json
	Color  string // auto, always or never
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultRegion is decoded when no region is selected.
const DefaultRegion = "bootloader"

// New returns program options with default values.
func New() Program {
	return Program{
		Parameters: Parameters{
			Regions: []string{DefaultRegion},
		},
		OutputFlags: OutputFlags{
			Format: "text",
			Color:  ColorAuto,
		},
	}
}
