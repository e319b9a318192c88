// Package memmap defines the address regions of a C166 firmware image.
package memmap

import (
	"errors"
	"fmt"
	"strings"
)

// All selects every code region of a map.
const All = "all"

// Firmware memory layout of the supported ECU flash images.
//
//	0x00000-0x0FFFF: bootloader
//	0x10000-0x3FFFF: program 1
//	0x40000-0x47FFF: unused
//	0x48000-0x4FFFF: calibration data
//	0x50000-0x7FFFF: program 2
const (
	BootloaderStart  = 0x00000
	BootloaderEnd    = 0x10000
	Program1Start    = 0x10000
	Program1End      = 0x40000
	UnusedStart      = 0x40000
	UnusedEnd        = 0x48000
	CalibrationStart = 0x48000
	CalibrationEnd   = 0x50000
	Program2Start    = 0x50000
	Program2End      = 0x80000
)

var (
	errEmptyRegion    = errors.New("region start must be below end")
	errRegionOverlap  = errors.New("regions overlap or are out of order")
	errOutsideImage   = errors.New("region exceeds image")
	errUnknownRegion  = errors.New("unknown region")
	errDuplicateName  = errors.New("duplicate region name")
	errNegativeOffset = errors.New("region start must not be negative")
)

// Region is a named address range [Start, End) of an image.
type Region struct {
	Name  string
	Start int
	End   int
	Code  bool // region contains instructions and can be decoded
}

// Len returns the size of the region in bytes.
func (r Region) Len() int {
	return r.End - r.Start
}

func (r Region) String() string {
	return fmt.Sprintf("%s [%05x-%05x)", r.Name, r.Start, r.End)
}

// Validate checks that the region is not empty and lies within an image of the given size.
func (r Region) Validate(imageSize int) error {
	switch {
	case r.Start < 0:
		return fmt.Errorf("%w: %s", errNegativeOffset, r)
	case r.Start >= r.End:
		return fmt.Errorf("%w: %s", errEmptyRegion, r)
	case r.End > imageSize:
		return fmt.Errorf("%w: %s, image size %05x", errOutsideImage, r, imageSize)
	}
	return nil
}

// Map is an ordered set of non overlapping regions.
type Map struct {
	regions []Region
}

// New returns a map of the given regions. The regions have to be sorted by
// address, must not overlap and need unique names.
func New(regions ...Region) (*Map, error) {
	names := make(map[string]struct{}, len(regions))
	for i, region := range regions {
		if region.Start < 0 {
			return nil, fmt.Errorf("%w: %s", errNegativeOffset, region)
		}
		if region.Start >= region.End {
			return nil, fmt.Errorf("%w: %s", errEmptyRegion, region)
		}
		if i > 0 && region.Start < regions[i-1].End {
			return nil, fmt.Errorf("%w: %s, %s", errRegionOverlap, regions[i-1], region)
		}
		name := strings.ToLower(region.Name)
		if _, ok := names[name]; ok || name == All {
			return nil, fmt.Errorf("%w: %s", errDuplicateName, region.Name)
		}
		names[name] = struct{}{}
	}

	return &Map{
		regions: append([]Region(nil), regions...),
	}, nil
}

// Default returns the memory map of the supported firmware images.
func Default() *Map {
	m, err := New(
		Region{Name: "bootloader", Start: BootloaderStart, End: BootloaderEnd, Code: true},
		Region{Name: "program1", Start: Program1Start, End: Program1End, Code: true},
		Region{Name: "unused", Start: UnusedStart, End: UnusedEnd},
		Region{Name: "calibration", Start: CalibrationStart, End: CalibrationEnd},
		Region{Name: "program2", Start: Program2Start, End: Program2End, Code: true},
	)
	if err != nil {
		panic(err)
	}
	return m
}

// Regions returns all regions in address order.
func (m *Map) Regions() []Region {
	return append([]Region(nil), m.regions...)
}

// Region returns the region with the given name, matched case insensitively.
func (m *Map) Region(name string) (Region, bool) {
	for _, region := range m.regions {
		if strings.EqualFold(region.Name, name) {
			return region, true
		}
	}
	return Region{}, false
}

// Select resolves the passed region names. The result is sorted by address
// and contains every region only once. The name All selects all code regions.
func (m *Map) Select(names ...string) ([]Region, error) {
	selected := make(map[string]struct{}, len(names))
	for _, name := range names {
		if strings.EqualFold(name, All) {
			for _, region := range m.regions {
				if region.Code {
					selected[region.Name] = struct{}{}
				}
			}
			continue
		}

		region, ok := m.Region(name)
		if !ok {
			return nil, fmt.Errorf("%w '%s', valid regions: %s", errUnknownRegion, name, strings.Join(m.names(), ", "))
		}
		selected[region.Name] = struct{}{}
	}

	var regions []Region
	for _, region := range m.regions {
		if _, ok := selected[region.Name]; ok {
			regions = append(regions, region)
		}
	}
	return regions, nil
}

func (m *Map) names() []string {
	names := make([]string, 0, len(m.regions)+1)
	for _, region := range m.regions {
		names = append(names, region.Name)
	}
	return append(names, All)
}
