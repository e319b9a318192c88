// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/retroenv/c166disasm/internal/disasm"
	"github.com/retroenv/c166disasm/internal/image"
	"github.com/retroenv/c166disasm/internal/memmap"
	"github.com/retroenv/c166disasm/internal/options"
	"github.com/retroenv/c166disasm/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// CustomRegionName is the name of a region passed by start and end offset.
const CustomRegionName = "custom"

// ProcessFile handles the complete file processing workflow. The image is
// released on every return path.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) (err error) {
	memoryMap := memmap.Default()
	if opts.ListRegions {
		return PrintRegions(out, memoryMap)
	}

	regions, err := selectRegions(opts, memoryMap)
	if err != nil {
		return err
	}

	img, err := image.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading image: %w", err)
	}
	defer func() {
		if closeErr := img.Close(); closeErr != nil {
			logger.Warn("Releasing image failed", log.Err(closeErr))
		}
	}()

	for _, region := range regions {
		if err := region.Validate(img.Len()); err != nil {
			return fmt.Errorf("invalid region: %w", err)
		}
	}

	buf := bufio.NewWriter(out)
	defer func() {
		if flushErr := buf.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("writing output: %w", flushErr)
		}
	}()

	w, err := writer.New(buf, writer.Options{
		Format: opts.Format,
		Color:  useColor(opts, out),
	})
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}

	logger.Debug("Image loaded", log.String("file", img.Name()), log.Int("size", img.Len()))
	if err := w.WriteHeader(img.Name(), img.Len()); err != nil {
		return err
	}

	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := decodeRegion(logger, img, region, w); err != nil {
			return err
		}
	}
	return nil
}

func decodeRegion(logger *log.Logger, img *image.Image, region memmap.Region, w *writer.Writer) error {
	logger.Debug("Decoding region", log.String("region", region.Name),
		log.String("start", fmt.Sprintf("%05x", region.Start)),
		log.String("end", fmt.Sprintf("%05x", region.End)),
		log.Int("size", region.Len()))
	if !region.Code {
		logger.Warn("Region does not contain code", log.String("region", region.Name))
	}

	w.StartRegion(region)
	count, err := disasm.Decode(img, region, w.WriteInstruction)
	if err != nil {
		return fmt.Errorf("decoding region %s after %d instructions: %w", region.Name, count, err)
	}

	logger.Debug("Region decoded", log.String("region", region.Name), log.Int("instructions", count))
	return nil
}

// selectRegions returns the regions to decode in address order.
func selectRegions(opts options.Program, memoryMap *memmap.Map) ([]memmap.Region, error) {
	if opts.Custom {
		region := memmap.Region{
			Name:  CustomRegionName,
			Start: opts.Start,
			End:   opts.End,
			Code:  true,
		}
		if region.Start >= region.End {
			return nil, fmt.Errorf("invalid custom region %s: start must be below end", region)
		}
		return []memmap.Region{region}, nil
	}

	names := opts.Regions
	if len(names) == 0 {
		names = []string{options.DefaultRegion}
	}
	regions, err := memoryMap.Select(names...)
	if err != nil {
		return nil, fmt.Errorf("selecting regions: %w", err)
	}
	return regions, nil
}

// useColor returns whether text output should be colorized.
func useColor(opts options.Program, out io.Writer) bool {
	if opts.Format != writer.FormatText && opts.Format != "" {
		return false
	}

	switch opts.Color {
	case options.ColorAlways:
		return true
	case options.ColorNever:
		return false
	}

	file, ok := out.(*os.File)
	return ok && term.IsTerminal(file.Fd())
}

// PrintRegions prints the memory map. Region ends are exclusive.
func PrintRegions(out io.Writer, memoryMap *memmap.Map) error {
	for _, region := range memoryMap.Regions() {
		kind := "data"
		if region.Code {
			kind = "code"
		}
		if _, err := fmt.Fprintf(out, "%-12s [%05x-%05x) %s, %d bytes\n",
			region.Name, region.Start, region.End, kind, region.Len()); err != nil {
			return fmt.Errorf("writing region: %w", err)
		}
	}
	return nil
}

// PrintBanner logs application version information
func PrintBanner(logger *log.Logger, opts options.Program, version string) {
	if opts.Quiet {
		return
	}
	logger.Info("c166disasm: C166 firmware image disassembler", log.String("version", version))
}

// PrintInfo logs the file and regions that are about to be processed.
func PrintInfo(logger *log.Logger, opts options.Program) {
	if opts.Quiet || opts.ListRegions {
		return
	}

	regions := opts.Regions
	if opts.Custom {
		regions = []string{fmt.Sprintf("%s [%05x-%05x)", CustomRegionName, opts.Start, opts.End)}
	} else if len(regions) == 0 {
		regions = []string{options.DefaultRegion}
	}
	logger.Info("Processing C166 firmware image",
		log.String("file", opts.Input),
		log.String("regions", strings.Join(regions, ",")))
}
