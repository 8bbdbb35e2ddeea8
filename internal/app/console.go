package app

import (
	"fmt"
	"io"
	"strings"

	"aesthetic-filters/internal/core"
	"aesthetic-filters/internal/filters"
	imageio "aesthetic-filters/internal/io"
)

const ruleWidth = 50

var rule = strings.Repeat("=", ruleWidth)

// Console prints human-readable progress. It implements both the
// generator observer and the writer observer.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Banner prints the program header
func (c *Console) Banner() {
	c.printf("%s\nAESTHETIC FILTER GENERATOR\nCreates 10 different variations from one image\n%s\n", rule, rule)
}

// Usage prints invocation help and the filter list
func (c *Console) Usage(program string) {
	c.printf("\nUSAGE:\n")
	c.printf("  %s <image_path> [output_folder]\n", program)
	c.printf("\nEXAMPLES:\n")
	c.printf("  %s photo.jpg\n", program)
	c.printf("  %s vacation.png my_filters\n", program)
	c.printf("\nFILTERS INCLUDED:\n")
	for _, spec := range filters.Bank() {
		c.printf("  %d. %s - %s\n", spec.Ordinal, spec.Title, spec.Description)
	}
}

func (c *Console) NotFound(path string) {
	c.printf("\n✗ Error: Image file '%s' not found!\n", path)
}

func (c *Console) LoadFailed(err error) {
	c.printf("✗ Error loading image: %v\n", err)
}

func (c *Console) Loaded(path string, decoded *imageio.Decoded) {
	c.printf("✓ Loaded image: %s\n", path)
	c.printf("  Image size: (%d, %d)\n", decoded.Buffer.Width, decoded.Buffer.Height)
	mode := decoded.Mode
	if mode == "" {
		mode = decoded.Format
	}
	c.printf("  Image mode: %s\n", mode)
}

func (c *Console) FolderCreated(dir string) {
	c.printf("✓ Created folder: %s\n", dir)
}

func (c *Console) FolderFailed(dir string, err error) {
	c.printf("✗ Error creating folder %s: %v\n", dir, err)
}

func (c *Console) FilterStarted(index, total int, filter core.Filter) {
	if index == 0 {
		c.printf("\n")
	}
	c.printf("[%d/%d] Creating %s filter...\n", index+1, total, filter.GetName())
}

func (c *Console) FilterFinished(index, total int, v core.Variation) {
	if v.Err != nil {
		c.printf("✗ Error creating %s filter: %v\n", v.Name, v.Err)
	}
}

func (c *Console) SavingHeader() {
	c.printf("\n%s\nSAVING IMAGES IN HIGH QUALITY...\n%s\n", rule, rule)
}

func (c *Console) FileSaved(result imageio.SaveResult) {
	c.printf("✓ Saved: %s\n", result.Path)
}

func (c *Console) FileFailed(result imageio.SaveResult) {
	c.printf("✗ Error saving %s: %v\n", result.ID, result.Err)
}

func (c *Console) Summary(saved, total int, location string) {
	c.printf("\n%s\n", rule)
	c.printf("COMPLETE! %d/%d variations saved successfully!\n", saved, total)
	c.printf("Location: %s/\n", location)
	c.printf("%s\n", rule)
}
