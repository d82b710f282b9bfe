// Package demo holds the configuration and data source shared by the example
// programs.
package demo

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-theft-auto/recycler"
)

// Configuration is read from flags and environment by goconfig.
type Configuration struct {
	Direction  string  `usage:"scroll direction: vertical | horizontal"`
	Segments   int     `usage:"cells per row (vertical) or per column (horizontal); below 2 is a list"`
	Items      int     `usage:"number of items"`
	BatchSize  int     `usage:"cells created per frame while initializing; 0 builds the pool at once"`
	Spacing    float64 `usage:"gap between cells"`
	CellWidth  float64 `usage:"prototype cell width"`
	CellHeight float64 `usage:"prototype cell height"`
	Aspect     bool    `usage:"scale the prototype so its aspect ratio is kept"`
	Debug      bool    `usage:"draw the debug overlay"`
	Verbose    bool    `usage:"enable debug logging"`
	Snapshot   string  `usage:"file the 's' key writes a JSON snapshot to"`
	Sound      bool    `usage:"play a tick when the list hits either end (terminal demo)"`
	ShowConfig bool    `usage:"print config"`
}

// Default returns the demo defaults for a pixel-based window.
func Default() Configuration {
	return Configuration{
		Direction:  "vertical",
		Segments:   1,
		Items:      1000,
		BatchSize:  recycler.DefaultBatchSize,
		Spacing:    4,
		CellWidth:  400,
		CellHeight: 48,
		Aspect:     true,
		Snapshot:   "snapshot.json",
	}
}

// ParseDirection parses a direction name.
func ParseDirection(s string) (recycler.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "v":
		return recycler.Vertical, nil
	case "horizontal", "h":
		return recycler.Horizontal, nil
	}
	return recycler.Vertical, fmt.Errorf("unknown direction %q", s)
}

// Options converts the configuration into recycler options.
func (c Configuration) Options() ([]recycler.Option, error) {
	dir, err := ParseDirection(c.Direction)
	if err != nil {
		return nil, err
	}
	if c.Items < 0 {
		return nil, fmt.Errorf("items must not be negative, got %d", c.Items)
	}
	opts := []recycler.Option{
		recycler.WithDirection(dir),
		recycler.WithBatchSize(c.BatchSize),
		recycler.WithSpacing(float32(c.Spacing)),
		recycler.WithPrototype(recycler.Rect{W: float32(c.CellWidth), H: float32(c.CellHeight)}),
		recycler.PreserveAspect(c.Aspect),
		recycler.WithCellFactory(func(slot int) any { return &Tile{Slot: slot} }),
	}
	if c.Segments >= 2 {
		opts = append(opts, recycler.Grid(c.Segments))
	}
	return opts, nil
}

// WriteSnapshot writes snap as JSON to the configured file.
func (c Configuration) WriteSnapshot(snap recycler.Snapshot) error {
	b, err := snap.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Snapshot, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Tile is the view object stored in every pool slot.
type Tile struct {
	Slot  int
	Label string
	Color uint32
	Binds int // Number of times the slot was (re)bound
}

// palette colors tiles by index so rebinding is visible.
var palette = [...]uint32{
	recycler.RGBA(0x3b, 0x82, 0xf6, 0xff),
	recycler.RGBA(0x10, 0xb9, 0x81, 0xff),
	recycler.RGBA(0xf5, 0x9e, 0x0b, 0xff),
	recycler.RGBA(0xef, 0x44, 0x44, 0xff),
	recycler.RGBA(0x8b, 0x5c, 0xf6, 0xff),
	recycler.RGBA(0x06, 0xb6, 0xd4, 0xff),
}

// Items is a DataSource of numbered labels.
type Items struct {
	Labels []string
}

var _ recycler.DataSource = (*Items)(nil)

// NewItems returns n items labelled "Item 0" through "Item n-1".
func NewItems(n int) *Items {
	labels := make([]string, max(n, 0))
	for i := range labels {
		labels[i] = fmt.Sprintf("Item %d", i)
	}
	return &Items{Labels: labels}
}

// ItemCount implements recycler.DataSource.
func (it *Items) ItemCount() int { return len(it.Labels) }

// SetCell implements recycler.DataSource.
func (it *Items) SetCell(cell *recycler.Cell, index int) {
	tile, ok := cell.View.(*Tile)
	if !ok {
		return
	}
	tile.Label = it.Labels[index]
	tile.Color = palette[index%len(palette)]
	tile.Binds++
}
