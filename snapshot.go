package recycler

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Snapshot is a read-only capture of everything an engine computed for one
// geometry. It exists for tests and the debug overlay; taking one never
// changes engine state. All rectangles are in screen space.
type Snapshot struct {
	Direction string  `json:"direction"`
	State     string  `json:"state"`
	ItemCount int     `json:"itemCount"`
	Segments  int     `json:"segments"`
	PoolSize  int     `json:"poolSize"`
	PoolRows  int     `json:"poolRows"`
	First     int     `json:"first"`
	Active    int     `json:"active"`
	CellSize  Vec2    `json:"cellSize"`
	Threshold float32 `json:"threshold"`

	Viewport   Rect `json:"viewport"`
	Recyclable Rect `json:"recyclable"` // Viewport grown by the threshold on the main axis
	Content    Rect `json:"content"`
	Virtual    Rect `json:"virtual"`

	Position float32 `json:"position"`
	Size     float32 `json:"size"`

	Cells []CellSnapshot `json:"cells"`
}

// CellSnapshot describes one pool slot.
type CellSnapshot struct {
	Slot   int  `json:"slot"`
	Index  int  `json:"index"`
	Active bool `json:"active"`
	Rect   Rect `json:"rect"`
}

// BoundRange returns the first and last bound index, or (-1, -1) when no
// cell is bound.
func (s Snapshot) BoundRange() (first, last int) {
	first, last = -1, -1
	for _, c := range s.Cells {
		if !c.Active {
			continue
		}
		if first < 0 || c.Index < first {
			first = c.Index
		}
		if c.Index > last {
			last = c.Index
		}
	}
	return first, last
}

// Validate checks that bound indices form the contiguous range starting at
// First and that no index is bound to two slots.
func (s Snapshot) Validate() error {
	seen := make(map[int]int, len(s.Cells))
	for i, c := range s.Cells {
		if !c.Active {
			if c.Index != -1 {
				return fmt.Errorf("slot %d inactive but bound to %d", c.Slot, c.Index)
			}
			continue
		}
		if prev, dup := seen[c.Index]; dup {
			return fmt.Errorf("index %d bound to slots %d and %d", c.Index, prev, c.Slot)
		}
		seen[c.Index] = c.Slot
		if want := s.First + i; c.Index != want {
			return fmt.Errorf("cell %d bound to %d, want %d", i, c.Index, want)
		}
	}
	if len(seen) != s.Active {
		return fmt.Errorf("%d cells bound, want %d", len(seen), s.Active)
	}
	return nil
}

// JSON encodes the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	b, err := json.Marshal(s, jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}
