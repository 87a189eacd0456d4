package widgets

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tile is one colored cell block in the strip
type Tile struct {
	Label string
	Color [3]uint8
	Text  [3]uint8
}

// StripLayout sizes the strip in terminal cells
type StripLayout struct {
	TileWidth int
	Spacing   int
	Height    int // rows; the label sits on the middle row
	Viewport  int // visible columns
}

// Extent returns the cells one tile occupies including spacing
func (l StripLayout) Extent() int {
	return l.TileWidth + l.Spacing
}

// RenderStrip draws the visible window of the strip. offset is the strip's
// horizontal position in cells; -Extent() puts the second tile at column 0.
func RenderStrip(tiles []Tile, offset float64, l StripLayout) string {
	height := l.Height
	if height < 1 {
		height = 1
	}
	shift := int(math.Round(offset))

	rows := make([]string, height)
	for r := range rows {
		rows[r] = renderStripRow(tiles, shift, l, r == height/2)
	}
	return strings.Join(rows, "\n")
}

func renderStripRow(tiles []Tile, shift int, l StripLayout, labelRow bool) string {
	extent := l.Extent()
	if extent <= 0 {
		return strings.Repeat(" ", l.Viewport)
	}

	var out strings.Builder
	var seg strings.Builder
	segTile := -1

	flush := func() {
		if seg.Len() == 0 {
			return
		}
		if segTile < 0 {
			out.WriteString(seg.String())
		} else {
			t := tiles[segTile]
			style := lipgloss.NewStyle().
				Background(lipgloss.Color(rgbToHex(t.Color))).
				Foreground(lipgloss.Color(rgbToHex(t.Text)))
			out.WriteString(style.Render(seg.String()))
		}
		seg.Reset()
	}

	for col := 0; col < l.Viewport; col++ {
		world := col - shift
		idx, ch := -1, byte(' ')
		if world >= 0 {
			i, inner := world/extent, world%extent
			if i < len(tiles) && inner < l.TileWidth {
				idx = i
				if labelRow {
					ch = labelCell(tiles[i].Label, l.TileWidth, inner)
				}
			}
		}
		if idx != segTile {
			flush()
			segTile = idx
		}
		seg.WriteByte(ch)
	}
	flush()
	return out.String()
}

// labelCell returns the character of a centered label at position inner
func labelCell(label string, width, inner int) byte {
	if len(label) > width {
		label = label[:width]
	}
	start := (width - len(label)) / 2
	pos := inner - start
	if pos < 0 || pos >= len(label) {
		return ' '
	}
	return label[pos]
}

// NumberedTiles labels tiles 1..n with the given colors
func NumberedTiles(colors [][3]uint8, text func([3]uint8) [3]uint8) []Tile {
	tiles := make([]Tile, len(colors))
	for i, c := range colors {
		tiles[i] = Tile{
			Label: fmt.Sprintf("%d", i+1),
			Color: c,
			Text:  text(c),
		}
	}
	return tiles
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
