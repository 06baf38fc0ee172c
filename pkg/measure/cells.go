package measure

import "github.com/mattn/go-runewidth"

// Cells measures strings in terminal columns. Wide East Asian characters
// and most emoji take two columns, combining marks take none.
type Cells struct {
	cond *runewidth.Condition
}

// NewCells returns a cell measurer. eastAsian selects the East Asian
// ambiguous-width convention, where ambiguous characters are two columns.
func NewCells(eastAsian bool) *Cells {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = eastAsian
	return &Cells{cond: cond}
}

// Width implements Measurer.
func (c *Cells) Width(s string) float64 {
	return float64(c.cond.StringWidth(s))
}

// Truncate shortens s to fit in width columns, ending it with tail when it
// had to be cut.
func (c *Cells) Truncate(s string, width int, tail string) string {
	return c.cond.Truncate(s, width, tail)
}
