package layout

import "testing"

func TestBox_OuterWidth(t *testing.T) {
	type tc struct {
		box  Box
		want float64
	}

	tests := map[string]tc{
		"border box only": {
			box:  NewBox(0, 0, 80, 20),
			want: 80,
		},
		"with margins": {
			box: Box{
				Rect:   NewRect(0, 0, 80, 20),
				Margin: EdgeSymmetric(0, 4),
			},
			want: 88,
		},
		"overflowing content widens the box": {
			box: Box{
				Rect:        NewRect(0, 0, 80, 20),
				Margin:      Edges{Right: 2, Left: 3},
				ScrollWidth: 120,
			},
			want: 125,
		},
		"scroll width smaller than box is ignored": {
			box:  Box{Rect: NewRect(0, 0, 80, 20), ScrollWidth: 40},
			want: 80,
		},
		"negative margins never go below zero": {
			box:  Box{Rect: NewRect(0, 0, 5, 20), Margin: EdgeSymmetric(0, -10)},
			want: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.box.OuterWidth(); got != tt.want {
				t.Errorf("OuterWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBox_Edges(t *testing.T) {
	b := Box{
		Rect:   NewRect(100, 0, 50, 20),
		Margin: Edges{Right: 6, Left: 4},
	}
	if got := b.LeadingEdge(); got != 96 {
		t.Errorf("LeadingEdge() = %v, want 96", got)
	}
	if got := b.TrailingEdge(); got != 156 {
		t.Errorf("TrailingEdge() = %v, want 156", got)
	}
}

func TestBox_SameRow(t *testing.T) {
	type tc struct {
		a, b Box
		want bool
	}

	tests := map[string]tc{
		"aligned": {
			a:    NewBox(0, 0, 10, 20),
			b:    NewBox(20, 0, 10, 20),
			want: true,
		},
		"half of shorter overlaps": {
			a:    NewBox(0, 0, 10, 40),
			b:    NewBox(20, 30, 10, 20),
			want: true,
		},
		"less than half overlaps": {
			a:    NewBox(0, 0, 10, 20),
			b:    NewBox(20, 11, 10, 20),
			want: false,
		},
		"wrapped to next row": {
			a:    NewBox(0, 0, 10, 20),
			b:    NewBox(0, 24, 10, 20),
			want: false,
		},
		"zero height on same baseline": {
			a:    NewBox(0, 5, 10, 0),
			b:    NewBox(20, 5, 10, 0),
			want: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.SameRow(tt.b); got != tt.want {
				t.Errorf("SameRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPackingWidth(t *testing.T) {
	container := Box{
		Rect:    NewRect(0, 0, 300, 40),
		Border:  Edges{Top: 1, Right: 1, Bottom: 1, Left: 1},
		Padding: EdgeSymmetric(4, 8),
	}

	if got := PackingWidth(container, nil); got != 282 {
		t.Errorf("PackingWidth(container, nil) = %v, want 282", got)
	}

	packer := &Box{
		Margin:  EdgeSymmetric(0, 5),
		Border:  Edges{Top: 1, Right: 1, Bottom: 1, Left: 1},
		Padding: EdgeSymmetric(0, 2),
	}
	if got := PackingWidth(container, packer); got != 266 {
		t.Errorf("PackingWidth(container, packer) = %v, want 266", got)
	}

	tiny := Box{Rect: NewRect(0, 0, 4, 4), Padding: Edges{Top: 5, Right: 5, Bottom: 5, Left: 5}}
	if got := PackingWidth(tiny, nil); got != 0 {
		t.Errorf("PackingWidth(tiny, nil) = %v, want 0", got)
	}
}
