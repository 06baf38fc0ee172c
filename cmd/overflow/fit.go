package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/grindlemire/go-overflow"
	"github.com/grindlemire/go-overflow/pkg/layout"
	"github.com/grindlemire/go-overflow/pkg/measure"
)

// runFit implements the fit subcommand. It lays the items out on a static
// host, runs one engine turn and prints the resulting assignment.
func runFit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		width      = fs.Float64("width", -1, "container width")
		reserve    = fs.Float64("reserve", overflow.DefaultReserve, "reservation")
		rows       = fs.Int("rows", overflow.DefaultRows, "rows")
		evict      = fs.Bool("evict", false, "hide the largest items first")
		gap        = fs.Float64("gap", 0, "gap between items")
		pin        = fs.String("pin", "", "item to keep visible")
		mode       = fs.String("measure", "numbers", "numbers, cells, font or shaped")
		size       = fs.Float64("size", 14, "font size")
		configPath = fs.String("config", "", "TOML config file")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *width < 0 {
		return errors.New("fit: -width is required")
	}
	labels := fs.Args()
	if len(labels) == 0 {
		return errors.New("fit: no items given")
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var opts []overflow.Option
	if *configPath != "" {
		cfg, err := overflow.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		opts = append(opts, overflow.WithConfig(cfg))
	}
	if set["reserve"] || *configPath == "" {
		opts = append(opts, overflow.WithReserve(*reserve))
	}
	if set["rows"] || *configPath == "" {
		opts = append(opts, overflow.WithRows(*rows))
	}
	if set["evict"] {
		opts = append(opts, overflow.WithEvictLargest(*evict))
	}
	if set["gap"] {
		opts = append(opts, overflow.WithGap(*gap))
	}
	if *pin != "" {
		for i, l := range labels {
			if l == *pin {
				opts = append(opts, overflow.WithPinTarget(i))
				break
			}
		}
	}

	m, spacing, err := measurerFor(*mode, *size)
	if err != nil {
		return err
	}
	if set["gap"] {
		spacing = *gap
	}
	if c, ok := m.(io.Closer); ok {
		defer c.Close()
	}
	if *mode == "numbers" {
		for _, l := range labels {
			if _, err := strconv.ParseFloat(l, 64); err != nil {
				return fmt.Errorf("fit: item %q is not a number", l)
			}
		}
	}

	host := newRowHost(*width, measure.Row(m, labels, layout.Edges{}, spacing, 1), spacing)
	note, err := fitOnce(host, opts...)
	if err != nil {
		return err
	}
	return printFit(out, labels, host.boxes, note)
}

// measurerFor returns the measurer for mode and the spacing a toolbar in
// that unit would use.
func measurerFor(mode string, size float64) (measure.Measurer, float64, error) {
	switch mode {
	case "numbers":
		return measure.Func(func(s string) float64 {
			v, _ := strconv.ParseFloat(s, 64)
			return max(v, 0)
		}), 0, nil
	case "cells":
		return measure.NewCells(false), 1, nil
	case "font":
		f, err := measure.NewGoRegular(size)
		return f, size / 2, err
	case "shaped":
		s, err := measure.NewShapedGoRegular(size)
		return s, size / 2, err
	default:
		return nil, 0, fmt.Errorf("fit: unknown measure mode %q", mode)
	}
}

// fitOnce attaches an engine to host, runs one turn and detaches it,
// returning the notification of that turn.
func fitOnce(host *rowHost, opts ...overflow.Option) (overflow.Notification, error) {
	loop, err := overflow.NewLoop()
	if err != nil {
		return overflow.Notification{}, err
	}
	e, err := overflow.Attach(loop, host, opts...)
	if err != nil {
		return overflow.Notification{}, err
	}
	var note overflow.Notification
	e.OnOverflow(func(n overflow.Notification) { note = n })
	loop.Flush()
	e.Detach()
	return note, nil
}

func printFit(out io.Writer, labels []string, boxes []layout.Box, note overflow.Notification) error {
	hidden := make(map[int]bool, len(note.HiddenItems))
	for _, ref := range note.HiddenItems {
		if i, ok := ref.(int); ok {
			hidden[i] = true
		}
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tWIDTH\tSTATE")
	for i, l := range labels {
		state := "shown"
		if hidden[i] {
			state = "hidden"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l, strconv.FormatFloat(boxes[i].OuterWidth(), 'f', -1, 64), state)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if note.Overflowing {
		_, err := fmt.Fprintf(out, "%d of %d hidden (+%d)\n", note.HiddenCount, len(labels), note.HiddenCount)
		return err
	}
	_, err := fmt.Fprintf(out, "all %d items fit\n", len(labels))
	return err
}
