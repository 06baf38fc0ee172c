package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-overflow"
	"github.com/grindlemire/go-overflow/internal/debug"
)

var defaultLabels = []string{"Inbox", "Drafts", "Sent", "Archive", "Spam", "Trash", "Settings", "Help"}

// badgeReserve is the room kept for the widest badge we expect, " +99 ".
const badgeReserve = 5

const maxDemoRows = 4

// demo wires a toolbar on a tcell screen to an engine running on a loop.
type demo struct {
	screen  tcell.Screen
	loop    *overflow.Loop
	bar     *toolbar
	engine  *overflow.Engine
	rows    int
	evict   bool
	pinned  bool
	clock   *toolItem
	started time.Time
	now     func() time.Time
}

// newDemo attaches an engine to a toolbar on screen. The screen must
// already be initialized.
func newDemo(screen tcell.Screen, labels []string, rows int, evict, clock bool) (*demo, error) {
	loop, err := overflow.NewLoop(overflow.WithFrameRate(30))
	if err != nil {
		return nil, err
	}

	d := &demo{
		screen: screen,
		loop:   loop,
		bar:    newToolbar(screen, labels),
		rows:   min(max(rows, 1), maxDemoRows),
		evict:  evict,
		now:    time.Now,
	}
	d.started = d.now()
	if clock {
		d.clock = d.bar.add(d.clockLabel())
	}

	d.engine, err = overflow.Attach(loop, d.bar,
		overflow.WithReserve(badgeReserve),
		overflow.WithRows(d.rows),
		overflow.WithEvictLargest(d.evict),
	)
	if err != nil {
		return nil, err
	}
	d.engine.OnOverflow(func(n overflow.Notification) {
		d.bar.render(n, d.status(n))
	})
	return d, nil
}

func (d *demo) clockLabel() string {
	return fmt.Sprintf("up %s", d.now().Sub(d.started).Round(time.Second))
}

// tick refreshes the clock item. Its width changes as the text grows.
func (d *demo) tick() {
	if d.clock != nil {
		d.bar.setLabel(d.clock, d.clockLabel())
	}
}

func (d *demo) status(n overflow.Notification) string {
	return fmt.Sprintf("hidden=%d rows=%d evict=%v pinned=%v  q quit  +/- rows  e evict  p pin",
		n.HiddenCount, d.rows, d.evict, d.pinned)
}

// handle processes one terminal event on the loop goroutine.
func (d *demo) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
		d.bar.resized()
	case *tcell.EventKey:
		d.handleKey(ev)
	}
}

func (d *demo) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		d.loop.Stop()
		return
	case tcell.KeyRune:
	default:
		return
	}

	var err error
	switch ev.Rune() {
	case 'q':
		d.loop.Stop()
	case '+':
		d.rows = min(d.rows+1, maxDemoRows)
		err = d.engine.UpdateConfig(overflow.WithRows(d.rows))
	case '-':
		d.rows = max(d.rows-1, 1)
		err = d.engine.UpdateConfig(overflow.WithRows(d.rows))
	case 'e':
		d.evict = !d.evict
		err = d.engine.UpdateConfig(overflow.WithEvictLargest(d.evict))
	case 'p':
		d.pinned = !d.pinned
		var target any
		if d.pinned && len(d.bar.items) > 0 {
			target = d.bar.items[len(d.bar.items)-1]
		}
		err = d.engine.UpdateConfig(overflow.WithPinTarget(target))
	}
	if err != nil {
		debug.Log("demo: update config: %v", err)
	}
}

// run drives the loop until the user quits. Terminal events are read on
// their own goroutine and handed to the loop through a watcher.
func (d *demo) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	events := make(chan tcell.Event)
	d.loop.Watch(overflow.Watch(events, d.handle))
	if d.clock != nil {
		d.loop.Watch(overflow.OnTimer(time.Second, d.tick))
	}

	g.Go(func() error {
		defer close(events)
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-d.loop.Done():
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		// Fini makes PollEvent return nil, which ends the reader.
		defer d.screen.Fini()
		go func() {
			<-ctx.Done()
			d.loop.Stop()
		}()
		return d.loop.Run()
	})

	return g.Wait()
}

// runDemo implements the demo subcommand.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rows := fs.Int("rows", 1, "rows")
	evict := fs.Bool("evict", false, "hide the largest items first")
	clock := fs.Bool("clock", false, "add a clock item")
	logPath := fs.String("log", "", "write a debug log to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *logPath != "" {
		if err := debug.Init(*logPath); err != nil {
			return err
		}
	}
	labels := fs.Args()
	if len(labels) == 0 {
		labels = defaultLabels
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	d, err := newDemo(screen, labels, *rows, *evict, *clock)
	if err != nil {
		screen.Fini()
		return err
	}
	return d.run(context.Background())
}
