// Package replay paces a finished commentary log back out one line at a time.
package replay

import (
	"context"
	"io"
	"time"
)

type Player struct {
	lines    []string
	interval time.Duration
}

// NewPlayer copies lines, so later changes by the caller are not replayed.
// A non-positive interval emits every line immediately.
func NewPlayer(lines []string, interval time.Duration) *Player {
	return &Player{
		lines:    append([]string(nil), lines...),
		interval: interval,
	}
}

func (p *Player) Len() int {
	return len(p.lines)
}

// Play calls emit for each line in order, waiting one interval between lines.
// It returns the number of lines emitted and ctx.Err() if cancelled first.
func (p *Player) Play(ctx context.Context, emit func(line string)) (int, error) {
	if p.interval <= 0 {
		for i, line := range p.lines {
			if err := ctx.Err(); err != nil {
				return i, err
			}
			emit(line)
		}
		return len(p.lines), nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for i, line := range p.lines {
		if i > 0 {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return i, ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return 0, err
		}
		emit(line)
	}
	return len(p.lines), nil
}

// Stream returns a channel fed by Play; it closes when the log ends or ctx is
// done.
func (p *Player) Stream(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		p.Play(ctx, func(line string) {
			select {
			case out <- line:
			case <-ctx.Done():
			}
		})
	}()
	return out
}

// WriteLines replays into w, one line per write.
func (p *Player) WriteLines(ctx context.Context, w io.Writer) (int, error) {
	var werr error
	n, err := p.Play(ctx, func(line string) {
		if werr == nil {
			_, werr = io.WriteString(w, line+"\n")
		}
	})
	if werr != nil {
		return n, werr
	}
	return n, err
}
