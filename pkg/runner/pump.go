package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// linePump reads lines from a source on a dedicated goroutine so that a
// blocked read can be abandoned when the context is cancelled.
type linePump struct {
	reader    *bufio.Reader
	lines     chan lineResult
	startOnce sync.Once
}

type lineResult struct {
	text string
	err  error
}

func newLinePump(r io.Reader) *linePump {
	return &linePump{reader: bufio.NewReader(r)}
}

func (p *linePump) start() {
	p.startOnce.Do(func() {
		p.lines = make(chan lineResult)
		go p.run()
	})
}

func (p *linePump) run() {
	defer close(p.lines)
	for {
		text, err := p.reader.ReadString('\n')

		// A final line without a newline still counts.
		if text != "" {
			p.lines <- lineResult{text: text}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.lines <- lineResult{err: err}
			}
			return
		}
	}
}

// next returns the next raw line, io.EOF at end of input, or ctx.Err().
func (p *linePump) next(ctx context.Context) (string, error) {
	p.start()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}
