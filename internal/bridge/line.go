package bridge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Bridge is a source of triggers. Run blocks, sending each received locator
// on triggers, until the transport is exhausted or the context is cancelled.
// Bridges never receive results back.
type Bridge interface {
	Run(ctx context.Context, triggers chan<- string) error
}

// LineBridge reads one locator per line from a reader.
type LineBridge struct {
	r      io.Reader
	logger *log.Logger
}

// NewLineBridge creates a bridge reading from r. A nil logger falls back to
// the default logger.
func NewLineBridge(r io.Reader, logger *log.Logger) *LineBridge {
	if logger == nil {
		logger = log.Default()
	}
	return &LineBridge{r: r, logger: logger.With("component", "bridge")}
}

// Run scans lines until EOF or cancellation. Leading and trailing whitespace
// is trimmed; blank lines are skipped.
func (b *LineBridge) Run(ctx context.Context, triggers chan<- string) error {
	scanner := bufio.NewScanner(b.r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		locator := strings.TrimSpace(scanner.Text())
		if locator == "" {
			continue
		}
		select {
		case triggers <- locator:
			b.logger.Debug("trigger received", "locator", locator)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}
	return nil
}
