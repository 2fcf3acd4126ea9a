package k8s

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	progressWidth    = 30
	progressInterval = 300 * time.Millisecond
	// readerGrace bounds the wait for the output reader after the process
	// exits; the reader is abandoned past it rather than awaited forever.
	readerGrace = 2 * time.Second
	// killGrace bounds the wait for the process to die after cancellation.
	killGrace = 10 * time.Second
)

// lineBuffer collects drain output in emission order. Only the reader
// goroutine appends; snapshots can race with late appends when the reader is
// abandoned after readerGrace, hence the mutex.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *lineBuffer) append(line string) {
	b.mu.Lock()
	b.lines = append(b.lines, line)
	b.mu.Unlock()
}

func (b *lineBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// isEvictionLine reports whether a drain output line records a pod eviction.
// The match is deliberately loose: kubectl's phrasing is not a contract, and
// the count only feeds the progress display.
func isEvictionLine(line string) bool {
	return strings.Contains(line, "pod/") && strings.Contains(strings.ToLower(line), " evicted")
}

// formatProgress renders the one-line drain progress indicator. A zero or
// unknown total gets an indeterminate message instead of a bar.
func formatProgress(evicted, total int) string {
	if total <= 0 {
		return "Draining... (evicting pods)"
	}
	pct := float64(evicted) / float64(total)
	if pct > 1.0 {
		pct = 1.0
	}
	filled := int(progressWidth * pct)
	bar := strings.Repeat("=", filled)
	if filled < progressWidth && evicted < total {
		bar += ">"
	}
	if pad := progressWidth - len(bar); pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return fmt.Sprintf("Draining... [%s] %d/%d pods evicted", bar, evicted, total)
}

func clearProgress(w io.Writer) {
	fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", 60))
}

// CountPodsOnNodes counts the non-DaemonSet pods on the given nodes, sizing
// the drain progress bar. Best effort: any failure counts as zero and the
// caller falls back to an indeterminate display.
func CountPodsOnNodes(ctx context.Context, q Query, nodeNames []string) int {
	if len(nodeNames) == 0 {
		return 0
	}
	pods, err := PodsForNodes(ctx, q, nodeNames, false)
	if err != nil {
		return 0
	}
	return len(pods)
}

// TrackDrain consumes a running drain's combined output until the process
// exits, rendering an in-place progress line on w at a fixed interval. It
// returns the exit code and the full captured output in emission order.
// Cancelling ctx kills the process, waits briefly for it to die, and returns
// ctx.Err() with whatever output was captured; a partially drained node set
// is an acceptable terminal state.
func TrackDrain(ctx context.Context, p DrainProcess, total int, w io.Writer) (int, string, error) {
	var evicted atomic.Int64
	var buf lineBuffer

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		scanner := bufio.NewScanner(p.Output())
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			buf.append(line)
			if isEvictionLine(line) {
				evicted.Add(1)
			}
		}
	}()

	exited := make(chan int, 1)
	go func() { exited <- p.Wait() }()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	defer clearProgress(w)

	for {
		select {
		case <-ctx.Done():
			_ = p.Kill()
			select {
			case <-exited:
			case <-time.After(killGrace):
			}
			return -1, buf.String(), ctx.Err()
		case code := <-exited:
			select {
			case <-readerDone:
			case <-time.After(readerGrace):
			}
			return code, buf.String(), nil
		case <-ticker.C:
			fmt.Fprintf(w, "\r%s    ", formatProgress(int(evicted.Load()), total))
		}
	}
}

// DrainNodes drains the given nodes. With progress enabled the drain runs as
// a background process while eviction progress renders on w; otherwise it
// runs synchronously to completion. Either way the result is the tool's exit
// code and combined output.
func DrainNodes(ctx context.Context, q Query, c Control, nodes []string, opts DrainOptions, progress bool, w io.Writer) (int, string, error) {
	if len(nodes) == 0 {
		return 0, "", nil
	}
	if !progress {
		return c.Drain(ctx, nodes, opts)
	}

	total := CountPodsOnNodes(ctx, q, nodes)
	p, err := c.StartDrain(ctx, nodes, opts)
	if err != nil {
		return -1, "", err
	}
	return TrackDrain(ctx, p, total, w)
}
