package k8s

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

const (
	// queryTimeout bounds inventory fetches so interactive commands stay
	// responsive.
	queryTimeout = 60 * time.Second
	// controlTimeout bounds cordon/uncordon calls.
	controlTimeout = 120 * time.Second
	// syncDrainTimeout bounds a non-progress drain. Progress-tracked drains
	// run unbounded since eviction duration is workload-dependent.
	syncDrainTimeout = 600 * time.Second
)

// Query fetches cluster inventory as raw JSON documents of the form
// {"items": [...]}. An empty item list is a valid document, not an error.
type Query interface {
	Nodes(ctx context.Context) (map[string]any, error)
	Pods(ctx context.Context) (map[string]any, error)
}

// DrainOptions mirror the kubectl drain flags knode sets.
type DrainOptions struct {
	IgnoreDaemonSets   bool
	DeleteEmptyDirData bool
	IgnoreErrors       bool
}

// DrainProcess is a handle to a running drain operation. Output is the
// combined stdout+stderr stream in emission order; Wait blocks until the
// process exits and returns its exit code.
type DrainProcess interface {
	Output() io.Reader
	Wait() int
	Kill() error
}

// Control executes node lifecycle operations, returning the underlying
// tool's exit code and combined diagnostic output. The error is non-nil only
// when the tool could not be invoked at all.
type Control interface {
	Cordon(ctx context.Context, nodes []string) (int, string, error)
	Uncordon(ctx context.Context, nodes []string) (int, string, error)
	Drain(ctx context.Context, nodes []string, opts DrainOptions) (int, string, error)
	StartDrain(ctx context.Context, nodes []string, opts DrainOptions) (DrainProcess, error)
}

// Client implements Query and Control by running kubectl against the current
// cluster context.
type Client struct {
	// Context overrides the kubeconfig current context when set.
	Context string
}

var (
	_ Query   = (*Client)(nil)
	_ Control = (*Client)(nil)
)

func (c *Client) command(ctx context.Context, args ...string) *exec.Cmd {
	if c.Context != "" {
		args = append([]string{"--context", c.Context}, args...)
	}
	klog.V(2).Infof("running: kubectl %s", strings.Join(args, " "))
	return exec.CommandContext(ctx, "kubectl", args...)
}

func (c *Client) getJSON(ctx context.Context, resource string, extra ...string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	args := append([]string{"get", resource}, extra...)
	args = append(args, "-o", "json")
	out, err := c.command(ctx, args...).Output()
	if err != nil {
		return nil, &QueryError{Resource: resource, Err: err}
	}
	doc := map[string]any{}
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, &QueryError{Resource: resource, Err: err}
	}
	return doc, nil
}

// Nodes fetches every node in the cluster as a raw document.
func (c *Client) Nodes(ctx context.Context) (map[string]any, error) {
	return c.getJSON(ctx, "nodes")
}

// Pods fetches all pods across all namespaces as a raw document.
func (c *Client) Pods(ctx context.Context) (map[string]any, error) {
	return c.getJSON(ctx, "pods", "-A")
}

func (c *Client) run(ctx context.Context, args ...string) (int, string, error) {
	var buf bytes.Buffer
	cmd := c.command(ctx, args...)
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), buf.String(), nil
		}
		return -1, buf.String(), fmt.Errorf("running kubectl: %w", err)
	}
	return 0, buf.String(), nil
}

// Cordon marks the given nodes unschedulable.
func (c *Client) Cordon(ctx context.Context, nodes []string) (int, string, error) {
	if len(nodes) == 0 {
		return 0, "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, controlTimeout)
	defer cancel()
	return c.run(ctx, append([]string{"cordon"}, nodes...)...)
}

// Uncordon marks the given nodes schedulable again.
func (c *Client) Uncordon(ctx context.Context, nodes []string) (int, string, error) {
	if len(nodes) == 0 {
		return 0, "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, controlTimeout)
	defer cancel()
	return c.run(ctx, append([]string{"uncordon"}, nodes...)...)
}

func drainArgs(nodes []string, opts DrainOptions) []string {
	args := []string{"drain"}
	if opts.IgnoreDaemonSets {
		args = append(args, "--ignore-daemonsets")
	}
	if opts.DeleteEmptyDirData {
		args = append(args, "--delete-emptydir-data")
	}
	if opts.IgnoreErrors {
		args = append(args, "--ignore-errors")
	}
	return append(args, nodes...)
}

// Drain evicts pods from the given nodes synchronously.
func (c *Client) Drain(ctx context.Context, nodes []string, opts DrainOptions) (int, string, error) {
	if len(nodes) == 0 {
		return 0, "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, syncDrainTimeout)
	defer cancel()
	return c.run(ctx, drainArgs(nodes, opts)...)
}

// StartDrain launches a drain as a background process and returns a handle
// streaming its combined output. Cancelling ctx kills the process.
func (c *Client) StartDrain(ctx context.Context, nodes []string, opts DrainOptions) (DrainProcess, error) {
	cmd := c.command(ctx, drainArgs(nodes, opts)...)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, fmt.Errorf("starting kubectl drain: %w", err)
	}
	p := &kubectlProcess{cmd: cmd, out: pr, code: make(chan int, 1)}
	go func() {
		err := cmd.Wait()
		pw.Close()
		p.code <- exitCode(err)
	}()
	return p, nil
}

type kubectlProcess struct {
	cmd  *exec.Cmd
	out  io.Reader
	code chan int
}

func (p *kubectlProcess) Output() io.Reader { return p.out }

func (p *kubectlProcess) Wait() int {
	code := <-p.code
	p.code <- code
	return code
}

func (p *kubectlProcess) Kill() error {
	return p.cmd.Process.Kill()
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
