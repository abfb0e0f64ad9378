// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"slices"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

const (
	defaultICMPTimeout = time.Second
	defaultWaitDelay   = time.Second
)

// ExecProber probes an address by running an external command with the
// address appended as the last argument. Exit code 0 means reachable.
type ExecProber struct {
	name string
	args []string
}

// NewPingProber returns an ExecProber running "ping -c 1 <address>"
func NewPingProber() *ExecProber {
	return NewExecProber("ping", "-c", "1")
}

// NewExecProber returns a new instance of ExecProber
func NewExecProber(name string, args ...string) *ExecProber {
	return &ExecProber{
		name: name,
		args: args,
	}
}

// Probe implements Prober
func (p *ExecProber) Probe(ctx context.Context, address string) (bool, error) {
	args := append(slices.Clone(p.args), address)

	cmd := exec.CommandContext(ctx, p.name, args...)

	// output must be fully drained for the process to exit, content is
	// ignored. stdin and stderr stay nil and are wired to the null device.
	cmd.Stdout = io.Discard

	// bounds how long Wait blocks on pipes held open by orphaned children
	// once the process itself has been killed
	cmd.WaitDelay = defaultWaitDelay

	// Run releases every pipe and reaps the process on all paths
	err := cmd.Run()

	if err == nil {
		return true, nil
	}

	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	var exitErr *exec.ExitError

	if errors.As(err, &exitErr) {
		return false, nil
	}

	return false, fmt.Errorf("probe %s: %w", address, err)
}

// ICMPProber sends a single ICMP echo request using pro-bing
type ICMPProber struct {
	timeout    time.Duration
	privileged bool
}

// ICMPOption functional option for ICMPProber
type ICMPOption = func(p *ICMPProber)

// WithICMPTimeout sets how long to wait for the echo reply
func WithICMPTimeout(d time.Duration) ICMPOption {
	return func(p *ICMPProber) {
		p.timeout = d
	}
}

// WithPrivileged sets whether raw sockets are used instead of
// unprivileged datagram sockets
func WithPrivileged(privileged bool) ICMPOption {
	return func(p *ICMPProber) {
		p.privileged = privileged
	}
}

// NewICMPProber returns a new instance of ICMPProber
func NewICMPProber(options ...ICMPOption) *ICMPProber {
	p := &ICMPProber{
		timeout:    defaultICMPTimeout,
		privileged: runtime.GOOS == "windows",
	}

	for _, o := range options {
		o(p)
	}

	return p
}

// Timeout returns the configured reply timeout
func (p *ICMPProber) Timeout() time.Duration {
	return p.timeout
}

// Privileged returns whether raw sockets are used
func (p *ICMPProber) Privileged() bool {
	return p.privileged
}

// Probe implements Prober
func (p *ICMPProber) Probe(ctx context.Context, address string) (bool, error) {
	pinger, err := probing.NewPinger(address)

	if err != nil {
		return false, fmt.Errorf("create pinger: %w", err)
	}

	pinger.Count = 1
	pinger.Timeout = p.timeout
	pinger.SetPrivileged(p.privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return false, err
	}

	return pinger.Statistics().PacketsRecv > 0, nil
}
