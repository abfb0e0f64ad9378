// SPDX-License-Identifier: GPL-3.0-or-later

package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/progress"
	"github.com/jedib0t/go-pretty/table"
	"github.com/rs/zerolog"

	"github.com/robgonnella/go-netdetect/internal/logger"
	"github.com/robgonnella/go-netdetect/pkg/detect"
)

// Status represents possible host statuses
type Status string

const (
	// StatusOnline status of a host that answered its probe
	StatusOnline Status = "online"
)

type DeviceResult struct {
	IP     net.IP `json:"ip"`
	Status Status `json:"status"`
}

func (r *DeviceResult) Serializable() interface{} {
	return struct {
		IP     string `json:"ip"`
		Status string `json:"status"`
	}{
		IP:     r.IP.String(),
		Status: string(r.Status),
	}
}

type Results struct {
	Devices []*DeviceResult `json:"devices"`
}

func (r *Results) MarshalJSON() ([]byte, error) {
	data := []interface{}{}

	for _, r := range r.Devices {
		data = append(data, r.Serializable())
	}

	return json.Marshal(data)
}

// Core implements Runner and detect.Observer, rendering scan progress
// and printing the reachable hosts once the scan completes
type Core struct {
	cfg        *detect.Config
	scanner    detect.Scanner
	dispatcher *detect.CallerDispatcher
	printJson  bool
	noProgress bool
	outFile    string
	results    *Results
	pw         progress.Writer
	tracker    *progress.Tracker
	cancel     context.CancelFunc
	mux        *sync.RWMutex
	log        logger.Logger
}

func New() *Core {
	return &Core{
		mux: &sync.RWMutex{},
		log: logger.New(),
	}
}

func (c *Core) Initialize(
	cfg *detect.Config,
	prober detect.Prober,
	noProgress bool,
	printJson bool,
	outFile string,
) {
	dispatcher := detect.NewCallerDispatcher()

	engine := detect.New(
		detect.WithProber(prober),
		detect.WithCallerDispatcher(dispatcher),
	)

	tracker := &progress.Tracker{
		Message: fmt.Sprintf("scanning %s.x", cfg.SubnetPrefix()),
		Total:   100,
	}

	if noProgress {
		logger.SetGlobalLevel(zerolog.Disabled)
	}

	c.cfg = cfg
	c.scanner = engine
	c.dispatcher = dispatcher
	c.results = &Results{Devices: []*DeviceResult{}}
	c.pw = progressWriter()
	c.tracker = tracker
	c.noProgress = noProgress
	c.printJson = printJson
	c.outFile = outFile
}

func (c *Core) Run() error {
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.mux.Lock()
	c.cancel = cancel
	c.mux.Unlock()

	if !c.noProgress {
		c.pw.AppendTracker(c.tracker)
		go c.pw.Render()
	}

	if err := c.scanner.Scan(c.cfg, c); err != nil {
		return err
	}

	// completion is delivered here when the config asks for the caller's
	// context, otherwise OnComplete cancels ctx from the background
	if err := c.dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if !c.noProgress {
		c.tracker.MarkAsDone()
		// give the renderer a chance to draw the final state
		time.Sleep(time.Millisecond * 100)
		c.pw.Stop()
	}

	c.printResults()

	c.log.Info().Str("duration", time.Since(start).String()).Msg("go-netdetect complete")

	return nil
}

// OnStart implements detect.Observer
func (c *Core) OnStart(message string) {
	c.log.Info().Msg("\n" + message)
}

// OnUpdate implements detect.Observer
func (c *Core) OnUpdate(percentage int) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.noProgress {
		return
	}

	c.tracker.SetValue(int64(percentage))
}

// OnProgress implements detect.ProgressObserver
func (c *Core) OnProgress(percentage int, found int) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.log.Debug().Int("progress", percentage).Int("found", found).Msg("scan progress")

	if c.noProgress {
		return
	}

	c.tracker.Message = fmt.Sprintf("scanning %s.x - found %d devices", c.cfg.SubnetPrefix(), found)
}

// OnComplete implements detect.Observer
func (c *Core) OnComplete(ips []string) {
	c.mux.Lock()
	defer c.mux.Unlock()

	for _, ip := range ips {
		c.results.Devices = append(c.results.Devices, &DeviceResult{
			IP:     net.ParseIP(ip).To4(),
			Status: StatusOnline,
		})
	}

	slices.SortFunc(c.results.Devices, func(r1, r2 *DeviceResult) int {
		return bytes.Compare(r1.IP, r2.IP)
	})

	if !c.noProgress {
		c.tracker.Message = "scan complete"
	}

	if c.cancel != nil {
		c.cancel()
	}
}

// Results returns the reachable hosts collected by the last run
func (c *Core) Results() *Results {
	c.mux.RLock()
	defer c.mux.RUnlock()

	return c.results
}

func (c *Core) printResults() {
	c.mux.RLock()
	defer c.mux.RUnlock()

	if c.printJson {
		data, err := c.results.MarshalJSON()

		if err != nil {
			c.log.Error().Err(err).Msg("failed to serialize results")
			return
		}

		fmt.Println(string(data))

		c.writeReport(data)

		return
	}

	var ipTable = table.NewWriter()

	ipTable.SetOutputMirror(os.Stdout)

	ipTable.AppendHeader(table.Row{"IP", "STATUS"})

	for _, r := range c.results.Devices {
		ipTable.AppendRow(table.Row{r.IP.String(), r.Status})
	}

	ipTable.AppendFooter(table.Row{"TOTAL", len(c.results.Devices)})

	output := ipTable.Render()

	c.writeReport([]byte(output))
}

func (c *Core) writeReport(data []byte) {
	if c.outFile == "" {
		return
	}

	if err := os.WriteFile(c.outFile, data, 0644); err != nil {
		c.log.Error().Err(err).Msg("failed to write output report")
	}
}

// helpers
func progressWriter() progress.Writer {
	pw := progress.NewWriter()
	pw.SetOutputWriter(os.Stdout)
	pw.SetAutoStop(false)
	pw.SetTrackerLength(25)
	pw.SetMessageWidth(40)
	pw.SetNumTrackersExpected(1)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%4.1f%%"

	return pw
}
