// SPDX-License-Identifier: GPL-3.0-or-later

package cli_test

import (
	"bytes"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robgonnella/go-netdetect/internal/cli"
	"github.com/robgonnella/go-netdetect/internal/logger"
	mock_core "github.com/robgonnella/go-netdetect/internal/mock/core"
	mock_network "github.com/robgonnella/go-netdetect/mock/network"
	"github.com/robgonnella/go-netdetect/pkg/detect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRootCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	defer func() {
		logger.SetGlobalLevel(zerolog.DebugLevel)
		logger.Reset()
	}()

	newMockNetwork := func() *mock_network.MockNetwork {
		mockNetwork := mock_network.NewMockNetwork(ctrl)

		mockNetwork.EXPECT().SubnetPrefix().AnyTimes().Return("172.17.1")

		mockNetwork.EXPECT().Interface().AnyTimes().Return(&net.Interface{
			Name: "test-interface",
		})

		_, ipnet, _ := net.ParseCIDR("172.17.1.0/24")

		mockNetwork.EXPECT().Hostname().AnyTimes().Return("test-host")
		mockNetwork.EXPECT().UserIP().AnyTimes().Return(net.ParseIP("172.17.1.20"))
		mockNetwork.EXPECT().Gateway().AnyTimes().Return(net.ParseIP("172.17.1.1"))
		mockNetwork.EXPECT().Cidr().AnyTimes().Return("172.17.1.0/24")
		mockNetwork.EXPECT().IPNet().AnyTimes().Return(ipnet)

		return mockNetwork
	}

	t.Run("initializes with defaults from network and runs", func(st *testing.T) {
		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		var cfg *detect.Config
		var prober detect.Prober

		mockRunner.EXPECT().Initialize(
			gomock.Any(),
			gomock.Any(),
			false,
			false,
			"",
		).Do(func(c *detect.Config, p detect.Prober, noProgress, printJson bool, outFile string) {
			cfg = c
			prober = p
		})

		mockRunner.EXPECT().Run().Return(nil)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{})

		err = cmd.Execute()

		assert.NoError(st, err)

		assert.Equal(st, "172.17.1", cfg.SubnetPrefix())
		assert.Equal(st, detect.DefaultStartRange, cfg.StartOffset())
		assert.Equal(st, detect.DefaultEndRange, cfg.EndOffset())
		assert.False(st, cfg.DeliverOnCaller())
		assert.IsType(st, &detect.ExecProber{}, prober)
	})

	t.Run("initializes with flags and icmp prober", func(st *testing.T) {
		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		var cfg *detect.Config
		var prober detect.Prober

		mockRunner.EXPECT().Initialize(
			gomock.Any(),
			gomock.Any(),
			true,
			true,
			"report.json",
		).Do(func(c *detect.Config, p detect.Prober, noProgress, printJson bool, outFile string) {
			cfg = c
			prober = p
		})

		mockRunner.EXPECT().Run().Return(nil)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{
			"--subnet", "10.0.0",
			"--start", "1",
			"--end", "3",
			"--main-thread",
			"--icmp",
			"--timeout", "250ms",
			"--json",
			"--no-progress",
			"--out-file", "report.json",
		})

		err = cmd.Execute()

		assert.NoError(st, err)

		assert.Equal(st, "10.0.0", cfg.SubnetPrefix())
		assert.Equal(st, 1, cfg.StartOffset())
		assert.Equal(st, 3, cfg.EndOffset())
		assert.True(st, cfg.DeliverOnCaller())

		icmp, ok := prober.(*detect.ICMPProber)

		assert.True(st, ok)
		assert.Equal(st, time.Millisecond*250, icmp.Timeout())
		assert.False(st, icmp.Privileged())
	})

	t.Run("falls back to default subnet without network", func(st *testing.T) {
		mockRunner := mock_core.NewMockRunner(ctrl)

		var cfg *detect.Config

		mockRunner.EXPECT().Initialize(
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
		).Do(func(c *detect.Config, p detect.Prober, noProgress, printJson bool, outFile string) {
			cfg = c
		})

		mockRunner.EXPECT().Run().Return(nil)

		cmd, err := cli.Root(mockRunner, nil)

		assert.NoError(st, err)

		cmd.SetArgs([]string{"--start", "5", "--end", "5"})

		err = cmd.Execute()

		assert.NoError(st, err)
		assert.Equal(st, detect.DefaultSubnet, cfg.SubnetPrefix())
	})

	t.Run("returns run error", func(st *testing.T) {
		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		testErr := errors.New("mock run error")

		mockRunner.EXPECT().Initialize(
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
		)

		mockRunner.EXPECT().Run().Return(testErr)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{"--no-progress"})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		err = cmd.Execute()

		assert.ErrorIs(st, err, testErr)
	})

	t.Run("returns error for unknown interface", func(st *testing.T) {
		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{"--interface", "netdetect-does-not-exist0"})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		err = cmd.Execute()

		assert.Error(st, err)
	})

	t.Run("logs the local network before running", func(st *testing.T) {
		defer logger.Reset()

		buf := &bytes.Buffer{}

		logger.SetOutput(buf)

		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		mockRunner.EXPECT().Initialize(
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
		)

		mockRunner.EXPECT().Run().Return(nil)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{})

		err = cmd.Execute()

		assert.NoError(st, err)

		output := buf.String()

		assert.Contains(st, output, "scanning from local network")
		assert.Contains(st, output, "test-host")
		assert.Contains(st, output, "test-interface")
		assert.Contains(st, output, "172.17.1.20")
		assert.Contains(st, output, "172.17.1.1")
		assert.Contains(st, output, "172.17.1.0/24")
		assert.Contains(st, output, "255.255.255.0")
	})

	t.Run("writes logs to log file", func(st *testing.T) {
		defer logger.Reset()

		logFile := filepath.Join(st.TempDir(), "netdetect.log")

		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		mockRunner.EXPECT().Initialize(
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
			gomock.Any(),
		)

		mockRunner.EXPECT().Run().Return(nil)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{"--log-file", logFile})

		err = cmd.Execute()

		assert.NoError(st, err)

		output, err := os.ReadFile(logFile)

		assert.NoError(st, err)
		assert.Contains(st, string(output), "scanning from local network")
	})

	t.Run("returns error for unknown log level", func(st *testing.T) {
		mockNetwork := newMockNetwork()

		mockRunner := mock_core.NewMockRunner(ctrl)

		cmd, err := cli.Root(mockRunner, mockNetwork)

		assert.NoError(st, err)

		cmd.SetArgs([]string{"--log-level", "chatty"})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		err = cmd.Execute()

		assert.Error(st, err)
	})
}
