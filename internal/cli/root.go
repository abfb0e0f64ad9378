// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"io"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/robgonnella/go-netdetect/internal/core"
	"github.com/robgonnella/go-netdetect/internal/logger"
	"github.com/robgonnella/go-netdetect/pkg/detect"
	"github.com/robgonnella/go-netdetect/pkg/network"
)

func Root(
	runner core.Runner,
	userNet network.Network,
) (*cobra.Command, error) {
	var printJson bool
	var noProgress bool
	var subnet string
	var ifaceName string
	var startRange int
	var endRange int
	var mainThread bool
	var useICMP bool
	var icmpTimeout time.Duration
	var privileged bool
	var outFile string
	var logFile string
	var logLevel string
	var logCloser io.Closer

	defaultSubnet := detect.DefaultSubnet
	defaultIface := ""

	if userNet != nil {
		defaultSubnet = userNet.SubnetPrefix()

		if iface := userNet.Interface(); iface != nil {
			defaultIface = iface.Name
		}
	}

	cmd := &cobra.Command{
		Use:   "go-netdetect",
		Short: "Find the live hosts on your subnet",
		Long:  `CLI to ping every host in a range of your local subnet and list the ones that answer`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.SetGlobalLevelName(logLevel); err != nil {
				return err
			}

			if logFile == "" {
				return nil
			}

			closer, err := logger.SetGlobalLogFile(logFile)

			if err != nil {
				return err
			}

			logCloser = closer

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser == nil {
				return nil
			}

			return logCloser.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scanNet := userNet

			if ifaceName != defaultIface {
				ifaceNet, err := network.NewNetworkFromInterfaceName(ifaceName)

				if err != nil {
					return err
				}

				scanNet = ifaceNet

				if !cmd.Flags().Changed("subnet") {
					subnet = ifaceNet.SubnetPrefix()
				}
			}

			logNetwork(scanNet)

			cfg := detect.NewBuilder().
				Subnet(subnet).
				StartRange(startRange).
				EndRange(endRange).
				ObserveResultInMainThread(mainThread).
				Build()

			var prober detect.Prober = detect.NewPingProber()

			if useICMP {
				prober = detect.NewICMPProber(
					detect.WithICMPTimeout(icmpTimeout),
					detect.WithPrivileged(privileged),
				)
			}

			runner.Initialize(
				cfg,
				prober,
				noProgress,
				printJson,
				outFile,
			)

			return runner.Run()
		},
	}

	cmd.Flags().BoolVar(&printJson, "json", false, "output json instead of table text")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable all output except for final results")
	cmd.Flags().StringVarP(&subnet, "subnet", "s", defaultSubnet, "dotted 3-octet subnet prefix to scan, i.e. 192.168.1")
	cmd.Flags().StringVarP(&ifaceName, "interface", "i", defaultIface, "derive the subnet prefix from this interface")
	cmd.Flags().IntVar(&startRange, "start", detect.DefaultStartRange, "first host offset to probe")
	cmd.Flags().IntVar(&endRange, "end", detect.DefaultEndRange, "last host offset to probe (inclusive)")
	cmd.Flags().BoolVar(&mainThread, "main-thread", false, "deliver results on the command's own goroutine instead of a background one")
	cmd.Flags().BoolVar(&useICMP, "icmp", false, "send ICMP echo requests directly instead of running the ping command")
	cmd.Flags().DurationVar(&icmpTimeout, "timeout", time.Second, "how long to wait for each ICMP echo reply (only used with --icmp)")
	cmd.Flags().BoolVar(&privileged, "privileged", false, "use raw sockets for ICMP (only used with --icmp, requires root)")
	cmd.Flags().StringVar(&outFile, "out-file", "", "write final report to file")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append json log lines to this file instead of the console")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error or disabled")

	cmd.AddCommand(newVersion())

	return cmd, nil
}

func logNetwork(n network.Network) {
	if n == nil {
		return
	}

	event := logger.New().Info().
		Str("hostname", n.Hostname()).
		Str("ip", n.UserIP().String()).
		Str("gateway", n.Gateway().String()).
		Str("cidr", n.Cidr())

	if iface := n.Interface(); iface != nil {
		event = event.Str("interface", iface.Name)
	}

	if ipnet := n.IPNet(); ipnet != nil {
		event = event.Str("netmask", net.IP(ipnet.Mask).String())
	}

	event.Msg("scanning from local network")
}
