// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/robgonnella/go-netdetect/internal/cli"
	"github.com/robgonnella/go-netdetect/internal/core"
	"github.com/robgonnella/go-netdetect/internal/logger"
	"github.com/robgonnella/go-netdetect/pkg/network"
)

func main() {
	log := logger.New()

	var userNet network.Network

	defaultNet, err := network.NewDefaultNetwork()

	if err != nil {
		// the subnet can still be supplied with --subnet
		log.Warn().Err(err).Msg("failed to find default network")
	} else {
		userNet = defaultNet
	}

	runner := core.New()

	cmd, err := cli.Root(runner, userNet)

	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cli")
	}

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command encountered an error")
	}
}
