// SPDX-License-Identifier: GPL-3.0-or-later

package core

import (
	"github.com/robgonnella/go-netdetect/pkg/detect"
)

//go:generate mockgen -destination=../mock/core/core.go -package=mock_core . Runner

// Runner runs a single scan and reports the results
type Runner interface {
	Initialize(
		cfg *detect.Config,
		prober detect.Prober,
		noProgress bool,
		printJson bool,
		outFile string,
	)
	Run() error
}
