// SPDX-License-Identifier: GPL-3.0-or-later

package info

// VERSION the current release of go-netdetect
const VERSION = "v1.0.0"
