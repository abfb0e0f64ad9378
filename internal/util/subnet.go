// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

/**
 * Subnet prefix helpers
 */

var validate = validator.New()

// IsOctet returns true if n fits in a single IPv4 octet
func IsOctet(n int) bool {
	return validate.Var(n, "gte=0,lte=255") == nil
}

// IsSubnetPrefix returns true if s is three dot separated decimal octets,
// i.e. "192.168.1"
func IsSubnetPrefix(s string) bool {
	if len(strings.Split(s, ".")) != 3 {
		return false
	}

	// any host octet completes a valid prefix into an address
	return validate.Var(s+".0", "ipv4") == nil
}

// SubnetPrefixFromIP returns the first three octets of an IPv4 address
func SubnetPrefixFromIP(ip net.IP) (string, error) {
	v4 := ip.To4()

	if v4 == nil {
		return "", errors.New("subnet prefix requires an IPv4 address")
	}

	return fmt.Sprintf("%d.%d.%d", v4[0], v4[1], v4[2]), nil
}
