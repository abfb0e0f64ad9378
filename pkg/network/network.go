// SPDX-License-Identifier: GPL-3.0-or-later

package network

import (
	"net"
)

// UserNetwork data structure for implementing Network interface
type UserNetwork struct {
	info *networkInfo
}

// NewDefaultNetwork returns the network used for traffic to the default
// gateway
func NewDefaultNetwork() (*UserNetwork, error) {
	info, err := getDefaultNetworkInfo()

	if err != nil {
		return nil, err
	}

	return &UserNetwork{info: info}, nil
}

// NewNetworkFromInterfaceName returns a UserNetwork instance from the
// provided interface name
func NewNetworkFromInterfaceName(interfaceName string) (*UserNetwork, error) {
	info, err := getNetworkInfoFromInterfaceName(interfaceName)

	if err != nil {
		return nil, err
	}

	return &UserNetwork{info: info}, nil
}

// Hostname returns the hostname for this host
func (n *UserNetwork) Hostname() string {
	return n.info.hostname
}

// Gateway returns the default network gateway for this host
func (n *UserNetwork) Gateway() net.IP {
	return n.info.gateway
}

// UserIP returns the IPv4 address assigned to this network's interface
func (n *UserNetwork) UserIP() net.IP {
	return n.info.userIP
}

// IPNet returns the *net.IPNet associated with this network's interface
func (n *UserNetwork) IPNet() *net.IPNet {
	return n.info.ipnet
}

// Interface returns this network's interface
func (n *UserNetwork) Interface() *net.Interface {
	return n.info.iface
}

// Cidr returns the cidr block associated with this network's interface
func (n *UserNetwork) Cidr() string {
	return n.info.cidr
}

// SubnetPrefix returns the first three octets of the user's IP,
// i.e. "192.168.1"
func (n *UserNetwork) SubnetPrefix() string {
	return n.info.prefix
}
