// SPDX-License-Identifier: GPL-3.0-or-later

package network

import (
	"errors"
	"net"
	"os"

	"github.com/jackpal/gateway"

	"github.com/robgonnella/go-netdetect/internal/util"
)

// ErrNoIPv4Address returned when an interface has no usable IPv4 address
var ErrNoIPv4Address = errors.New("no ipv4 address associated with interface")

// private helpers
func getIPNetByIP(ip net.IP) (*net.Interface, *net.IPNet, error) {
	interfaces, err := net.Interfaces()

	if err != nil {
		return nil, nil, err
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()

		if err != nil {
			continue
		}

		for _, addr := range addrs {
			_, ipnet, err := net.ParseCIDR(addr.String())

			if err != nil {
				continue
			}

			if ipnet.Contains(ip) {
				return &iface, ipnet, nil
			}
		}
	}

	return nil, nil, errors.New("failed to find IPNet")
}

func newNetworkInfo(
	hostname string,
	gw net.IP,
	userIP net.IP,
	ipnet *net.IPNet,
	iface *net.Interface,
) (*networkInfo, error) {
	prefix, err := util.SubnetPrefixFromIP(userIP)

	if err != nil {
		return nil, err
	}

	ones, bits := ipnet.Mask.Size()

	// 16 byte masks are possible for ipv4 addresses
	if bits == net.IPv6len*8 {
		ones -= 96
	}

	mask := net.CIDRMask(ones, net.IPv4len*8)
	cidr := (&net.IPNet{IP: userIP.Mask(mask), Mask: mask}).String()

	return &networkInfo{
		hostname: hostname,
		gateway:  gw,
		userIP:   userIP,
		ipnet:    ipnet,
		iface:    iface,
		cidr:     cidr,
		prefix:   prefix,
	}, nil
}

func getDefaultNetworkInfo() (*networkInfo, error) {
	hostname, err := os.Hostname()

	if err != nil {
		return nil, err
	}

	gw, err := gateway.DiscoverGateway()

	if err != nil {
		return nil, err
	}

	// udp doesn't make a full connection and will find the default ip
	// that traffic will use if say 2 are configured (wired and wireless)
	conn, err := net.Dial("udp", gw.String()+":80")

	if err != nil {
		return nil, err
	}

	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	foundIP := localAddr.IP.To4()

	if foundIP == nil {
		return nil, ErrNoIPv4Address
	}

	iface, ipnet, err := getIPNetByIP(foundIP)

	if err != nil {
		return nil, err
	}

	return newNetworkInfo(hostname, gw, foundIP, ipnet, iface)
}

func getNetworkInfoFromInterfaceName(interfaceName string) (*networkInfo, error) {
	hostname, err := os.Hostname()

	if err != nil {
		return nil, err
	}

	iface, err := net.InterfaceByName(interfaceName)

	if err != nil {
		return nil, err
	}

	addrs, err := iface.Addrs()

	if err != nil {
		return nil, err
	}

	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)

		if !ok || ipnet.IP.IsLoopback() || ipnet.IP.To4() == nil {
			continue
		}

		// gateway is informational only, an interface without a default
		// route can still be scanned
		gw, _ := gateway.DiscoverGateway()

		userIP := ipnet.IP.To4()
		network := &net.IPNet{IP: userIP.Mask(ipnet.Mask), Mask: ipnet.Mask}

		return newNetworkInfo(hostname, gw, userIP, network, iface)
	}

	return nil, ErrNoIPv4Address
}
