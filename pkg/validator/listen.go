package validator

import (
	"net"
	"strconv"
)

// ValidateListenAddr accepts host:port pairs such as 127.0.0.1:8765 or :0.
func ValidateListenAddr(addr string) bool {
	if addr == "" {
		return false
	}

	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}

	port, err := strconv.Atoi(portStr)
	return err == nil && port >= 0 && port <= 65535
}

// IsLoopback reports whether the host part of addr only binds locally.
func IsLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
