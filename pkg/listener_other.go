//go:build !unix && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !aix && !windows

package pkg

import "net"

// createPlatformListener falls back to a plain listener on platforms with
// no socket-option support wired above; ReusePort/ReuseAddr/buffer sizes
// are silently not applied.
func createPlatformListener(config ListenerConfig) (net.Listener, error) {
	return net.Listen(config.Network, config.Address)
}
