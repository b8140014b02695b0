//go:build windows

package pkg

import (
	"context"
	"fmt"
	"net"
	"syscall"
)

// createPlatformListener creates a Windows listener with socket options
// set via the net.ListenConfig.Control hook. Windows has no SO_REUSEPORT;
// SO_REUSEADDR is the closest equivalent and config.ReusePort is ignored.
func createPlatformListener(config ListenerConfig) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var err error
			c.Control(func(fd uintptr) {
				if config.ReuseAddr {
					if e := syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1); e != nil {
						err = fmt.Errorf("set SO_REUSEADDR: %w", e)
						return
					}
				}
				if config.ReadBuffer > 0 {
					if e := syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_RCVBUF, config.ReadBuffer); e != nil {
						err = fmt.Errorf("set SO_RCVBUF: %w", e)
						return
					}
				}
				if config.WriteBuffer > 0 {
					if e := syscall.SetsockoptInt(syscall.Handle(fd), syscall.SOL_SOCKET, syscall.SO_SNDBUF, config.WriteBuffer); e != nil {
						err = fmt.Errorf("set SO_SNDBUF: %w", e)
						return
					}
				}
			})
			return err
		},
	}

	return lc.Listen(context.Background(), config.Network, config.Address)
}
