package pkg

import (
	"crypto/tls"
	"fmt"
)

// LoadTLSConfig loads a certificate/key pair and builds a server-side TLS
// config, the Go counterpart of the original server's rustls-backed
// TlsConfig::make_config. crypto/tls plays the role the spec assigns to an
// external TLS primitive library: an assumed collaborator, not core
// engineering content for this framework.
func LoadTLSConfig(certPath, keyPath string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, &FrameworkError{
			Code:    ErrCodeTLSConfig,
			Message: fmt.Sprintf("load certificate/key pair: %v", err),
			Cause:   err,
		}
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
