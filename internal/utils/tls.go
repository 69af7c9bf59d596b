package utils

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/voidshard/etlmon/pkg/errors"
)

// redisCipherSuites are the suites offered to the event transport's redis.
var redisCipherSuites = []uint16{
	tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
	tls.TLS_RSA_WITH_AES_256_GCM_SHA384,
	tls.TLS_RSA_WITH_AES_256_CBC_SHA,
}

// TLSConfig builds the client TLS config used to reach the events redis.
// With no paths at all it returns nil, meaning plain TCP. A client cert needs
// both cert and key; a CA file replaces the system roots.
func TLSConfig(caPath, certPath, keyPath string) (*tls.Config, error) {
	if caPath == "" && certPath == "" && keyPath == "" {
		return nil, nil
	}
	if (certPath == "") != (keyPath == "") {
		return nil, errors.Wrap(errors.ErrInvalidArg, "tls cert and key must be given together")
	}

	cfg := &tls.Config{
		MinVersion:       tls.VersionTLS12,
		CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
		CipherSuites:     redisCipherSuites,
	}

	if certPath != "" {
		pair, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "load tls key pair %s: %v", certPath, err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	if caPath != "" {
		pem, err := os.ReadFile(caPath)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "read ca cert: %v", err)
		}
		roots := x509.NewCertPool()
		if !roots.AppendCertsFromPEM(pem) {
			return nil, errors.Wrapf(errors.ErrInvalidArg, "no certificates found in %s", caPath)
		}
		cfg.RootCAs = roots
	}

	return cfg, nil
}
