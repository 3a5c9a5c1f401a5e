package presign

import "log/slog"

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithHost sets the endpoint host the bucket is prefixed onto.
// Default is s3.amazonaws.com
func WithHost(host string) Option {
	return func(s *Signer) {
		if host != "" {
			s.host = host
		}
	}
}

// WithRegionalHost makes the signer use s3.<region>.amazonaws.com for each
// request instead of a fixed host.
func WithRegionalHost() Option {
	return func(s *Signer) {
		s.regional = true
	}
}

// WithClock sets the source of the signing instant.
func WithClock(c Clock) Option {
	return func(s *Signer) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger. Secrets and signatures are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Signer) {
		if l != nil {
			s.logger = l
		}
	}
}
