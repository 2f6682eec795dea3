package rolecreds

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	multierror "github.com/hashicorp/go-multierror"
)

// Option is an option for the Provider that allows for changing of options or
// dependency injection for testing.
type Option func(*Provider) error

func (p *Provider) applyOptions(opts ...Option) (errs error) {
	for _, opt := range opts {
		if err := opt(p); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

// WithAWS allows you to pass a custom AWSProvider for talking to AWS.
func WithAWS(aws AWSProvider) Option {
	return func(p *Provider) error {
		p.aws = aws
		return nil
	}
}

// WithClock allows you to specify a custom clock implementation (for tests).
func WithClock(clock Clock) Option {
	return func(p *Provider) error {
		p.clock = clock
		return nil
	}
}

// WithEnv replaces the process environment lookup used for the AWS_ROLE_ARN
// fallback.
func WithEnv(lookup EnvLookup) Option {
	return func(p *Provider) error {
		p.lookupEnv = lookup
		return nil
	}
}

// WithLogger allows you to pass a custom logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Provider) error {
		p.log = logger
		return nil
	}
}

// WithRegisterer registers the provider's refresh metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(p *Provider) error {
		return p.metrics.register(reg)
	}
}
