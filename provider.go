package rolecreds

import (
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultSessionNamePrefix is used when no session name prefix is given.
	DefaultSessionNamePrefix = "role-based-credential-provider"

	// RoleARNEnvVar is consulted when the provider was built without a role.
	RoleARNEnvVar = "AWS_ROLE_ARN"

	// RenewBuffer is the time before expiry within which cached credentials
	// are treated as stale.
	RenewBuffer = time.Minute

	// SessionDuration is the life span requested for each role session.
	SessionDuration = time.Hour
)

// EnvLookup looks up an environment variable, like os.LookupEnv.
type EnvLookup func(key string) (string, bool)

// State describes the cache slot of a Provider.
type State int

const (
	// StateEmpty means no role session has been started yet.
	StateEmpty State = iota
	// StateFresh means the cached credentials are good for at least RenewBuffer.
	StateFresh
	// StateStale means the cached credentials expire within RenewBuffer.
	StateStale
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	}
	return "unknown"
}

// Provider hands out temporary credentials for a single role, assuming the
// role again whenever the cached credentials are about to expire.
//
// Refreshes happen on the caller's goroutine, inside Get or ForceRefresh.
// A failed refresh is logged and the previous credentials are kept. It is
// safe to call Get and ForceRefresh concurrently; concurrent refreshes are
// not collapsed and the last one to succeed wins.
type Provider struct {
	roleARN           string
	sessionNamePrefix string

	aws       AWSProvider
	clock     Clock
	lookupEnv EnvLookup
	log       logrus.FieldLogger
	metrics   *metrics

	current atomic.Pointer[TemporaryCredentials]
}

// NewProvider creates a Provider for roleARN. An empty roleARN defers to the
// AWS_ROLE_ARN environment variable at every refresh, and an empty
// sessionNamePrefix means DefaultSessionNamePrefix.
func NewProvider(roleARN string, sessionNamePrefix string, opts ...Option) (*Provider, error) {
	p := &Provider{
		roleARN:           roleARN,
		sessionNamePrefix: sessionNamePrefix,
		metrics:           newMetrics(),
	}

	if err := p.applyOptions(opts...); err != nil {
		return nil, err
	}

	if err := p.setDefaults(); err != nil {
		return nil, err
	}

	return p, nil
}

// Get returns the cached credentials, first starting a new role session if
// the cache is empty or stale. It returns nil when no role could be resolved
// and nothing was ever cached. A failed refresh is not reported: the
// previous, possibly stale, credentials are returned instead.
func (p *Provider) Get() *TemporaryCredentials {
	p.log.Debug("get credentials called")

	if p.needsNewSession() {
		p.startSession()
	}

	return p.cached()
}

// ForceRefresh starts a new role session regardless of how fresh the cached
// credentials are, and returns whatever is cached afterwards. Use it when a
// downstream call was rejected with the current credentials.
func (p *Provider) ForceRefresh() *TemporaryCredentials {
	p.log.Debug("force refresh called")

	p.startSession()

	return p.cached()
}

// State returns the state of the cache slot at the current clock time.
func (p *Provider) State() State {
	creds := p.current.Load()
	if creds == nil {
		return StateEmpty
	}
	if p.credentialsExpired(creds.Expires) {
		return StateStale
	}
	return StateFresh
}

// cached returns a copy of the cached credentials so callers can't modify
// the stored value.
func (p *Provider) cached() *TemporaryCredentials {
	creds := p.current.Load()
	if creds == nil {
		return nil
	}
	c := *creds
	return &c
}

func (p *Provider) needsNewSession() bool {
	switch state := p.State(); state {
	case StateEmpty:
		p.log.Debug("session credentials do not exist, need new session")
		return true
	case StateStale:
		p.log.Debug("session credentials exist but are about to expire, need new session")
		return true
	}

	p.log.Debug("session credentials exist and are not expired")
	return false
}

// credentialsExpired returns a boolean indicating whether the credentials
// are within RenewBuffer of expiryTime. Both times are compared in whole
// milliseconds.
func (p *Provider) credentialsExpired(expiryTime time.Time) bool {
	timeRemaining := expiryTime.UnixMilli() - p.clock.Now().UnixMilli()
	return timeRemaining < RenewBuffer.Milliseconds()
}

// startSession assumes the role and replaces the cached credentials. Every
// failure is logged and swallowed.
func (p *Provider) startSession() {
	roleARN, ok := p.resolveRoleARN()
	if !ok {
		p.metrics.refreshes.WithLabelValues(refreshUnresolved).Inc()
		return
	}

	sessionName := p.sessionName()
	log := p.log.WithFields(logrus.Fields{
		"role_arn":     roleARN,
		"session_name": sessionName,
	})

	creds, err := p.aws.AssumeRole(roleARN, sessionName, SessionDuration)
	if err == nil {
		err = creds.validate()
	}
	if err != nil {
		p.metrics.refreshes.WithLabelValues(refreshFailure).Inc()
		if IsAWSAccessDeniedError(err) {
			log.WithError(err).Warn("access denied assuming role, keeping previous session credentials")
		} else {
			log.WithError(err).Warn("unable to start a new session, keeping previous session credentials")
		}
		return
	}

	stored := *creds
	p.current.Store(&stored)

	p.metrics.refreshes.WithLabelValues(refreshSuccess).Inc()
	p.metrics.expiry.Set(float64(stored.Expires.Unix()))

	log.WithFields(logrus.Fields{
		"access_key_id": maskKeyID(stored.AccessKeyID),
		"expires":       stored.Expires.Format(time.RFC3339),
	}).Info("started new role session")
}

// resolveRoleARN returns the configured role, or the role from the
// environment when none was configured. It is evaluated on every refresh.
func (p *Provider) resolveRoleARN() (string, bool) {
	if p.roleARN != "" {
		return p.roleARN, true
	}

	p.log.Debugf("no role configured, checking environment variable %s", RoleARNEnvVar)

	if roleARN, ok := p.lookupEnv(RoleARNEnvVar); ok && roleARN != "" {
		p.log.WithField("role_arn", roleARN).Infof("using role ARN from %s", RoleARNEnvVar)
		return roleARN, true
	}

	p.log.Warnf("no role configured and %s not set, not assuming a role", RoleARNEnvVar)
	return "", false
}

// sessionName labels the role session for CloudTrail. It is not unique.
func (p *Provider) sessionName() string {
	return p.sessionNamePrefix + strconv.FormatInt(p.clock.Now().UnixMilli(), 10)
}

func (p *Provider) setDefaults() error {
	if p.aws == nil {
		defaultAWS, err := NewAWS()
		if err != nil {
			return err
		}
		p.aws = defaultAWS
	}

	if p.clock == nil {
		p.clock = &defaultClock{}
	}

	if p.lookupEnv == nil {
		p.lookupEnv = os.LookupEnv
	}

	if p.log == nil {
		logger := logrus.New()
		logger.SetLevel(logrus.WarnLevel)
		p.log = logger
	}

	if p.sessionNamePrefix == "" {
		p.sessionNamePrefix = DefaultSessionNamePrefix
	}

	return nil
}
