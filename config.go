package rolecreds

import (
	"fmt"
	"io/ioutil"
	"regexp"

	"github.com/ghodss/yaml"
	multierror "github.com/hashicorp/go-multierror"
)

// STS allows at most 64 characters in a role session name; the prefix has
// to leave room for a 13 digit millisecond timestamp.
const maxSessionNamePrefixLength = 64 - 13

var sessionNamePattern = regexp.MustCompile(`^[\w+=,.@-]*$`)

// Config is the config for the role credentials provider.
type Config struct {
	// RoleARN is the role to assume. When it is blank the provider falls
	// back to the AWS_ROLE_ARN environment variable.
	RoleARN string `json:"role_arn"`

	// SessionNamePrefix is prepended to the current time in milliseconds to
	// build the role session name. Defaults to DefaultSessionNamePrefix.
	SessionNamePrefix string `json:"session_name_prefix"`
}

// Validate checks the values that are set. A blank config is valid.
func (c *Config) Validate() (errs error) {
	if c.RoleARN != "" && !isValidARN(c.RoleARN) {
		errs = multierror.Append(errs, fmt.Errorf("invalid role ARN: %v", c.RoleARN))
	}

	if !sessionNamePattern.MatchString(c.SessionNamePrefix) {
		errs = multierror.Append(errs, fmt.Errorf("invalid characters in session name prefix: %q", c.SessionNamePrefix))
	}

	if len(c.SessionNamePrefix) > maxSessionNamePrefixLength {
		errs = multierror.Append(errs, fmt.Errorf("session name prefix longer than %d characters", maxSessionNamePrefixLength))
	}

	return errs
}

// LoadConfig reads config values from a file and returns the config.
func LoadConfig(configFilePath string) (*Config, error) {
	var config Config

	b, err := ioutil.ReadFile(configFilePath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(b, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
