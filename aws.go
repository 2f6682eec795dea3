package rolecreds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/defaults"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"
	"github.com/go-ini/ini"
)

// ErrMalformedCredentials is returned when sts:AssumeRole succeeds but the
// response is missing part of the credential set.
var ErrMalformedCredentials = errors.New("malformed credentials in AssumeRole response")

// IsAWSAccessDeniedError indicates whether an error is an AWS "access denied"
// error.
func IsAWSAccessDeniedError(err error) bool {
	awsErr, ok := err.(awserr.Error)
	return (ok && awsErr.Code() == "AccessDenied")
}

//go:generate mockgen -destination=mocks/mock_aws.go -package=mocks github.com/uber/role-credentials AWSProvider

// AWSProvider is the role-assumption capability the Provider drives.
type AWSProvider interface {
	AssumeRole(roleARN string, sessionName string, duration time.Duration) (*TemporaryCredentials, error)
}

// TemporaryCredentials is a set of Amazon security credentials, along
// with an expiry.
type TemporaryCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expires         time.Time
}

// validate reports whether every part of the credential set is present.
func (c *TemporaryCredentials) validate() error {
	switch {
	case c == nil:
		return ErrMalformedCredentials
	case c.AccessKeyID == "":
		return fmt.Errorf("%v: empty access key id", ErrMalformedCredentials)
	case c.SecretAccessKey == "":
		return fmt.Errorf("%v: empty secret access key", ErrMalformedCredentials)
	case c.SessionToken == "":
		return fmt.Errorf("%v: empty session token", ErrMalformedCredentials)
	case c.Expires.IsZero():
		return fmt.Errorf("%v: missing expiration", ErrMalformedCredentials)
	}
	return nil
}

// AWS is the default implementation of AWSProvider that talks to the
// real AWS.
type AWS struct {
	sts stsiface.STSAPI
}

// NewAWS creates a new connection to AWS using the shared config and the
// default credential chain of the host.
func NewAWS() (AWSProvider, error) {
	session, err := session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %v", err)
	}
	return NewAWSFromSTS(sts.New(session)), nil
}

// NewAWSFromSTS wraps an existing STS client.
func NewAWSFromSTS(svc stsiface.STSAPI) *AWS {
	return &AWS{sts: svc}
}

// AssumeRole calls sts:AssumeRole and returns temporary credentials.
func (a *AWS) AssumeRole(roleARN string, sessionName string, duration time.Duration) (*TemporaryCredentials, error) {
	req := &sts.AssumeRoleInput{
		DurationSeconds: aws.Int64(int64(duration.Seconds())),
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(sessionName),
	}

	res, err := a.sts.AssumeRole(req)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Credentials == nil {
		return nil, ErrMalformedCredentials
	}

	return &TemporaryCredentials{
		AccessKeyID:     aws.StringValue(res.Credentials.AccessKeyId),
		Expires:         aws.TimeValue(res.Credentials.Expiration),
		SecretAccessKey: aws.StringValue(res.Credentials.SecretAccessKey),
		SessionToken:    aws.StringValue(res.Credentials.SessionToken),
	}, nil
}

// CredentialsFile is the shared AWS credentials file, usually at
// ~/.aws/credentials. It is only ever written to: credentials exported here
// are for other tools, the Provider never reads them back.
type CredentialsFile struct {
	path string
	ini  *ini.File
}

// NewCredentialsFile lazily loads the credentials file at path. If path is
// blank, AWS_SHARED_CREDENTIALS_FILE or the SDK default location is used.
func NewCredentialsFile(path string) (*CredentialsFile, error) {
	if path == "" {
		if os.Getenv("AWS_SHARED_CREDENTIALS_FILE") != "" {
			path = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
		} else {
			path = defaults.SharedCredentialsFilename()
		}
	}

	f, err := ini.LooseLoad(path)
	if err != nil {
		return nil, err
	}

	return &CredentialsFile{
		path: path,
		ini:  f,
	}, nil
}

// Path returns the location of the credentials file.
func (c *CredentialsFile) Path() string {
	return c.path
}

// SetCredentials saves the credentials under the named profile.
func (c *CredentialsFile) SetCredentials(profileName string, creds *TemporaryCredentials) error {
	section := c.ini.Section(profileName)

	if err := setIniKeyValue(section, "aws_access_key_id", creds.AccessKeyID); err != nil {
		return err
	}

	if err := setIniKeyValue(section, "aws_secret_access_key", creds.SecretAccessKey); err != nil {
		return err
	}

	if err := setIniKeyValue(section, "aws_session_token", creds.SessionToken); err != nil {
		return err
	}

	if err := setIniKeyValue(section, "expiration", creds.Expires.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	// Ensure dir exists
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return err
	}

	return c.ini.SaveTo(c.path)
}
