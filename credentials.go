package rolecreds

import (
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
)

// ProviderName is reported as the source of credentials to the AWS SDK.
const ProviderName = "RoleCredentialsProvider"

// ErrNoCredentials is returned to the SDK when no role was resolved and
// nothing is cached.
var ErrNoCredentials = awserr.New("NoRoleCredentials", "no role ARN resolved and no cached role credentials", nil)

// sdkProvider exposes a Provider as an aws-sdk-go credentials.Provider.
type sdkProvider struct {
	provider *Provider
}

// Retrieve implements credentials.Provider.
func (s *sdkProvider) Retrieve() (credentials.Value, error) {
	creds := s.provider.Get()
	if creds == nil {
		return credentials.Value{ProviderName: ProviderName}, ErrNoCredentials
	}

	return credentials.Value{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		ProviderName:    ProviderName,
	}, nil
}

// IsExpired implements credentials.Provider. The SDK calls it before every
// request, so it only reads the cache state.
func (s *sdkProvider) IsExpired() bool {
	return s.provider.State() != StateFresh
}

// SDKCredentials returns credentials for an aws-sdk-go session or client:
//
//	sess := session.Must(session.NewSession(&aws.Config{
//		Credentials: provider.SDKCredentials(),
//	}))
func (p *Provider) SDKCredentials() *credentials.Credentials {
	return credentials.NewCredentials(&sdkProvider{provider: p})
}
