/*
 *  Copyright (c) 2018 Uber Technologies, Inc.
 *
 *     Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package rolecreds_test

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	rolecreds "github.com/uber/role-credentials"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/aws/aws-sdk-go/service/sts/stsiface"
	"github.com/go-ini/ini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSTS struct {
	stsiface.STSAPI

	input  *sts.AssumeRoleInput
	output *sts.AssumeRoleOutput
	err    error
}

func (m *mockSTS) AssumeRole(input *sts.AssumeRoleInput) (*sts.AssumeRoleOutput, error) {
	m.input = input
	return m.output, m.err
}

func TestAWSAssumeRole(t *testing.T) {
	expires := time.Date(2018, 4, 23, 13, 45, 43, 0, time.UTC)
	svc := &mockSTS{
		output: &sts.AssumeRoleOutput{
			Credentials: &sts.Credentials{
				AccessKeyId:     aws.String("ABC123"),
				SecretAccessKey: aws.String("supersecret"),
				SessionToken:    aws.String("123tok"),
				Expiration:      aws.Time(expires),
			},
		},
	}

	creds, err := rolecreds.NewAWSFromSTS(svc).AssumeRole("arn:aws:iam::123:role/admin", "prefix1524491143000", rolecreds.SessionDuration)
	require.NoError(t, err)

	assert.Equal(t, &rolecreds.TemporaryCredentials{
		AccessKeyID:     "ABC123",
		SecretAccessKey: "supersecret",
		SessionToken:    "123tok",
		Expires:         expires,
	}, creds)

	assert.Equal(t, &sts.AssumeRoleInput{
		DurationSeconds: aws.Int64(3600),
		RoleArn:         aws.String("arn:aws:iam::123:role/admin"),
		RoleSessionName: aws.String("prefix1524491143000"),
	}, svc.input)
}

func TestAWSAssumeRoleError(t *testing.T) {
	svc := &mockSTS{err: errors.New("throttled")}

	creds, err := rolecreds.NewAWSFromSTS(svc).AssumeRole("arn:aws:iam::123:role/admin", "s", time.Hour)
	assert.EqualError(t, err, "throttled")
	assert.Nil(t, creds)
}

func TestAWSAssumeRoleMissingCredentials(t *testing.T) {
	svc := &mockSTS{output: &sts.AssumeRoleOutput{}}

	creds, err := rolecreds.NewAWSFromSTS(svc).AssumeRole("arn:aws:iam::123:role/admin", "s", time.Hour)
	assert.Equal(t, rolecreds.ErrMalformedCredentials, err)
	assert.Nil(t, creds)
}

func TestWriteCredentialsToAWSCredentialsFile(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "")
	require.NoError(t, err)

	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "aws", "credentials")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, ioutil.WriteFile(path, []byte("[default]\naws_access_key_id = KEEPME\n"), 0600))

	credsFile, err := rolecreds.NewCredentialsFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, credsFile.Path())

	fooCreds := &rolecreds.TemporaryCredentials{
		AccessKeyID:     "DEF",
		SecretAccessKey: "yyy",
		SessionToken:    "sss",
		Expires:         time.Date(2018, 4, 23, 13, 45, 43, 0, time.UTC),
	}

	require.NoError(t, credsFile.SetCredentials("foo-test", fooCreds))

	// Writing again replaces the keys rather than appending to them.
	fooCreds.SessionToken = "ttt"
	require.NoError(t, credsFile.SetCredentials("foo-test", fooCreds))

	written, err := ini.Load(path)
	require.NoError(t, err)

	section := written.Section("foo-test")
	assert.Equal(t, "DEF", section.Key("aws_access_key_id").String())
	assert.Equal(t, "yyy", section.Key("aws_secret_access_key").String())
	assert.Equal(t, "ttt", section.Key("aws_session_token").String())
	assert.Equal(t, "2018-04-23T13:45:43Z", section.Key("expiration").String())

	assert.Equal(t, "KEEPME", written.Section("default").Key("aws_access_key_id").String())
}

func TestCredentialsFileCreatesDirectory(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "")
	require.NoError(t, err)

	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "nested", "credentials")
	credsFile, err := rolecreds.NewCredentialsFile(path)
	require.NoError(t, err)

	err = credsFile.SetCredentials("bar", &rolecreds.TemporaryCredentials{
		AccessKeyID:     "A",
		SecretAccessKey: "B",
		SessionToken:    "C",
		Expires:         time.Now(),
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCredentialsFileDefaultPath(t *testing.T) {
	tempDir, err := ioutil.TempDir("", "")
	require.NoError(t, err)

	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "credentials")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", path)

	credsFile, err := rolecreds.NewCredentialsFile("")
	require.NoError(t, err)
	assert.Equal(t, path, credsFile.Path())
}
