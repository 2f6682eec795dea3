package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	rolecreds "github.com/uber/role-credentials"
)

// credentialProcessOutput is the document the AWS CLI and SDKs expect from a
// credential_process.
type credentialProcessOutput struct {
	Version         int
	AccessKeyID     string `json:"AccessKeyId"`
	SecretAccessKey string
	SessionToken    string
	Expiration      string
}

// credentialsToEnv takes credentials and outputs them as a list of environment
// variables.
func credentialsToEnv(creds *rolecreds.TemporaryCredentials) (envVars []string) {
	envVars = append(envVars,
		fmt.Sprintf("%s=%s", "AWS_ACCESS_KEY_ID", creds.AccessKeyID),
		fmt.Sprintf("%s=%s", "AWS_SECRET_ACCESS_KEY", creds.SecretAccessKey),
		fmt.Sprintf("%s=%s", "AWS_SESSION_TOKEN", creds.SessionToken),
	)

	return envVars
}

// execute will act like "exec <cmd> [args ...]" in a shell, first searching
// for cmd in the path and then executing it, replacing the current running
// process.
func execute(cmd string, args []string, env []string) error {
	binary, err := exec.LookPath(cmd)
	if err != nil {
		return err
	}

	// execve will replace the current running process on success
	return syscall.Exec(binary, args, env)
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func loadProvider(opts *cliOpts, stderr io.Writer, extraOpts ...rolecreds.Option) (*rolecreds.Provider, error) {
	config, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	providerOpts := append([]rolecreds.Option{
		rolecreds.WithLogger(newLogger(stderr, opts.verbose)),
	}, extraOpts...)

	return rolecreds.NewProvider(config.RoleARN, config.SessionNamePrefix, providerOpts...)
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `Assume an AWS role and print its temporary credentials, or run the
specified command with them.

Usage:
  role-credentials [options] [command [args ...]]

Options:
      --help                         Help for role-credentials
      --role string                  ARN of the role to assume (default: role_arn
                                     from role-credentials.yaml, then $AWS_ROLE_ARN)
      --session-name-prefix string   Prefix of the role session name
      --profile string               Write the credentials to this profile in the
                                     shared credentials file
      --json                         Print a credential_process document
      --force-refresh                Assume the role even if credentials are cached
  -v, --verbose                      Log what the provider is doing to stderr
`)
}

func printVars(vars []string, out io.Writer) {
	for _, x := range vars {
		fmt.Fprintf(out, "%s\n", x)
	}
}

func printJSON(creds *rolecreds.TemporaryCredentials, out io.Writer) error {
	b, err := json.Marshal(credentialProcessOutput{
		Version:         1,
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Expiration:      creds.Expires.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", b)
	return err
}

func writeProfile(profile string, creds *rolecreds.TemporaryCredentials, stderr io.Writer) error {
	credsFile, err := rolecreds.NewCredentialsFile("")
	if err != nil {
		return err
	}
	if err := credsFile.SetCredentials(profile, creds); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Wrote credentials for profile %q to %s\n", profile, credsFile.Path())
	return nil
}

// Main is the main entry point into the CLI program.
func Main(stdout io.Writer, stderr io.Writer, args []string) (exitCode int) {
	return run(stdout, stderr, args)
}

func run(stdout io.Writer, stderr io.Writer, args []string, providerOpts ...rolecreds.Option) (exitCode int) {
	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		printHelp(stdout)
		return 0
	}

	userOpts, err := parseOptions(args)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	provider, err := loadProvider(userOpts, stderr, providerOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	var credentials *rolecreds.TemporaryCredentials
	if userOpts.forceRefresh {
		credentials = provider.ForceRefresh()
	} else {
		credentials = provider.Get()
	}

	if credentials == nil {
		fmt.Fprintf(stderr, "ERROR: no credentials: set --role, role_arn in %s or %s\n", configFile, rolecreds.RoleARNEnvVar)
		return 1
	}

	if provider.State() != rolecreds.StateFresh {
		fmt.Fprintf(stderr, "WARNING: credentials expire at %s\n", credentials.Expires.Format(time.RFC3339))
	}

	if userOpts.profile != "" {
		if err := writeProfile(userOpts.profile, credentials, stderr); err != nil {
			fmt.Fprintf(stderr, "ERROR: Could not write profile: %v\n", err)
			return 1
		}
	}

	vars := credentialsToEnv(credentials)

	switch {
	case len(userOpts.args) > 0:
		// Add AWS credentials to the environment
		env := append(os.Environ(), vars...)

		// execve will replace the current running process on success
		if err := execute(userOpts.args[0], userOpts.args, env); err != nil {
			fmt.Fprintf(stderr, "ERROR: Could not execute command: %v\n", err)
			return 127
		}

	case userOpts.json:
		if err := printJSON(credentials, stdout); err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			return 1
		}

	case userOpts.profile == "":
		// Print vars to stdout
		printVars(vars, stdout)
	}

	return 0
}
