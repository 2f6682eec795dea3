package cli

import (
	"errors"
	"fmt"
)

// cliOpts are the available options for the role-credentials CLI.
type cliOpts struct {
	// args is for collecting the remainder arguments (that are not part of
	// role-credentials' options). We stop parsing on first unknown option and
	// then collect the remaining args because they will be executed.
	args []string

	// role is the ARN of the role to assume; overrides the config file
	role string

	// sessionNamePrefix overrides the session name prefix from the config file
	sessionNamePrefix string

	// profile is the name of a profile in the shared credentials file to
	// write the credentials to
	profile string

	// json prints a credential_process document instead of env vars
	json bool

	forceRefresh bool
	verbose      bool
}

// argumentList is a special slice of strings that includes helpers for
// processing.
type argumentList []string

var errMissingValue = errors.New("Missing value for option")

// Next returns the arg from the beginning of the argument list and
// removes it from the list.
func (a *argumentList) Next() string {
	s := *a

	if len(s) == 0 {
		return ""
	}

	// shift / mutate slice
	next, newList := s[0], s[1:]
	*a = newList

	return next
}

// value returns the next argument as the value of option, failing when
// nothing is left.
func (a *argumentList) value(option string) (string, error) {
	if len(*a) == 0 {
		return "", fmt.Errorf("%v: %s", errMissingValue, option)
	}
	return a.Next(), nil
}

func parseOptions(args argumentList) (opts *cliOpts, err error) {
	opts = &cliOpts{}

ArgsLoop:
	for len(args) > 0 {
		switch arg := args.Next(); arg {

		case "--role":
			if opts.role, err = args.value(arg); err != nil {
				return opts, err
			}

		case "--session-name-prefix":
			if opts.sessionNamePrefix, err = args.value(arg); err != nil {
				return opts, err
			}

		case "--profile":
			if opts.profile, err = args.value(arg); err != nil {
				return opts, err
			}

		case "--json":
			opts.json = true

		case "--force-refresh":
			opts.forceRefresh = true

		case "--verbose", "-v":
			opts.verbose = true

		case "--":
			// Stop parsing and add remaining args to opts.args
			opts.args = append(opts.args, args...)
			break ArgsLoop

		default:
			// Stop parsing and add this arg + remaining args to opts.args
			opts.args = append(opts.args, arg)
			opts.args = append(opts.args, args...)
			break ArgsLoop
		}
	}

	return opts, nil
}
