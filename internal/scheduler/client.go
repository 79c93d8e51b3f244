package scheduler

import (
	"github.com/cockroachdb/errors"
)

// Commands are the raw command templates, as they appear in the config.
type Commands struct {
	List   string
	Cancel string
	Submit string
}

func DefaultCommands() Commands {
	return Commands{
		List:   DefaultListCommand,
		Cancel: DefaultCancelCommand,
		Submit: DefaultSubmitCommand,
	}
}

// Client bundles the three operations over one runner.
type Client struct {
	*Lister
	*Canceller
	*Submitter
}

func NewClient(runner Runner, cmds Commands, user string) (*Client, error) {
	list, err := ParseTemplate(cmds.List)
	if err != nil {
		return nil, errors.Wrap(err, "list command")
	}
	cancel, err := ParseTemplate(cmds.Cancel)
	if err != nil {
		return nil, errors.Wrap(err, "cancel command")
	}
	submit, err := ParseTemplate(cmds.Submit)
	if err != nil {
		return nil, errors.Wrap(err, "submit command")
	}
	return &Client{
		Lister:    NewLister(runner, list, user),
		Canceller: NewCanceller(runner, cancel),
		Submitter: NewSubmitter(runner, submit),
	}, nil
}
