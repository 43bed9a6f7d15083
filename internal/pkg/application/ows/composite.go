package ows

import (
	"errors"
	"strings"
)

// Composite collects several exceptions into one report
type Composite struct {
	Exceptions []*Exception
}

func (c *Composite) Add(err error) {
	if err == nil {
		return
	}

	var other *Composite
	if errors.As(err, &other) {
		c.Exceptions = append(c.Exceptions, other.Exceptions...)
		return
	}

	c.Exceptions = append(c.Exceptions, AsException(err))
}

func (c *Composite) HasExceptions() bool {
	return len(c.Exceptions) > 0
}

// ErrOrNil returns c as an error if it holds any exceptions
func (c *Composite) ErrOrNil() error {
	if c.HasExceptions() {
		return c
	}
	return nil
}

func (c *Composite) Error() string {
	msgs := make([]string, 0, len(c.Exceptions))
	for _, e := range c.Exceptions {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (c *Composite) Unwrap() []error {
	errs := make([]error, 0, len(c.Exceptions))
	for _, e := range c.Exceptions {
		errs = append(errs, e)
	}
	return errs
}

// Status of a composite report is the most severe status of its members
func (c *Composite) Status() int {
	status := 0
	for _, e := range c.Exceptions {
		if s := e.Status(); s > status {
			status = s
		}
	}
	return status
}
