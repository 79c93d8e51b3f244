package page

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

type FieldKind int

const (
	FieldNumber FieldKind = iota
	FieldEmail
	FieldPath
)

// Field describes one wizard step: what to ask, the default, and the range
// a number must fall in. Max is ignored when Unbounded is set.
type Field struct {
	Key       string
	Title     string
	Prompt    string
	Kind      FieldKind
	Default   string
	Min, Max  int
	Unbounded bool
	Optional  bool
	Unit      string
}

// Field keys, also the order of JobFields.
const (
	KeyCPUs    = "cpu"
	KeyMemory  = "mem"
	KeyHours   = "time.h"
	KeyMinutes = "time.m"
	KeyEmail   = "email"
	KeyScript  = "script"
)

// JobFields are the steps of the new job wizard.
func JobFields() []Field {
	return []Field{
		{Key: KeyCPUs, Title: "CPU Cores", Prompt: "Enter the number of CPU cores", Default: "4", Min: 1, Max: 64},
		{Key: KeyMemory, Title: "RAM Memory", Prompt: "Enter the amount of RAM in GB", Default: "32", Min: 4, Max: 1024, Unit: "GB"},
		{Key: KeyHours, Title: "Hours", Prompt: "Enter the number of Hours needed for the job", Default: "2", Min: 0, Unbounded: true},
		{Key: KeyMinutes, Title: "Minutes", Prompt: "Enter the number of Minutes needed for the job", Default: "4", Min: 0, Max: 59},
		{Key: KeyEmail, Title: "Email", Prompt: "Enter an Email Address to send notifications", Kind: FieldEmail, Optional: true},
		{Key: KeyScript, Title: "Batch script", Prompt: "Enter the path of the batch script to submit", Kind: FieldPath},
	}
}

// Range renders the accepted interval, e.g. "1 ≤ x ≤ 64".
func (f Field) Range() string {
	if f.Unbounded {
		return fmt.Sprintf("%d ≤ x", f.Min)
	}
	return fmt.Sprintf("%d ≤ x ≤ %d", f.Min, f.Max)
}

// Validate checks one non-empty answer and returns the value to store.
func (f Field) Validate(input string) (string, error) {
	input = strings.TrimSpace(input)
	switch f.Kind {
	case FieldEmail:
		addr, err := mail.ParseAddress(input)
		if err != nil {
			return "", errors.Newf("%q is not an email address", input)
		}
		return addr.Address, nil
	case FieldPath:
		return validateScript(input)
	default:
		n, err := strconv.Atoi(input)
		if err != nil {
			return "", errors.Newf("%q is not a whole number", input)
		}
		if n < f.Min || (!f.Unbounded && n > f.Max) {
			return "", errors.Newf("value must follow %s", f.Range())
		}
		return strconv.Itoa(n), nil
	}
}

func validateScript(input string) (string, error) {
	path := input
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home directory")
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", input)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Newf("no file at %s", abs)
	}
	if info.IsDir() {
		return "", errors.Newf("%s is a directory", abs)
	}
	return abs, nil
}
