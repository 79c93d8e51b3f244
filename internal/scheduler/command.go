package scheduler

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"
)

// Default command templates. Placeholders in braces are filled per argument.
const (
	ListFormat           = "%A;%u;%T;%M;%L;%D;%m;%C"
	DefaultListCommand   = `squeue -u {user} --noheader --format="` + ListFormat + `"`
	DefaultCancelCommand = "scancel {id}"
	DefaultSubmitCommand = "sbatch --parsable"
)

// Template is a command line split the way a shell would split it.
type Template struct {
	raw  string
	argv []string
}

func ParseTemplate(raw string) (Template, error) {
	argv, err := shellquote.Split(raw)
	if err != nil {
		return Template{}, errors.Wrapf(err, "parse command %q", raw)
	}
	if len(argv) == 0 {
		return Template{}, errors.Newf("command %q is empty", raw)
	}
	return Template{raw: raw, argv: argv}, nil
}

// MustParseTemplate is for the built-in defaults.
func MustParseTemplate(raw string) Template {
	t, err := ParseTemplate(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Expand substitutes {name} with vars[name] in every argument. Unknown
// placeholders are left alone.
func (t Template) Expand(vars map[string]string) []string {
	out := make([]string, len(t.argv))
	for i, arg := range t.argv {
		for name, value := range vars {
			arg = strings.ReplaceAll(arg, "{"+name+"}", value)
		}
		out[i] = arg
	}
	return out
}

// Has reports whether any argument mentions {name}.
func (t Template) Has(name string) bool {
	needle := "{" + name + "}"
	for _, arg := range t.argv {
		if strings.Contains(arg, needle) {
			return true
		}
	}
	return false
}

func (t Template) Program() string {
	if len(t.argv) == 0 {
		return ""
	}
	return t.argv[0]
}

func (t Template) String() string {
	return t.raw
}
