// Package template renders journal path templates such as
// "Calendar/{year}/{month:02}/{year}-{month:02}-{day:02}".
package template

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var placeholder = regexp.MustCompile(`\{([^}:]+)(?::([^}]+))?\}`)

type variable struct {
	number int
	text   string
	isText bool
}

// Engine holds the variables available to a template.
type Engine struct {
	vars map[string]variable
}

// NewDateEngine returns an engine with the date variables for t: year, month, day,
// month_name, month_abbr, weekday and weekday_abbr.
func NewDateEngine(t time.Time) *Engine {
	e := &Engine{vars: map[string]variable{}}
	e.SetInt("year", t.Year())
	e.SetInt("month", int(t.Month()))
	e.SetInt("day", t.Day())
	e.SetString("month_name", t.Month().String())
	e.SetString("month_abbr", t.Month().String()[:3])
	e.SetString("weekday", t.Weekday().String())
	e.SetString("weekday_abbr", t.Weekday().String()[:3])
	return e
}

// SetInt adds or replaces an integer variable.
func (e *Engine) SetInt(name string, value int) {
	e.vars[name] = variable{number: value}
}

// SetString adds or replaces a string variable.
func (e *Engine) SetString(name, value string) {
	e.vars[name] = variable{text: value, isText: true}
}

// Variables returns the variable names known to the engine, sorted.
func (e *Engine) Variables() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format replaces every {name} or {name:spec} placeholder. Integer specs are
// "d", "02", and "0Nd"; string variables ignore the spec.
func (e *Engine) Format(tmpl string) (string, error) {
	var firstErr error

	out := placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if firstErr != nil {
			return match
		}
		groups := placeholder.FindStringSubmatch(match)
		name, spec := groups[1], groups[2]

		v, ok := e.vars[name]
		if !ok {
			firstErr = fmt.Errorf("unknown template variable: %s (available: %s)", name, strings.Join(e.Variables(), ", "))
			return match
		}
		if v.isText {
			return v.text
		}

		formatted, err := formatInt(v.number, spec)
		if err != nil {
			firstErr = err
			return match
		}
		return formatted
	})

	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func formatInt(value int, spec string) (string, error) {
	switch {
	case spec == "" || spec == "d":
		return strconv.Itoa(value), nil
	case spec == "02":
		return fmt.Sprintf("%02d", value), nil
	case strings.HasPrefix(spec, "0") && strings.HasSuffix(spec, "d") && len(spec) > 2:
		width, err := strconv.Atoi(spec[1 : len(spec)-1])
		if err != nil {
			return "", fmt.Errorf("invalid format specifier: %s", spec)
		}
		return fmt.Sprintf("%0*d", width, value), nil
	default:
		return "", fmt.Errorf("unsupported format specifier for integer: %s", spec)
	}
}

// JournalPath renders tmpl for the given date.
func JournalPath(tmpl string, t time.Time) (string, error) {
	return NewDateEngine(t).Format(tmpl)
}
