// Package diag accumulates and renders compiler diagnostics. A *Bag
// collects one multierror.Error per run the way rami3l/golox's Parser
// accumulates p.errors = multierror.Append(p.errors, err); the first
// failed top-level declaration still halts the run (spec.md §4.4, §7),
// but all diagnostics raised while checking that one declaration are
// flushed together before the run aborts.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/efulang/efu/internal/token"
)

// Severity distinguishes an error (aborts the run) from an informational
// diagnostic (never produced by the core today; Infof records one and
// WriteTo renders it with an [INFO] tag).
type Severity int

const (
	SeverityError Severity = iota
	SeverityInfo
)

// Diagnostic is one localized message, per spec.md §4.4's format:
// "<file>:<line>:<col>: [ERROR] <message>".
type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Message  string
}

func (d Diagnostic) String() string {
	tag := "[ERROR]"
	if d.Severity == SeverityInfo {
		tag = "[INFO]"
	}
	return fmt.Sprintf("%s: %s %s", d.Pos, tag, d.Message)
}

// Bag accumulates diagnostics for one compiler run, or one top-level
// declaration's worth of checking, depending on the caller's scope.
type Bag struct {
	errs  *multierror.Error
	diags []Diagnostic
}

// NewBag returns an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{}
}

// Errorf records an error-severity diagnostic at pos.
func (b *Bag) Errorf(pos token.Position, format string, args ...interface{}) {
	d := Diagnostic{Severity: SeverityError, Pos: pos, Message: fmt.Sprintf(format, args...)}
	b.diags = append(b.diags, d)
	b.errs = multierror.Append(b.errs, errors.WithStack(fmt.Errorf("%s", d)))
}

// Infof records an info-severity diagnostic at pos.
func (b *Bag) Infof(pos token.Position, format string, args ...interface{}) {
	b.diags = append(b.diags, Diagnostic{Severity: SeverityInfo, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns every recorded diagnostic, in recording order.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diags
}

// Err returns the accumulated error, or nil if there were no errors.
func (b *Bag) Err() error {
	if b.errs == nil {
		return nil
	}
	return b.errs.ErrorOrNil()
}

// Merge appends other's diagnostics onto b, preserving order.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.diags {
		b.diags = append(b.diags, d)
	}
	if other.errs != nil {
		b.errs = multierror.Append(b.errs, other.errs.Errors...)
	}
}

// WriteTo renders every diagnostic to w, one per line, coloring the
// severity tag when w is a terminal (spec.md §7: diagnostics surface as
// text; this is purely presentational).
func WriteTo(w io.Writer, diags []Diagnostic) {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	errTag := color.New(color.FgRed, color.Bold).SprintFunc()
	infoTag := color.New(color.FgYellow).SprintFunc()
	for _, d := range diags {
		tag := "[ERROR]"
		if d.Severity == SeverityInfo {
			tag = "[INFO]"
		}
		if useColor {
			if d.Severity == SeverityError {
				tag = errTag(tag)
			} else {
				tag = infoTag(tag)
			}
		}
		fmt.Fprintf(w, "%s: %s %s\n", d.Pos, tag, d.Message)
	}
}
