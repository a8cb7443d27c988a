// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package report renders the line-oriented apply stream: per-entry progress,
// creation notices, outcomes and the final summary. Presentation is keyed by
// severity and routed through a pluggable sink so color stays out of the
// apply logic.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/regctl/regctl/internal/settings"
)

// Severity classifies a report line for presentation.
type Severity int

const (
	SevInfo Severity = iota
	SevSuccess
	SevWarn
	SevError
)

// Sink receives finished report lines with their severity.
type Sink interface {
	Emit(sev Severity, line string)
}

// ConsoleSink writes lines to a writer, styling by severity when color is
// enabled.
type ConsoleSink struct {
	w     io.Writer
	color bool

	success lipgloss.Style
	warn    lipgloss.Style
	errs    lipgloss.Style
}

// NewConsoleSink builds a sink for w. Pass ColorEnabled for the usual
// flag-or-tty decision.
func NewConsoleSink(w io.Writer, color bool) *ConsoleSink {
	return &ConsoleSink{
		w:       w,
		color:   color,
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		errs:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Emit implements Sink.
func (s *ConsoleSink) Emit(sev Severity, line string) {
	if s.color {
		switch sev {
		case SevSuccess:
			line = s.success.Render(line)
		case SevWarn:
			line = s.warn.Render(line)
		case SevError:
			line = s.errs.Render(line)
		}
	}
	fmt.Fprintln(s.w, line)
}

// ColorEnabled reports whether styled output should be used: either forced
// by flag or because stdout is a terminal.
func ColorEnabled(force bool) bool {
	return force || term.IsTerminal(int(os.Stdout.Fd()))
}

// Reporter emits the apply stream through a sink. When quiet, per-entry
// progress is suppressed; failures and the summary always come through.
type Reporter struct {
	sink  Sink
	quiet bool
}

func New(sink Sink, quiet bool) *Reporter {
	return &Reporter{sink: sink, quiet: quiet}
}

// EntryHeader identifies the entry about to be processed.
func (r *Reporter) EntryHeader(e settings.Entry) {
	if r.quiet {
		return
	}
	line := fmt.Sprintf("applying %s\\%s", e.Path, e.Name)
	if e.Description != "" {
		line += fmt.Sprintf(" (%s)", e.Description)
	}
	r.sink.Emit(SevInfo, line)
}

// PathCreated notes that Ensuring materialized a new path.
func (r *Reporter) PathCreated(path string) {
	if r.quiet {
		return
	}
	r.sink.Emit(SevInfo, fmt.Sprintf("  created path %s", path))
}

// EntryApplied reports a successful write with the applied value and its
// resolved type.
func (r *Reporter) EntryApplied(e settings.Entry, v settings.TypedValue) {
	if r.quiet {
		return
	}
	line := fmt.Sprintf("  set %s = %s [%s]", e.Name, v.Display(), v.Type)
	if v.Type == settings.TypeBinary {
		line += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(len(v.Bin))))
	}
	r.sink.Emit(SevSuccess, line)
}

// EntryFailed reports a per-entry failure with the captured message.
func (r *Reporter) EntryFailed(e settings.Entry, err error) {
	r.sink.Emit(SevError, fmt.Sprintf("  failed %s\\%s: %v", e.Path, e.Name, err))
}

// NoSettings reports the empty-document no-op.
func (r *Reporter) NoSettings(source string) {
	r.sink.Emit(SevWarn, fmt.Sprintf("no settings found in %s", source))
}

// Summary emits the final tallies.
func (r *Reporter) Summary(succeeded, failed int) {
	sev := SevSuccess
	if failed > 0 {
		sev = SevWarn
	}
	r.sink.Emit(sev, fmt.Sprintf("done: %d applied, %d failed", succeeded, failed))
}
