// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package apply runs the single-pass loop that writes a settings document
// into a store, entry by entry, in document order. Entry failures are local:
// they are reported, tallied and never abort the run.
package apply

import (
	"fmt"

	"github.com/regctl/regctl/internal/log"
	"github.com/regctl/regctl/internal/report"
	"github.com/regctl/regctl/internal/settings"
	"github.com/regctl/regctl/internal/store"
)

// State tracks an entry through the loop.
type State int

const (
	StatePending State = iota
	StateEnsuring
	StateWriting
	StateSucceeded
	StateFailed
)

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateEnsuring:
		return "ensuring"
	case StateWriting:
		return "writing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome is the terminal record for one entry.
type Outcome struct {
	Entry   settings.Entry
	State   State
	Created bool  // Ensuring materialized the path
	Err     error // set when State is StateFailed
}

// Result accumulates the run tallies. Succeeded + Failed always equals the
// number of entries once Run returns.
type Result struct {
	Succeeded int
	Failed    int
	Outcomes  []Outcome
}

// Run applies every document entry against the store, reporting progress as
// it goes. No entry result affects any other: there is no short-circuit and
// no rollback (a path created for a write that then fails stays created).
func Run(st store.Store, doc *settings.Document, rep *report.Reporter) Result {
	res := Result{Outcomes: make([]Outcome, 0, len(doc.Entries))}

	for _, e := range doc.Entries {
		rep.EntryHeader(e)

		out := applyEntry(st, e, rep)
		res.Outcomes = append(res.Outcomes, out)

		switch out.State {
		case StateSucceeded:
			res.Succeeded++
		case StateFailed:
			res.Failed++
			rep.EntryFailed(e, out.Err)
		}
	}

	rep.Summary(res.Succeeded, res.Failed)
	return res
}

// applyEntry walks one entry through
// Pending -> Ensuring -> Writing -> {Succeeded, Failed}.
func applyEntry(st store.Store, e settings.Entry, rep *report.Reporter) Outcome {
	out := Outcome{Entry: e, State: StatePending}

	fail := func(err error) Outcome {
		log.Debugf("entry failed: path=%s name=%s state=%s err=%v", e.Path, e.Name, out.State, err)
		out.State = StateFailed
		out.Err = err
		return out
	}

	if err := e.Validate(); err != nil {
		return fail(err)
	}

	// Resolve the type tag and coerce the raw value before touching the
	// store, so a bad entry fails without creating its path.
	t, err := settings.ParseType(e.Type)
	if err != nil {
		return fail(err)
	}
	tv, err := settings.Coerce(t, e.Value)
	if err != nil {
		return fail(err)
	}

	out.State = StateEnsuring
	exists, err := st.PathExists(e.Path)
	if err != nil {
		return fail(err)
	}
	if !exists {
		created, err := st.EnsurePath(e.Path)
		if err != nil {
			return fail(err)
		}
		out.Created = created
		if created {
			rep.PathCreated(e.Path)
		}
	}

	out.State = StateWriting
	val, err := store.Encode(tv)
	if err != nil {
		return fail(err)
	}
	if err := st.SetValue(e.Path, e.Name, val); err != nil {
		return fail(err)
	}

	out.State = StateSucceeded
	rep.EntryApplied(e, tv)
	return out
}
