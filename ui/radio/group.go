// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package radio renders a group of labelled radio inputs.

A [Group] is built once from a [Config] and validated there: option values must be
non-empty and unique. Rendering takes the caller's current selection on every call;
the group never stores it. Changes come back through [Group.ChangeHandler], which
forwards the submitted value to the caller's callback.
*/
package radio

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Construction errors.
var (
	ErrMissingName    = errors.New("radio group needs a name")
	ErrNoOptions      = errors.New("radio group needs at least one option")
	ErrEmptyValue     = errors.New("radio option value is empty")
	ErrDuplicateValue = errors.New("radio option value is not unique")
	ErrInvalidLayout  = errors.New("invalid radio layout")
)

// Option is a single selectable item.
type Option struct {
	// Label is the visible text.
	Label string
	// Value identifies the option within its group.
	Value string
}

// Layout arranges the items of a group.
type Layout string

// Supported layouts. The zero value behaves as Vertical.
const (
	Vertical   Layout = "vertical"
	Horizontal Layout = "horizontal"
)

// ParseLayout parses "horizontal", "vertical" or "" (vertical).
func ParseLayout(raw string) (Layout, error) {
	switch Layout(raw) {
	case "", Vertical:
		return Vertical, nil
	case Horizontal:
		return Horizontal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, raw)
	}
}

// Translator resolves a label in the locale carried by ctx.
type Translator func(ctx context.Context, msgid string) string

// Config describes a radio group.
type Config struct {
	// Name is the form field name shared by all inputs.
	Name string
	// Options in display and tab order.
	Options []Option
	// Class is added to the outer group element.
	Class string
	// Layout defaults to Vertical.
	Layout Layout
	// Disabled disables every input.
	Disabled bool
	// AriaLabel labels the group for assistive technology.
	AriaLabel string
	// Style sets the inline style of the outer group element.
	Style string
	// ChangeURL, when set, is posted to on every change.
	ChangeURL string
	// Translate, when set, is applied to labels at render time.
	Translate Translator
}

// Group is a validated, immutable radio group.
type Group struct {
	cfg Config
}

// New validates cfg and returns a Group.
func New(cfg Config) (*Group, error) {
	if cfg.Name == "" {
		return nil, ErrMissingName
	}

	if len(cfg.Options) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Name, ErrNoOptions)
	}

	layout, err := ParseLayout(string(cfg.Layout))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	cfg.Layout = layout

	seen := make(map[string]int, len(cfg.Options))

	for i, opt := range cfg.Options {
		if opt.Value == "" {
			return nil, fmt.Errorf("%s: option %d: %w", cfg.Name, i, ErrEmptyValue)
		}

		if first, dup := seen[opt.Value]; dup {
			return nil, fmt.Errorf("%s: options %d and %d share %q: %w", cfg.Name, first, i, opt.Value, ErrDuplicateValue)
		}

		seen[opt.Value] = i
	}

	cfg.Options = slices.Clone(cfg.Options)

	return &Group{cfg: cfg}, nil
}

// Name returns the form field name.
func (g *Group) Name() string {
	return g.cfg.Name
}

// Layout returns the group's layout.
func (g *Group) Layout() Layout {
	return g.cfg.Layout
}

// Options returns a copy of the options.
func (g *Group) Options() []Option {
	return slices.Clone(g.cfg.Options)
}

// Has reports whether value belongs to one of the options.
func (g *Group) Has(value string) bool {
	return slices.ContainsFunc(g.cfg.Options, func(o Option) bool {
		return o.Value == value
	})
}
