// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package icon

import "slices"

// catalogSuffix is appended to a Name to form its catalog key.
const catalogSuffix = "Icon"

// Name is a logical icon name.
type Name string

// Logical icon names known to the resolver.
const (
	ArrowLeft           Name = "ArrowLeft"
	ArrowRight          Name = "ArrowRight"
	Bell                Name = "Bell"
	Calendar            Name = "Calendar"
	Check               Name = "Check"
	ChevronDown         Name = "ChevronDown"
	ChevronUp           Name = "ChevronUp"
	Cross2              Name = "Cross2"
	Download            Name = "Download"
	ExclamationTriangle Name = "ExclamationTriangle"
	File                Name = "File"
	Gear                Name = "Gear"
	Home                Name = "Home"
	InfoCircled         Name = "InfoCircled"
	MagnifyingGlass     Name = "MagnifyingGlass"
	Minus               Name = "Minus"
	Pencil1             Name = "Pencil1"
	Person              Name = "Person"
	Plus                Name = "Plus"
	Trash               Name = "Trash"
	Upload              Name = "Upload"
)

// names lists every Name in declaration order.
var names = []Name{
	ArrowLeft,
	ArrowRight,
	Bell,
	Calendar,
	Check,
	ChevronDown,
	ChevronUp,
	Cross2,
	Download,
	ExclamationTriangle,
	File,
	Gear,
	Home,
	InfoCircled,
	MagnifyingGlass,
	Minus,
	Pencil1,
	Person,
	Plus,
	Trash,
	Upload,
}

// Names returns a copy of all logical icon names.
func Names() []Name {
	return slices.Clone(names)
}

// Key returns the catalog key for n.
func (n Name) Key() string {
	return string(n) + catalogSuffix
}

// Known reports whether n is one of the declared names.
func (n Name) Known() bool {
	return slices.Contains(names, n)
}
