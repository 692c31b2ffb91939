// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package icon renders inline SVG icons from an icon catalog.

Callers refer to icons by logical [Name] (for example [Check]). The catalog stores
each icon under the logical name plus the "Icon" suffix, so [Check] is looked up as
"CheckIcon". The mapping from every [Name] to its catalog entry is built once by
[NewResolver]; names the catalog does not provide are reported at that point and
render nothing afterwards.

Sizes are square. The zero [Size] renders at 15×15, the keyword sizes [SizeSM],
[SizeMD] and [SizeLG] at 8, 24 and 36 pixels, and [Pixels] at any positive size.

A missing icon is never an error for the caller: [Resolver.Resolve] logs one
diagnostic and returns nil, and [Resolver.Component] renders nothing.
*/
package icon
