// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// key models a gettext entry identified by context, singular msgid,
// and optional plural msgid_plural. For non-plural entries, plural is empty.
type key struct {
	ctx    string
	id     string
	plural string
}

type ref struct {
	file string
	line int
}

// extractor holds the shared state for AST analysis within a package.
type extractor struct {
	refs        map[key][]ref
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
	// labelFields are "pkgpath.Type.Field" string fields translated at render time.
	labelFields map[string]struct{}
}

// extractRefs walks every file of pkgs and collects translatable strings.
func extractRefs(pkgs []*packages.Package, projectRoot string, i18nPkgs, labelFields map[string]struct{}) map[key][]ref {
	refs := map[key][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			i18nPkgs:    i18nPkgs,
			labelFields: labelFields,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				case *ast.ValueSpec:
					e.handleValueSpec(x)
				}

				return true
			})
		}
	}

	return refs
}

// findI18nPkgPaths returns the paths of loaded packages named i18n that
// define a MsgKey type with string as its underlying type.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Name != "i18n" || p.Types == nil {
			return
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			return
		}

		if basic, ok := tn.Type().Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	})

	return out
}

// constString evaluates expr to a constant string if possible.
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is exactly i18n.MsgKey.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	_, ok = e.i18nPkgs[obj.Pkg().Path()]

	return ok && obj.Name() == "MsgKey"
}

// isLabelField reports whether field of the struct type named is translated.
func (e *extractor) isLabelField(named *types.Named, field string) bool {
	if named == nil || named.Obj().Pkg() == nil {
		return false
	}

	_, ok := e.labelFields[named.Obj().Pkg().Path()+"."+named.Obj().Name()+"."+field]

	return ok
}

// handleValueSpec picks up declarations such as `const title i18n.MsgKey = "Title"`.
func (e *extractor) handleValueSpec(x *ast.ValueSpec) {
	if x.Type == nil {
		return
	}

	tv, ok := e.info.Types[x.Type]
	if !ok || !e.isMsgKey(tv.Type) {
		return
	}

	for _, v := range x.Values {
		if msg, ok := constString(e.info, v); ok {
			e.addRef(v.Pos(), msg, "", "")
		}
	}
}

// handleCompositeLit finds implicit conversions to i18n.MsgKey and label fields.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	named, _ := t.(*types.Named)

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsMK, valIsMK := e.isMsgKey(u.Key()), e.isMsgKey(u.Elem())

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsMK {
				e.addConst(kv.Key)
			}

			if valIsMK {
				e.addConst(kv.Value)
			}
		}

	case *types.Slice:
		if e.isMsgKey(u.Elem()) {
			for _, elt := range x.Elts {
				e.addConst(elt)
			}
		}

	case *types.Array:
		if e.isMsgKey(u.Elem()) {
			for _, elt := range x.Elts {
				e.addConst(elt)
			}
		}

	case *types.Struct:
		for i, elt := range x.Elts {
			var field *types.Var

			value := elt

			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				id, ok := kv.Key.(*ast.Ident)
				if !ok {
					continue
				}

				field = structField(u, id.Name)
				value = kv.Value
			} else if i < u.NumFields() {
				field = u.Field(i)
			}

			if field != nil && (e.isMsgKey(field.Type()) || e.isLabelField(named, field.Name())) {
				e.addConst(value)
			}
		}
	}
}

func structField(s *types.Struct, name string) *types.Var {
	for i := range s.NumFields() {
		if s.Field(i).Name() == name {
			return s.Field(i)
		}
	}

	return nil
}

// handleCallExpr finds MsgKey conversions, Tr-family calls and MsgKey arguments.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// i18n.MsgKey("Hello")
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && e.isMsgKey(tv.Type) {
			e.addConst(x.Args[0])
		}

		return
	}

	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && fn.Pkg() != nil {
			if _, ok := e.i18nPkgs[fn.Pkg().Path()]; ok && e.handleTrCall(fn.Name(), x) {
				return
			}
		}
	}

	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return
	}

	params := sig.Params()
	last := params.Len() - 1

	for i, arg := range x.Args {
		var pt types.Type

		switch {
		case sig.Variadic() && i >= last:
			// Elements of a ...slice argument are found as a composite literal.
			if x.Ellipsis != token.NoPos {
				continue
			}

			s, ok := params.At(last).Type().(*types.Slice)
			if !ok {
				return
			}

			pt = s.Elem()
		case i < params.Len():
			pt = params.At(i).Type()
		default:
			return
		}

		if e.isMsgKey(pt) {
			e.addConst(arg)
		}
	}
}

// handleTrCall records the msgids of a Tr-family call. It reports whether
// name is one of them.
func (e *extractor) handleTrCall(name string, x *ast.CallExpr) bool {
	args := x.Args

	switch name {
	case "Tr", "NewUserError": // Tr(ctx, "msg", ...)
		if len(args) >= 2 {
			e.addConst(args[1])
		}
	case "TrC": // TrC(ctx, "ctx", "msg", ...)
		if len(args) >= 3 {
			ctx, ok1 := constString(e.info, args[1])
			msg, ok2 := constString(e.info, args[2])

			if ok1 && ok2 {
				e.addRef(args[2].Pos(), msg, ctx, "")
			}
		}
	case "TrN": // TrN(ctx, "singular", "plural", n, ...)
		if len(args) >= 4 {
			singular, ok1 := constString(e.info, args[1])
			plural, ok2 := constString(e.info, args[2])

			if ok1 && ok2 {
				e.addRef(args[1].Pos(), singular, "", plural)
			}
		}
	default:
		return false
	}

	return true
}

func (e *extractor) addConst(expr ast.Expr) {
	if msg, ok := constString(e.info, expr); ok {
		e.addRef(expr.Pos(), msg, "", "")
	}
}

// addRef records a reference to a msgid with its path relative to the project root.
func (e *extractor) addRef(pos token.Pos, msg, ctx, plural string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	k := key{ctx: ctx, id: msg, plural: plural}
	e.refs[k] = append(e.refs[k], ref{file: filepath.ToSlash(file), line: p.Line})
}
