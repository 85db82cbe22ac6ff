/*
 * update.go, part of goqmc.
 *
 *
 * Copyright 2024 The goqmc Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package qmc

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

//Diagnostic explains why Merge did not copy a field.
type Diagnostic struct {
	Field  string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Field, d.Reason)
}

//Reasons used in Merge diagnostics.
const (
	ReasonMissing  = "attribute does not exist in the target, skipped"
	ReasonRefused  = "update cancelled, it requires the job to be rerun"
	ReasonBadType  = "attribute types differ, skipped"
	ReasonReadOnly = "attribute cannot be set, skipped"
)

//equalOpts compares structs deeply, gonum matrices by value and nil and
//empty slices or maps as equal.
var equalOpts = []cmp.Option{
	cmp.Comparer(func(a, b *mat.Dense) bool {
		if a == nil || b == nil {
			return a == b
		}
		return mat.Equal(a, b)
	}),
	cmp.Comparer(func(a, b *mat.CDense) bool {
		if a == nil || b == nil {
			return a == b
		}
		ar, ac := a.Dims()
		br, bc := b.Dims()
		if ar != br || ac != bc {
			return false
		}
		for i := 0; i < ar; i++ {
			for j := 0; j < ac; j++ {
				if a.At(i, j) != b.At(i, j) {
					return false
				}
			}
		}
		return true
	}),
	cmpopts.EquateEmpty(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

//DeepEqual reports whether a and b hold the same values, comparing the
//contents of slices, arrays, maps and gonum matrices.
func DeepEqual(a, b any) bool {
	return cmp.Equal(a, b, equalOpts...)
}

//fieldNames returns the Go name of f and, if it has one, its yaml name.
func fieldNames(f reflect.StructField) []string {
	names := []string{f.Name}
	if tag, ok := f.Tag.Lookup("yaml"); ok {
		name := strings.Split(tag, ",")[0]
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

func anyIn(list []string, names []string) bool {
	for _, n := range names {
		if isInString(list, n) {
			return true
		}
	}
	return false
}

//Merge copies into target the fields of source that differ from the target's
//and are listed in allow. Fields are matched by Go name or yaml name, and
//skip and allow may use either.
//Fields in skip are ignored. A differing field not in allow is not copied,
//since the results obtained with the old value would no longer be
//reproducible; neither is a field the target lacks. Both cases produce a
//Diagnostic, which is also logged as a warning.
//Merge returns true if anything was copied. target must be a pointer to a
//struct, source a struct or a pointer to one.
func Merge(target, source any, skip, allow []string) (bool, []Diagnostic, error) {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Ptr || tv.Elem().Kind() != reflect.Struct {
		return false, nil, NewError(ErrNotStruct, "target", "Merge")
	}
	tv = tv.Elem()
	sv := reflect.Indirect(reflect.ValueOf(source))
	if sv.Kind() != reflect.Struct {
		return false, nil, NewError(ErrNotStruct, "source", "Merge")
	}
	tfields := make(map[string]int)
	tt := tv.Type()
	for i := 0; i < tt.NumField(); i++ {
		if !tt.Field(i).IsExported() {
			continue
		}
		for _, n := range fieldNames(tt.Field(i)) {
			if _, ok := tfields[n]; !ok {
				tfields[n] = i
			}
		}
	}
	var diags []Diagnostic
	warn := func(field, reason string) {
		diags = append(diags, Diagnostic{Field: field, Reason: reason})
		Logger().Warn("object update", zap.String("field", field), zap.String("reason", reason))
	}
	updated := false
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		names := fieldNames(sf)
		if anyIn(skip, names) {
			continue
		}
		idx := -1
		for _, n := range names {
			if j, ok := tfields[n]; ok {
				idx = j
				break
			}
		}
		if idx < 0 {
			warn(sf.Name, ReasonMissing)
			continue
		}
		tf := tv.Field(idx)
		sval := sv.Field(i)
		if sval.Type() != tf.Type() {
			warn(sf.Name, ReasonBadType)
			continue
		}
		if DeepEqual(tf.Interface(), sval.Interface()) {
			continue
		}
		if !anyIn(allow, names) {
			warn(sf.Name, ReasonRefused)
			continue
		}
		if !tf.CanSet() {
			warn(sf.Name, ReasonReadOnly)
			continue
		}
		tf.Set(sval)
		updated = true
	}
	return updated, diags, nil
}
