/*
 * options.go, part of goqmc.
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
	"bytes"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//OptionNames returns the option keys the struct pointed to by target
//accepts: the yaml names of its exported fields.
func OptionNames(target any) ([]string, error) {
	t := reflect.TypeOf(target)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, NewError(ErrNotStruct, "options", "OptionNames")
	}
	t = t.Elem()
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.ToLower(f.Name)
		if tag, ok := f.Tag.Lookup("yaml"); ok {
			name = strings.Split(tag, ",")[0]
			if name == "-" {
				continue
			}
			if name == "" {
				name = strings.ToLower(f.Name)
			}
		}
		names = append(names, name)
	}
	return names, nil
}

//SetOptions sets the fields of the struct pointed to by target from opts,
//keyed by yaml name. Fields not in opts keep their values. An unknown key
//or a value of the wrong type is a configuration error naming the key, and
//leaves target untouched.
func SetOptions(target any, opts map[string]any) error {
	names, err := OptionNames(target)
	if err != nil {
		return errDecorate(err, "SetOptions")
	}
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !isInString(names, k) {
			return NewError(ErrUnknownOption, k, "SetOptions")
		}
	}
	//Decode into a copy first, so a bad value leaves target as it was.
	scratch := reflect.New(reflect.TypeOf(target).Elem())
	scratch.Elem().Set(reflect.ValueOf(target).Elem())
	for i := 0; i < scratch.Elem().NumField(); i++ {
		f := scratch.Elem().Field(i)
		if f.Kind() != reflect.Map || f.IsNil() || !f.CanSet() {
			continue
		}
		m := reflect.MakeMapWithSize(f.Type(), f.Len())
		iter := f.MapRange()
		for iter.Next() {
			m.SetMapIndex(iter.Key(), iter.Value())
		}
		f.Set(m)
	}
	for _, k := range keys {
		raw, err := yaml.Marshal(map[string]any{k: opts[k]})
		if err != nil {
			return NewError(fmt.Sprintf("%s: %v", ErrInvalidOption, err), k, "SetOptions")
		}
		if err := decodeKnownFields(raw, scratch.Interface()); err != nil {
			return NewError(fmt.Sprintf("%s: %v", ErrInvalidOption, err), k, "SetOptions")
		}
	}
	reflect.ValueOf(target).Elem().Set(scratch.Elem())
	return nil
}

//LoadOptions reads a YAML mapping of options from path and applies it to
//target with SetOptions.
func LoadOptions(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewFileError(err.Error(), path, "LoadOptions", true)
	}
	opts := make(map[string]any)
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return NewFileError(err.Error(), path, "LoadOptions", true)
	}
	if err := SetOptions(target, opts); err != nil {
		if e, ok := err.(Error); ok {
			e.filename = path
			err = e
		}
		return errDecorate(err, "LoadOptions")
	}
	return nil
}

func decodeKnownFields(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
