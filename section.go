/*
 * section.go, part of goqmc.
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

//Section is a piece of an input deck, already rendered to text.
//The zero value is an unset section, which writers refuse to render.
type Section struct {
	text string
	set  bool
}

//Text returns a section with the given, pre-rendered, text.
func Text(s string) Section {
	return Section{text: s, set: true}
}

//SystemSection renders sys into a section.
func SystemSection(sys SystemExporter) (Section, error) {
	if sys == nil {
		return Section{}, NewError(ErrMissingSection, "system", "SystemSection")
	}
	s, err := sys.ExportQWalkSys()
	if err != nil {
		return Section{}, errDecorate(err, "SystemSection")
	}
	return Text(s), nil
}

//TrialFuncSection renders wf, wrapped in a trialfunc block, into a section.
func TrialFuncSection(wf WaveFunction, opts WFOptions) (Section, error) {
	s, err := ExportTrialFunc(wf, opts)
	if err != nil {
		return Section{}, errDecorate(err, "TrialFuncSection")
	}
	return Text(s), nil
}

//IsSet returns false for the zero Section.
func (s Section) IsSet() bool { return s.set }

func (s Section) String() string { return s.text }
