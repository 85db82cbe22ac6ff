/*
 * writer.go, part of goqmc.
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

//Package crystal writes the input of, and reads the output from, the Crystal
//periodic DFT program, whose orbitals start a QMC calculation.
package crystal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	qmc "github.com/rmera/goqmc"
)

//Functional selects the exchange-correlation functional. A non-empty
//Predefined keyword overrides the other fields.
type Functional struct {
	Exchange    string `yaml:"exchange"`
	Correlation string `yaml:"correlation"`
	Hybrid      int    `yaml:"hybrid"`
	Predefined  string `yaml:"predefined"`
}

//Options are the settings of a Crystal SCF and properties run.
//Zero values of the optional fields mean the keyword is not written.
type Options struct {
	Supercell     [][]int    `yaml:"supercell"`
	SpinPolarized bool       `yaml:"spin_polarized"`
	Functional    Functional `yaml:"functional"`
	TotalSpin     int        `yaml:"total_spin"`

	//Modisymm pairs (0-based atom, label). nil means automatic when
	//InitialSpins is given.
	Modisymm [][2]int `yaml:"modisymm"`
	Symmremo bool     `yaml:"symmremo"`

	InitialSpins []int  `yaml:"initial_spins"`
	GuessFort    string `yaml:"guess_fort"`
	GuessFort13  string `yaml:"guess_fort13"`
	SpinEdit     []int  `yaml:"spinedit"`

	//D or F occupation guess, see FDOCCUP in the Crystal manual.
	MajorityGuess  []int `yaml:"majority_guess"`
	MinorityGuess  []int `yaml:"minority_guess"`
	DFBasisElement int   `yaml:"df_basis_element"`

	XMLName   string `yaml:"xml_name"`
	BasisName string `yaml:"basis_name"`

	//BasisParams are the base exponent, the number of uncontracted
	//functions and the ratio between their exponents.
	BasisParams    []float64          `yaml:"basis_params"`
	Cutoff         float64            `yaml:"cutoff"`
	InitialCharges map[string]float64 `yaml:"initial_charges"`

	KMesh    [3]int `yaml:"kmesh"`
	GMesh    int    `yaml:"gmesh"`
	TolInteg []int  `yaml:"tolinteg"`
	DFTGrid  string `yaml:"dftgrid"`
	BipoSize int    `yaml:"biposize"`
	ExchSize int    `yaml:"exchsize"`

	FMixing   int       `yaml:"fmixing"`
	MaxCycle  int       `yaml:"maxcycle"`
	EDiffTol  int       `yaml:"edifftol"`
	LevShift  []int     `yaml:"levshift"`
	DIIS      bool      `yaml:"diis"`
	DIISOpts  []string  `yaml:"diis_opts"`
	Broyden   []float64 `yaml:"broyden"`
	Anderson  bool      `yaml:"anderson"`
	Smear     float64   `yaml:"smear"`
	CryAPI    bool      `yaml:"cryapi"`
	Restart   bool      `yaml:"restart"`
}

//DefaultOptions returns the settings used when nothing else is given.
func DefaultOptions() Options {
	return Options{
		SpinPolarized: true,
		Functional:    Functional{Exchange: "PBE", Correlation: "PBE"},
		XMLName:       "BFD_Library.xml",
		BasisName:     "vtz",
		BasisParams:   []float64{0.2, 2, 3},
		KMesh:         [3]int{8, 8, 8},
		GMesh:         16,
		TolInteg:      []int{8, 8, 8, 8, 18},
		BipoSize:      100000000,
		ExchSize:      10000000,
		FMixing:       80,
		MaxCycle:      100,
		EDiffTol:      8,
		DIIS:          true,
		Smear:         0.0001,
		CryAPI:        true,
	}
}

//Writer produces the input decks of a Crystal SCF run and of the
//properties run that follows it.
type Writer struct {
	Options
	//System is the geometry. Periodic systems get a 3D calculation.
	System *qmc.System
	//Library provides pseudopotentials and basis sets. If nil, it is
	//loaded from XMLName when needed.
	Library *qmc.Library
	//BasisLines, if not nil, replaces the basis generated from the library.
	BasisLines []string

	completed bool
}

//NewWriter returns a writer for sys with the default options.
func NewWriter(sys *qmc.System) *Writer {
	return &Writer{Options: DefaultOptions(), System: sys}
}

//SetOptions sets the options named in opts, keyed by their yaml names.
//Unknown keys are an error, and so is a spinedit without guess_fort.
func (W *Writer) SetOptions(opts map[string]any) error {
	o := W.Options
	if err := qmc.SetOptions(&o, opts); err != nil {
		return errDecorate(err, "SetOptions")
	}
	if err := o.check(); err != nil {
		return errDecorate(err, "SetOptions")
	}
	W.Options = o
	return nil
}

//LoadOptions applies the options in the YAML file path.
func (W *Writer) LoadOptions(path string) error {
	o := W.Options
	if err := qmc.LoadOptions(path, &o); err != nil {
		return errDecorate(err, "LoadOptions")
	}
	if err := o.check(); err != nil {
		return errDecorate(err, "LoadOptions")
	}
	W.Options = o
	return nil
}

func (o *Options) check() error {
	if len(o.SpinEdit) > 0 && o.GuessFort == "" {
		return qmc.NewError("spinedit requires guess_fort", "spinedit", "Options.check")
	}
	if len(o.BasisParams) != 3 {
		return qmc.NewError(qmc.ErrInvalidOption+": need base, count and ratio", "basis_params", "Options.check")
	}
	return nil
}

//Completed returns true once a deck has been written.
func (W *Writer) Completed() bool { return W.completed }

//periodic returns true for a 3D calculation.
func (W *Writer) periodic() bool {
	return W.System.Periodic()
}

//elements returns the species of the system, sorted.
func (W *Writer) elements() []string {
	sp := W.System.Species()
	sort.Strings(sp)
	return sp
}

func (W *Writer) geom() ([]string, error) {
	if W.periodic() {
		return W.System.ExportCrystalGeom(W.Supercell)
	}
	geomlines := []string{"MOLECULE", "1", strconv.Itoa(len(W.System.Positions))}
	for _, site := range W.System.Positions {
		code, err := qmc.CrystalCode(site.Species)
		if err != nil {
			return nil, errDecorate(err, "geom")
		}
		x := site.Xyz
		geomlines = append(geomlines, fmt.Sprintf("%d %g %g %g", code, x[0]*qmc.Bohr2A, x[1]*qmc.Bohr2A, x[2]*qmc.Bohr2A))
	}
	return geomlines, nil
}

func (W *Writer) basisSection() ([]string, error) {
	if W.BasisLines != nil {
		lines := W.BasisLines
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		return lines, nil
	}
	if W.Library == nil {
		lib, err := qmc.LoadLibrary(W.XMLName)
		if err != nil {
			return nil, errDecorate(err, "basisSection")
		}
		W.Library = lib
	}
	var basislines []string
	for _, e := range W.elements() {
		lines, err := W.GenerateBasis(e)
		if err != nil {
			return nil, errDecorate(err, "basisSection")
		}
		basislines = append(basislines, lines...)
	}
	return basislines, nil
}

func (W *Writer) modisymm() []string {
	if W.Symmremo {
		return []string{"SYMMREMO"}
	}
	pairs := W.Modisymm
	if pairs == nil {
		if len(W.InitialSpins) == 0 {
			return nil
		}
		for _, want := range []int{0, 1, -1} {
			lab := want
			if want == -1 {
				lab = 2
			}
			for i, s := range W.InitialSpins {
				if s == want {
					pairs = append(pairs, [2]int{i, lab})
				}
			}
		}
	}
	ret := []string{"MODISYMM", strconv.Itoa(len(pairs))}
	for _, p := range pairs {
		ret = append(ret, fmt.Sprintf("%d %d", p[0]+1, p[1]+1))
	}
	return ret
}

//fdoccup builds the FDOCCUP block for the first atom with a non-zero
//initial spin.
func (W *Writer) fdoccup() ([]string, error) {
	var lab int
	switch {
	case len(W.MajorityGuess) == 5 && len(W.MinorityGuess) == 5:
		lab = 3
	case len(W.MajorityGuess) == 7 && len(W.MinorityGuess) == 7:
		lab = 4
	default:
		return nil, qmc.NewError("majority and minority guess must be for d or f orbitals", "majority_guess", "fdoccup")
	}
	qmc.Logger().Warn("FDOCCUP is only set for the first spin-polarized atom")
	majocc := qmc.FormatInts(W.MajorityGuess)
	minocc := qmc.FormatInts(W.MinorityGuess)
	var fdoccs []string
	nmod := 0
	for i, spin := range W.InitialSpins {
		if spin == 1 || spin == -1 {
			fdoccs = append(fdoccs, fmt.Sprintf("%d %d %d", i+1, W.DFBasisElement, lab))
			if spin == 1 {
				fdoccs = append(fdoccs, majocc, minocc)
			} else {
				fdoccs = append(fdoccs, minocc, majocc)
			}
			nmod++
			break
		}
	}
	return append([]string{"FDOCCUP", strconv.Itoa(nmod)}, fdoccs...), nil
}

//gfmt prints a number the way Crystal reads free-format reals and integers alike.
func gfmt(fs []float64) string {
	strs := make([]string, len(fs))
	for i, v := range fs {
		strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(strs, " ")
}

//CrystalInput renders the SCF deck. Lines in section4 are added at the end
//of the SCF block.
func (W *Writer) CrystalInput(section4 ...string) (string, error) {
	if W.System == nil {
		return "", qmc.NewError(qmc.ErrMissingSection, "system", "CrystalInput")
	}
	if err := W.Options.check(); err != nil {
		return "", errDecorate(err, "CrystalInput")
	}
	geomlines, err := W.geom()
	if err != nil {
		return "", errDecorate(err, "CrystalInput")
	}
	basislines, err := W.basisSection()
	if err != nil {
		return "", errDecorate(err, "CrystalInput")
	}
	outlines := []string{"Generated by goqmc"}
	outlines = append(outlines, geomlines...)
	outlines = append(outlines, W.modisymm()...)
	outlines = append(outlines, "END")
	outlines = append(outlines, basislines...)
	outlines = append(outlines, "99 0", "CHARGED", "END")
	if W.periodic() {
		outlines = append(outlines, "SHRINK", fmt.Sprintf("0 %d", W.GMesh), qmc.FormatInts(W.KMesh[:]))
	}
	outlines = append(outlines, "DFT")
	if W.SpinPolarized {
		outlines = append(outlines, "SPIN")
	}
	if W.Functional.Predefined != "" {
		outlines = append(outlines, W.Functional.Predefined)
	} else {
		outlines = append(outlines,
			"EXCHANGE", W.Functional.Exchange,
			"CORRELAT", W.Functional.Correlation,
			"HYBRID", strconv.Itoa(W.Functional.Hybrid))
	}
	if W.DFTGrid != "" {
		outlines = append(outlines, W.DFTGrid)
	}
	outlines = append(outlines, "END",
		"SCFDIR",
		"SAVEPRED",
		"BIPOSIZE", strconv.Itoa(W.BipoSize),
		"EXCHSIZE", strconv.Itoa(W.ExchSize),
		"TOLDEE", strconv.Itoa(W.EDiffTol),
		"TOLINTEG", qmc.FormatInts(W.TolInteg),
		"MAXCYCLE", strconv.Itoa(W.MaxCycle),
		"SAVEWF")
	if W.Smear > 0 {
		outlines = append(outlines, "SMEAR", gfmt([]float64{W.Smear}))
	}
	if W.SpinPolarized {
		outlines = append(outlines, "SPINLOCK", fmt.Sprintf("%d %d", W.TotalSpin, W.MaxCycle))
	}
	if len(W.InitialSpins) > 0 {
		outlines = append(outlines, "ATOMSPIN", strconv.Itoa(len(W.InitialSpins)))
		for i, s := range W.InitialSpins {
			outlines = append(outlines, fmt.Sprintf("%d %d", i+1, s))
		}
		if W.MajorityGuess != nil && W.MinorityGuess != nil && W.DFBasisElement != 0 {
			fd, err := W.fdoccup()
			if err != nil {
				return "", errDecorate(err, "CrystalInput")
			}
			outlines = append(outlines, fd...)
		}
	}
	if len(W.SpinEdit) > 0 {
		outlines = append(outlines, "SPINEDIT", strconv.Itoa(len(W.SpinEdit)))
		for _, s := range W.SpinEdit {
			outlines = append(outlines, strconv.Itoa(s))
		}
	}
	outlines = append(outlines, "FMIXING", strconv.Itoa(W.FMixing))
	if !W.DIIS {
		outlines = append(outlines, "NODIIS")
		switch {
		case W.Anderson:
			outlines = append(outlines, "ANDERSON")
		case len(W.Broyden) != 0:
			outlines = append(outlines, "BROYDEN", gfmt(W.Broyden))
		case len(W.LevShift) != 0:
			outlines = append(outlines, "LEVSHIFT", qmc.FormatInts(W.LevShift))
		}
	} else {
		outlines = append(outlines, W.DIISOpts...)
	}
	outlines = append(outlines, section4...)
	switch {
	case W.Restart:
		outlines = append(outlines, "GUESSP")
	case W.GuessFort13 != "":
		outlines = append(outlines, "GUESSYMP")
	case W.GuessFort != "":
		outlines = append(outlines, "GUESSP")
	}
	outlines = append(outlines, "END")
	return strings.Join(outlines, "\n"), nil
}

//PropertiesInput renders the deck of the properties run that exports the
//orbitals.
func (W *Writer) PropertiesInput() string {
	outlines := []string{"NEWK"}
	if W.System == nil || W.periodic() {
		outlines = append(outlines, fmt.Sprintf("0 %d", W.GMesh), qmc.FormatInts(W.KMesh[:]))
	}
	outlines = append(outlines, "1 0")
	if W.CryAPI {
		outlines = append(outlines, "CRYAPI_OUT")
	} else {
		outlines = append(outlines, "67 999")
	}
	outlines = append(outlines, "END")
	return strings.Join(outlines, "\n")
}

//WriteInput writes the SCF deck to filename.
func (W *Writer) WriteInput(filename string) error {
	out, err := W.CrystalInput()
	if err != nil {
		return errDecorate(err, "WriteInput")
	}
	if err := qmc.WriteDeck(filename, out); err != nil {
		return errDecorate(err, "WriteInput")
	}
	qmc.Logger().Debug("crystal input written", zap.String("file", filename))
	W.completed = true
	return nil
}

//WriteProperties writes the properties deck to filename.
func (W *Writer) WriteProperties(filename string) error {
	if err := qmc.WriteDeck(filename, W.PropertiesInput()); err != nil {
		return errDecorate(err, "WriteProperties")
	}
	W.completed = true
	return nil
}

//InputStatus returns StatusOK if both input decks exist, NotStarted otherwise.
func InputStatus(crysinp, propinp string) qmc.Status {
	if fileExists(crysinp) && fileExists(propinp) {
		return qmc.StatusOK
	}
	return qmc.NotStarted
}
