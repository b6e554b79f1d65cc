package interpreter

import (
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies which candidate supplied the interpreter.
type Kind int

const (
	// KindActivated means the virtual environment's activation script was found.
	KindActivated Kind = iota
	// KindVirtualEnv means the virtual environment's interpreter was found without an activation script.
	KindVirtualEnv
	// KindSystem means the bare fallback name is resolved through PATH.
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindActivated:
		return "activated"
	case KindVirtualEnv:
		return "venv"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Layout names the virtual environment entries relative to the venv root.
type Layout struct {
	BinDir           string
	ActivationScript string
	Interpreter      string
}

// ActivationPath returns the activation script inside venvDir.
func (l Layout) ActivationPath(venvDir string) string {
	return filepath.Join(venvDir, l.BinDir, l.ActivationScript)
}

// InterpreterPath returns the interpreter executable inside venvDir.
func (l Layout) InterpreterPath(venvDir string) string {
	return filepath.Join(venvDir, l.BinDir, l.Interpreter)
}

// Options configures a resolution pass.
type Options struct {
	// VenvDir is the absolute virtual environment directory.
	VenvDir string
	// Fallback is the bare interpreter name used when no venv is usable.
	Fallback string
	// Layout overrides DefaultLayout when non-zero.
	Layout Layout
}

// Candidate is one entry of the resolution chain.
type Candidate struct {
	Kind    Kind
	Path    string
	Present bool
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Kind Kind
	// Program is what gets executed: an absolute path for venv interpreters or
	// the bare fallback name for PATH lookup.
	Program          string
	VenvDir          string
	ActivationScript string
	// Candidates lists every candidate in priority order, including those not selected.
	Candidates []Candidate
}

// Resolve evaluates the candidate chain in priority order and selects the
// first present candidate. The system candidate is always present, so exactly
// one candidate is selected.
func Resolve(opts Options) Resolution {
	layout := opts.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}
	fallback := strings.TrimSpace(opts.Fallback)
	if fallback == "" {
		fallback = "python"
	}

	activation := layout.ActivationPath(opts.VenvDir)
	venvPython := layout.InterpreterPath(opts.VenvDir)
	hasVenv := strings.TrimSpace(opts.VenvDir) != ""

	candidates := []Candidate{
		{Kind: KindActivated, Path: activation, Present: hasVenv && isRegularFile(activation)},
		{Kind: KindVirtualEnv, Path: venvPython, Present: hasVenv && isExecutable(venvPython)},
		{Kind: KindSystem, Path: fallback, Present: true},
	}

	res := Resolution{VenvDir: opts.VenvDir, Candidates: candidates}
	switch {
	case candidates[0].Present:
		res.Kind = KindActivated
		res.ActivationScript = activation
		// An activated shell would still look the bare name up; the venv copy
		// shadows the system one only when it exists.
		if candidates[1].Present {
			res.Program = venvPython
		} else {
			res.Program = fallback
		}
	case candidates[1].Present:
		res.Kind = KindVirtualEnv
		res.Program = venvPython
	default:
		res.Kind = KindSystem
		res.Program = fallback
	}
	return res
}

// Selected returns the candidate that supplied the interpreter.
func (r Resolution) Selected() Candidate {
	for _, c := range r.Candidates {
		if c.Kind == r.Kind {
			return c
		}
	}
	return Candidate{Kind: r.Kind, Path: r.Program, Present: true}
}

// Environ returns the child environment derived from base. For an activated
// virtual environment it applies what the activation script would: VIRTUAL_ENV
// is set, the venv's script directory leads PATH and PYTHONHOME is dropped.
// Other kinds return base unchanged.
func (r Resolution) Environ(base []string) []string {
	if r.Kind != KindActivated {
		return base
	}
	binDir := filepath.Dir(r.ActivationScript)

	env := make([]string, 0, len(base)+2)
	pathValue := ""
	for _, entry := range base {
		key, value, _ := strings.Cut(entry, "=")
		switch {
		case envKeyEqual(key, "PATH"):
			pathValue = value
		case envKeyEqual(key, "VIRTUAL_ENV"), envKeyEqual(key, "PYTHONHOME"):
		default:
			env = append(env, entry)
		}
	}
	if pathValue != "" {
		pathValue = binDir + string(os.PathListSeparator) + pathValue
	} else {
		pathValue = binDir
	}
	return append(env, "VIRTUAL_ENV="+r.VenvDir, "PATH="+pathValue)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
