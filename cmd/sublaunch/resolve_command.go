package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sublaunch/internal/interpreter"
	"sublaunch/internal/launcher"
)

type candidateView struct {
	Priority int    `json:"priority"`
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Present  bool   `json:"present"`
	Selected bool   `json:"selected"`
}

type resolveView struct {
	BaseDir    string          `json:"base_dir"`
	VenvDir    string          `json:"venv_dir"`
	Selected   string          `json:"selected"`
	Program    string          `json:"program"`
	Argv       []string        `json:"argv"`
	Candidates []candidateView `json:"candidates"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var baseDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve [-- args...]",
		Short: "Show which interpreter the launcher would use and the command it would run",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			base, err := ctx.baseDir(cfg, baseDir)
			if err != nil {
				return err
			}

			res, command := launcher.New(launcher.OptionsFromConfig(cfg, base)).Plan(args)
			view := buildResolveView(base, res, command)
			if asJSON {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(view.Candidates))
			for _, c := range view.Candidates {
				marker := ""
				if c.Selected {
					marker = "*"
				}
				rows = append(rows, []string{strconv.Itoa(c.Priority), candidateLabel(c.Kind), c.Path, yesNo(c.Present), marker})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Candidate", "Path", "Present", "Selected"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "Base directory: %s\n", view.BaseDir)
			fmt.Fprintf(out, "Command: %s\n", command.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&baseDir, "base-dir", "", "Launcher directory to resolve from (defaults to launcher.base_dir or this executable's directory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func buildResolveView(base string, res interpreter.Resolution, command launcher.Command) resolveView {
	view := resolveView{
		BaseDir:  base,
		VenvDir:  res.VenvDir,
		Selected: res.Kind.String(),
		Program:  res.Program,
		Argv:     command.Argv(),
	}
	for i, c := range res.Candidates {
		view.Candidates = append(view.Candidates, candidateView{
			Priority: i + 1,
			Kind:     c.Kind.String(),
			Path:     c.Path,
			Present:  c.Present,
			Selected: c.Kind == res.Kind,
		})
	}
	return view
}

func candidateLabel(kind string) string {
	switch kind {
	case interpreter.KindActivated.String():
		return "activation script"
	case interpreter.KindVirtualEnv.String():
		return "venv interpreter"
	case interpreter.KindSystem.String():
		return "system interpreter"
	default:
		return kind
	}
}
