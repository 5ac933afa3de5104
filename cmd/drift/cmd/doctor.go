package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/go-drift/engine/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "doctor",
		Short: "Diagnose a project's engine configuration",
		Long: `doctor inspects the current module's go.mod and optional
drift.yaml, reporting the resolved app identity, engine version, and the
scroll-physics tunables in effect (drift.yaml overrides applied over the
defaults).`,
		Usage: "drift doctor",
		Run:   runDoctor,
	})
}

func runDoctor(args []string) error {
	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return fmt.Errorf("reading go.mod: %w", err)
	}
	modFile, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return fmt.Errorf("parsing go.mod: %w", err)
	}

	resolved, err := config.Resolve(root)
	if err != nil {
		return err
	}

	fmt.Printf("Module:  %s\n", modFile.Module.Mod.Path)
	if modFile.Go != nil {
		fmt.Printf("Go:      %s\n", modFile.Go.Version)
	}
	fmt.Printf("App:     %s (%s)\n", resolved.AppName, resolved.AppID)
	fmt.Printf("Engine:  %s\n", resolved.EngineVersion)
	fmt.Println()
	fmt.Println("Scroll physics (spline-fling tunables):")
	p := resolved.Physics
	fmt.Printf("  gravity:          %g\n", p.Gravity)
	fmt.Printf("  inflexion:        %g\n", p.Inflexion)
	fmt.Printf("  startTension:     %g\n", p.StartTension)
	fmt.Printf("  endTension:       %g\n", p.EndTension)
	fmt.Printf("  physicalCoef:     %g\n", p.PhysicalCoef)
	fmt.Printf("  decelerationRate: %g\n", p.DecelerationRate)

	fmt.Printf("\nRequires %d module(s):\n", len(modFile.Require))
	for _, r := range modFile.Require {
		fmt.Printf("  %s %s\n", r.Mod.Path, r.Mod.Version)
	}

	return nil
}
