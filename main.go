package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"texlink/internal/convention"
	"texlink/internal/model"
	"texlink/internal/report"
	"texlink/internal/resolve"
	"texlink/internal/shading"
	"texlink/internal/tui"
	"texlink/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "texlink-tools",
		Repository: "texlink",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/texlink-tools/texlink/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: texlink [options] [reference-texture]\n\n")
		fmt.Fprintf(os.Stderr, "texlink locates sibling texture maps (Roughness, Normal, Metallic, Height,\n")
		fmt.Fprintf(os.Stderr, "Opacity) for a reference texture by naming-convention alias substitution,\n")
		fmt.Fprintf(os.Stderr, "and plans the shading-network links for a host application to execute.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  texlink                          # Name Manager TUI (edit alias dictionary)\n")
		fmt.Fprintf(os.Stderr, "  texlink Wall_BaseColor.png       # Resolve siblings, print the link plan\n")
		fmt.Fprintf(os.Stderr, "  texlink --json Wall_Albedo.png   # Output resolution as JSON\n")
		fmt.Fprintf(os.Stderr, "  texlink -r -o report.txt FILE    # Save a diagnostic report\n")
	}

	convFlag := pflag.StringP("convention", "c", "texlink.json", "Naming-convention file (JSON, or YAML by extension)")
	typeFlag := pflag.StringP("type", "t", "BaseColor", "Map type of the reference texture")
	jsonFlag := pflag.BoolP("json", "j", false, "Output resolution data as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Generate a detailed resolution report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include the candidate probe log in the report")
	webFlag := pflag.BoolP("web", "w", false, "Start the local API server on http://localhost:8080")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("texlink version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *webFlag {
		web.StartServer(*convFlag)
		return
	}

	refPath := pflag.Arg(0)

	if *reportFlag {
		runReportMode(*convFlag, refPath, *typeFlag, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(*convFlag, refPath, *typeFlag)
		return
	}

	if refPath != "" {
		runLinkMode(*convFlag, refPath, *typeFlag)
		return
	}

	// Default: Name Manager TUI
	runTuiMode(*convFlag)
}

// loadConvention reads the convention file, with a hard exit telling the user
// to fix or recreate the file on parse/schema trouble.
func loadConvention(path string) (model.Convention, model.Settings) {
	conv, settings, err := convention.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Fix the file or point --convention at a valid one; the Name Manager\n")
		fmt.Fprintf(os.Stderr, "(run texlink with no arguments) creates a fresh file with defaults.\n")
		os.Exit(1)
	}
	return conv, settings
}

func runResolve(convPath, refPath, refTypeName string) (model.TexturePathInfo, model.LinkResult, []resolve.Probe, model.Settings) {
	if refPath == "" {
		fmt.Fprintf(os.Stderr, "Error: no reference texture given\n")
		os.Exit(1)
	}
	refType, err := model.ParseMapType(refTypeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	conv, settings := loadConvention(convPath)
	resolver := resolve.New(conv, settings)
	info, result, probes, err := resolver.ResolveReference(refPath, refType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return info, result, probes, settings
}

func runLinkMode(convPath, refPath, refTypeName string) {
	info, result, _, _ := runResolve(convPath, refPath, refTypeName)

	fmt.Printf("Reference: %s (%s)\n\n", info.Path(), info.MapType)
	for _, t := range model.AllMapTypes {
		res := result[t]
		if res.Found {
			fmt.Printf("  %s %-10s %s\n", model.IconFound, t, res.Path)
		} else {
			fmt.Printf("  %s %-10s not found\n", model.IconMissing, t)
		}
	}

	plan := shading.BuildPlan(result)
	graph := &shading.MemoryGraph{}
	if err := shading.Apply(graph, "material", plan); err != nil {
		fmt.Fprintf(os.Stderr, "Error building plan: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nShading plan:\n")
	for _, action := range graph.Actions {
		fmt.Printf("  %s\n", action)
	}
}

func runJsonMode(convPath, refPath, refTypeName string) {
	info, result, _, settings := runResolve(convPath, refPath, refTypeName)

	out := struct {
		Reference model.TexturePathInfo `json:"reference"`
		Settings  model.Settings        `json:"settings"`
		Results   model.LinkResult      `json:"results"`
		Plan      []shading.Step        `json:"plan"`
	}{info, settings, result, shading.BuildPlan(result)}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

func runReportMode(convPath, refPath, refTypeName, outputFile string, verbose bool) {
	info, result, probes, settings := runResolve(convPath, refPath, refTypeName)

	text := report.Generate(info, result, probes, settings, verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(text), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(text)
	}
}

func runTuiMode(convPath string) {
	conv, settings, err := convention.Load(convPath)
	if errors.Is(err, convention.ErrFileNotFound) {
		// First run: start from the shipped defaults; the file is created on
		// the first mutation.
		conv, settings = convention.Default(), convention.DefaultSettings()
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Fix the file or point --convention at a fresh path to start over.\n")
		os.Exit(1)
	}

	m := tui.InitialModel(convPath, conv, settings)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
