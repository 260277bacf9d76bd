package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"steergen/internal/analyze"
	"steergen/internal/steering"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// analyzeRecord runs the full analysis pipeline the way the handlers do.
func analyzeRecord(t *testing.T, root string) (steering.AnalysisRecord, error) {
	t.Helper()
	opts := analysisOptions()
	analysis, err := analyze.NewAnalyzer(opts).Analyze(context.Background(), root, resolveFramework(root, ""))
	if err != nil {
		return steering.AnalysisRecord{}, err
	}
	return analyze.NewDeepAnalyzer(root, opts, logger).Enrich(context.Background(), analysis.Record())
}

func seedViteProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "vite.config.ts", "import react from \"@vitejs/plugin-react\"\nexport default {}\n")
	writeFile(t, root, "package.json", `{
  "name": "jobs",
  "scripts": {"dev": "vite", "build": "vite build"},
  "dependencies": {"react": "^19.0.0", "zustand": "^5.0.0"},
  "devDependencies": {"tailwindcss": "^4.0.0"}
}`)
	writeFile(t, root, ".env.example", "VITE_API_URL=\n")
	writeFile(t, root, "README.md", "# Jobs\n\nA job board.\n")
	writeFile(t, root, "src/types.ts", "export interface Job {\n  id: string;\n  title: string;\n}\n")
	return root
}

func TestGenerateCmd_SingleFileTarget(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)
	outDir := t.TempDir()

	generateTarget = "windsurf"
	generateOut = outDir

	if err := runGenerate(&cobra.Command{}, []string{root}); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, ".windsurfrules"))
	if err != nil {
		t.Fatalf("expected .windsurfrules to be written: %v", err)
	}
	for _, want := range []string{"# Technology Stack", "# Project Structure", "# Product Overview", "# Business Rules"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestGenerateCmd_KiroWritesFourFiles(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)
	outDir := t.TempDir()

	generateTarget = "kiro"
	generateOut = outDir

	if err := runGenerate(&cobra.Command{}, []string{root}); err != nil {
		t.Fatalf("runGenerate failed: %v", err)
	}

	for _, name := range []string{"tech.md", "structure.md", "product.md", "business-rules.md"} {
		path := filepath.Join(outDir, ".kiro", "steering", name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected %s to be written: %v", path, err)
		}
		if !strings.HasPrefix(string(data), "---\ninclusion: always\n---\n") {
			t.Errorf("%s missing front-matter", name)
		}
	}
}

func TestGenerateCmd_DryRun(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)
	outDir := t.TempDir()

	generateTarget = "kiro"
	generateOut = outDir
	generateDryRun = true

	output := captureOutput(t, func() {
		if err := runGenerate(&cobra.Command{}, []string{root}); err != nil {
			t.Errorf("runGenerate failed: %v", err)
		}
	})

	if !strings.Contains(output, "Would write 4 steering document(s)") {
		t.Fatalf("expected dry-run summary, got %q", output)
	}
	if !strings.Contains(output, "bytes)") {
		t.Fatalf("expected per-file sizes, got %q", output)
	}
	if _, err := os.Stat(filepath.Join(outDir, ".kiro")); !os.IsNotExist(err) {
		t.Fatal("dry run must not write files")
	}
}

func TestGenerateCmd_InvalidTarget(t *testing.T) {
	setupCLI(t)

	generateTarget = "emacs"

	err := runGenerate(&cobra.Command{}, []string{t.TempDir()})
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
	if !strings.Contains(err.Error(), "invalid target") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDetectCmd(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)

	output := captureOutput(t, func() {
		if err := runDetect(&cobra.Command{}, []string{root}); err != nil {
			t.Errorf("runDetect failed: %v", err)
		}
	})

	if !strings.Contains(output, "React 19 (Vite)") {
		t.Errorf("expected display name in output, got %q", output)
	}
	if !strings.Contains(output, "react") {
		t.Errorf("expected framework id in output, got %q", output)
	}
	if !strings.Contains(output, "package.json") {
		t.Errorf("expected important files in output, got %q", output)
	}
}

func TestAnalyzeCmd(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)

	output := captureOutput(t, func() {
		if err := runAnalyze(&cobra.Command{}, []string{root}); err != nil {
			t.Errorf("runAnalyze failed: %v", err)
		}
	})

	var rec map[string]any
	if err := json.Unmarshal([]byte(output), &rec); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	if rec["framework"] != "react" {
		t.Errorf("expected framework react, got %v", rec["framework"])
	}
	if _, ok := rec["categorizedDependencies"]; ok {
		t.Error("shallow analysis must not include categorized dependencies")
	}
}

func TestAnalyzeCmd_Deep(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)

	analyzeDeep = true

	output := captureOutput(t, func() {
		if err := runAnalyze(&cobra.Command{}, []string{root}); err != nil {
			t.Errorf("runAnalyze failed: %v", err)
		}
	})

	if !strings.Contains(output, "categorizedDependencies") {
		t.Errorf("expected deep record, got %q", output)
	}
	if !strings.Contains(output, "zustand") {
		t.Errorf("expected zustand in categorized dependencies, got %q", output)
	}
}

func TestPreviewBody(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)

	rec, err := analyzeRecord(t, root)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	previewDoc = "tech"
	body, err := previewBody(rec, "kiro")
	if err != nil {
		t.Fatalf("previewBody failed: %v", err)
	}
	if !strings.HasPrefix(body, "# Technology Stack") {
		t.Errorf("expected tech doc, got %q", body[:40])
	}

	previewDoc = ""
	body, err = previewBody(rec, "windsurf")
	if err != nil {
		t.Fatalf("previewBody failed: %v", err)
	}
	for _, want := range []string{"# Technology Stack", "# Business Rules"} {
		if !strings.Contains(body, want) {
			t.Errorf("combined body missing %q", want)
		}
	}

	previewDoc = ""
	body, err = previewBody(rec, "cursor")
	if err != nil {
		t.Fatalf("previewBody failed: %v", err)
	}
	if !strings.HasPrefix(body, "---\ndescription:") {
		t.Error("cursor preview should include front-matter")
	}

	previewDoc = "bogus"
	if _, err := previewBody(rec, "kiro"); err == nil {
		t.Fatal("expected error for unknown doc")
	}
}

func TestPreviewCmd(t *testing.T) {
	setupCLI(t)
	root := seedViteProject(t)

	previewDoc = "tech"

	output := captureOutput(t, func() {
		if err := runPreview(&cobra.Command{}, []string{root}); err != nil {
			t.Errorf("runPreview failed: %v", err)
		}
	})

	if !strings.Contains(output, "React") {
		t.Errorf("expected rendered tech doc, got %q", output)
	}
}

func TestListTargets(t *testing.T) {
	setupCLI(t)

	output := captureOutput(t, func() {
		if err := listTargets(&cobra.Command{}, []string{}); err != nil {
			t.Errorf("listTargets failed: %v", err)
		}
	})

	for _, want := range []string{"kiro", "cursor", ".windsurfrules", "CONVENTIONS.md"} {
		if !strings.Contains(output, want) {
			t.Errorf("targets listing missing %q", want)
		}
	}
}

func TestListFrameworks(t *testing.T) {
	setupCLI(t)

	output := captureOutput(t, func() {
		if err := listFrameworks(&cobra.Command{}, []string{}); err != nil {
			t.Errorf("listFrameworks failed: %v", err)
		}
	})

	for _, want := range []string{"next-app-router", "Next.js 15 (App Router)", "laravel"} {
		if !strings.Contains(output, want) {
			t.Errorf("frameworks listing missing %q", want)
		}
	}
}
