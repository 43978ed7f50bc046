package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/trendloom-cli/internal/analysis"
	"github.com/spf13/pflag"
)

// runCmd executes the root command with args and returns its stdout.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execCmd(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func execCmd(args ...string) (string, error) {
	// Reset bound variables and sticky Changed state across invocations
	cfgFile, debug, logFile = "", false, ""
	anaSelector, anaOutputPath = analysis.SelectAll, ""
	resetChanged(rootCmd.PersistentFlags().Lookup("log-file"))
	resetChanged(analyzeCmd.Flags().Lookup("analysis"))
	resetChanged(analyzeCmd.Flags().Lookup("output"))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetChanged(f *pflag.Flag) {
	if f != nil {
		f.Changed = false
	}
}

// sandbox moves the test into a fresh working directory and HOME holding the
// raw sources at their default paths.
func sandbox(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	raw := filepath.Join(dir, "data", "raw")
	if err := os.MkdirAll(raw, 0o755); err != nil {
		t.Fatalf("mkdir raw: %v", err)
	}
	files := map[string]string{
		"workout.csv": "month,workout_worldwide\n" +
			"2019-12,40\n2020-04,90\n2021-01,70\n2023-12,60\n",
		"three_keywords.csv": "month,home_workout_worldwide,gym_workout_worldwide,home_gym_worldwide\n" +
			"2019-12,10,60,5\n2020-04,95,30,40\n2021-01,70,50,20\n2023-12,20,80,10\n",
		"workout_geo.csv": "country,workout_2018_2023\n" +
			"Philippines,95\nMalaysia,70\nSingapore,60\n",
		"three_keywords_geo.csv": "Country,home_workout_2018_2023,gym_workout_2018_2023,home_gym_2018_2023\n" +
			"Philippines,90,40,10\nMalaysia,88,45,12\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(raw, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestCLI_PrepareThenAnalyzeAll(t *testing.T) {
	dir := sandbox(t)

	out := runCmd(t, "prepare")
	if !strings.Contains(out, "Wrote 4 months") || !strings.Contains(out, "Wrote 3 countries") {
		t.Fatalf("unexpected prepare output: %q", out)
	}
	for _, p := range []string{
		filepath.Join(dir, "data", "processed", "processed_timeseries_data.csv"),
		filepath.Join(dir, "data", "processed", "processed_geo_data.csv"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("expected processed file %s: %v", p, err)
		}
	}

	findings := filepath.Join(dir, "findings.md")
	runCmd(t, "analyze", "--output", findings)
	for _, name := range []string{
		"1_overall_trends.png",
		"2_keyword_trends.png",
		"3_home_vs_gym_dominance.png",
		"4_geo_home_workout.png",
	} {
		if _, err := os.Stat(filepath.Join(dir, "images", name)); err != nil {
			t.Fatalf("expected chart %s: %v", name, err)
		}
	}
	b, err := os.ReadFile(findings)
	if err != nil {
		t.Fatalf("read findings: %v", err)
	}
	md := string(b)
	for _, want := range []string{
		"Peak year for 'workout': 2020",
		"Home dominance peaked in April 2020",
		"Highest 'workout' interest: Philippines",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("findings missing %q:\n%s", want, md)
		}
	}
}

func TestCLI_AnalyzeSingleRoutine(t *testing.T) {
	dir := sandbox(t)
	runCmd(t, "prepare")
	runCmd(t, "analyze", "--analysis", "geo")

	entries, err := os.ReadDir(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatalf("read images dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "4_geo_home_workout.png" {
		t.Fatalf("expected only the geo chart, got %v", entries)
	}
}

func TestCLI_InvalidSelectorTouchesNothing(t *testing.T) {
	dir := sandbox(t)
	cfg = nil
	if _, err := execCmd("analyze", "--analysis", "bogus"); err == nil {
		t.Fatalf("expected usage error for unknown analysis")
	}
	if cfg != nil {
		t.Fatalf("configuration was loaded before flag validation")
	}
	if _, err := os.Stat(filepath.Join(dir, "images")); !os.IsNotExist(err) {
		t.Fatalf("images dir should not exist, stat err: %v", err)
	}
}

func TestCLI_AnalyzeWithoutPrepareFails(t *testing.T) {
	sandbox(t)
	_, err := execCmd("analyze", "--analysis", "overall")
	if err == nil || !strings.Contains(err.Error(), "processed_timeseries_data.csv") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	dir := sandbox(t)
	path := filepath.Join(dir, "custom.yaml")
	runCmd(t, "--config", path, "config", "set", "images_dir", "charts")
	out := runCmd(t, "--config", path, "config", "show")
	if !strings.Contains(out, "images_dir: charts") {
		t.Fatalf("expected saved images_dir, got:\n%s", out)
	}
	if _, err := execCmd("config", "set", "plot_width", "wide"); err == nil {
		t.Fatalf("expected error for non-numeric plot_width")
	}
}
