package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spaceplace/internal/presentation"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// resetFlags puts every flag back to its default so package-level commands
// can run more than once in a test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// writeConfig creates a config file that keeps the catalog under t.TempDir().
func writeConfig(t *testing.T, celestialFile, systemsFile string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage:\n" +
		"  dir: " + dir + "\n" +
		"  celestial_file: " + celestialFile + "\n" +
		"  systems_file: " + systemsFile + "\n" +
		"output:\n  format: text\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func run(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := Execute()
	return out.String(), err
}

func mustRun(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	out, err := run(t, configPath, args...)
	require.NoError(t, err, "spaceplace %v\n%s", args, out)
	return out
}

func seedSolar(t *testing.T, configPath string) {
	t.Helper()
	mustRun(t, configPath, "system", "add", "Solar", "Sun")
	mustRun(t, configPath, "body", "add-star", "--name", "Sun", "--mass", "1.989e30",
		"--diameter", "1392700", "--spectral", "G", "--luminosity", "3828", "--system", "Solar")
	mustRun(t, configPath, "body", "add-gas", "--name", "Jupiter", "--mass", "1.898e27",
		"--diameter", "139820", "--gas", "Hydrogen", "--core", "Rock", "--radiation", "75", "--system", "Solar")
	mustRun(t, configPath, "body", "add-dwarf", "--name", "Pluto", "--mass", "1.309e22",
		"--diameter", "2376", "--surface", "Nitrogen ice", "--system", "Solar")
}

func TestSystemCommands(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")

	out := mustRun(t, configPath, "system", "list")
	require.Contains(t, out, registry.MsgNoSystems)

	out = mustRun(t, configPath, "system", "add", "Solar", "Sun")
	require.Contains(t, out, "Added PlanetarySystem Name: Solar, orbits around: SUN")
	mustRun(t, configPath, "system", "add", "Alpha Centauri", "Rigil Kentaurus")

	_, err := run(t, configPath, "system", "add", "solar", "Other")
	require.Error(t, err, "names are unique regardless of case")

	out = mustRun(t, configPath, "system", "list")
	require.Contains(t, out, "0: PlanetarySystem Name: Solar, orbits around: SUN")
	require.Contains(t, out, "1: PlanetarySystem Name: Alpha Centauri, orbits around: RIGIL KENTAURUS")

	out = mustRun(t, configPath, "system", "sort", "name")
	require.Contains(t, out, "0: PlanetarySystem Name: Alpha Centauri")

	out = mustRun(t, configPath, "system", "find", "Kepler")
	require.Contains(t, out, registry.MsgNoSystemsOfName)

	out = mustRun(t, configPath, "system", "update", "Solar", "Sol")
	require.Contains(t, out, "orbits around: SOL")

	mustRun(t, configPath, "system", "delete", "Alpha Centauri")
	out = mustRun(t, configPath, "system", "list")
	require.Contains(t, out, "0: PlanetarySystem Name: Solar")
	require.NotContains(t, out, "Alpha Centauri")

	_, err = run(t, configPath, "system", "delete", "Alpha Centauri")
	require.Error(t, err)

	_, err = run(t, configPath, "system", "sort", "size")
	require.Error(t, err, "only name and star are valid sort keys")
}

func TestBodyCommands(t *testing.T) {
	configPath := writeConfig(t, "bodies.yaml", "systems.yaml")
	seedSolar(t, configPath)

	out := mustRun(t, configPath, "body", "list")
	require.Contains(t, out, "0: Star: Sun, Spectral Type: G, Luminosity: 3828")
	require.Contains(t, out, "1: Name: Jupiter, Gas Composition: Hydrogen, Core Composition: Rock, Radiation Level: 75")
	require.Contains(t, out, "2: Name: Pluto, Surface Composition: Nitrogen ice")

	out = mustRun(t, configPath, "body", "list", "--kind", "ice")
	require.Contains(t, out, registry.MsgNoIcePlanets)

	out = mustRun(t, configPath, "body", "show", "1001")
	require.Contains(t, out, "Gas Planet #1001")
	require.Contains(t, out, "Name: Jupiter")

	out = mustRun(t, configPath, "body", "update", "1001", "--radiation", "90", "--temperature", "999")
	require.Contains(t, out, "Radiation Level: 90")
	require.Contains(t, out, "Avg Temp: 0°C", "out of range temperature is ignored")

	_, err := run(t, configPath, "body", "update", "1000", "--ice", "Water")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--ice does not apply to a Star")

	_, err = run(t, configPath, "body", "add-ice", "--name", "Neptune", "--system", "Kepler")
	require.Error(t, err)
	require.Contains(t, err.Error(), registry.MsgInvalidSystem)

	mustRun(t, configPath, "body", "delete", "1002")
	mustRun(t, configPath, "body", "delete", "--index", "0")
	out = mustRun(t, configPath, "body", "list")
	require.Contains(t, out, "0: Name: Jupiter")
	require.NotContains(t, out, "Sun")
	require.NotContains(t, out, "Pluto")

	_, err = run(t, configPath, "body", "delete", "1000")
	require.Error(t, err, "deleted ids are gone")

	// Ids of deleted bodies are never handed out again, even by a later run.
	out = mustRun(t, configPath, "body", "add-dwarf", "--name", "Ceres")
	require.Contains(t, out, "Added Dwarf Planet 1003")
}

func TestBodyAdd_NonFiniteNumbers(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")

	mustRun(t, configPath, "body", "add-gas", "--name", "Odd", "--mass", "+Inf", "--diameter", "NaN", "--radiation", "Inf")
	out := mustRun(t, configPath, "body", "show", "1000")
	require.Contains(t, out, "Mass: 0.1kg")
	require.Contains(t, out, "Diameter: 0.5km")
	require.Contains(t, out, "Radiation Level: 0")

	out = mustRun(t, configPath, "body", "update", "1000", "--mass", "-Inf", "--radiation", "NaN")
	require.Contains(t, out, "Mass: 0.1kg")
	require.Contains(t, out, "Radiation Level: 0")
}

func TestReportCommands(t *testing.T) {
	configPath := writeConfig(t, "catalog.db", "catalog.db")
	seedSolar(t, configPath)
	mustRun(t, configPath, "body", "add-star", "--name", "Vega", "--mass", "4.0e30",
		"--diameter", "3.3e6", "--spectral", "A", "--luminosity", "40000")

	out := mustRun(t, configPath, "report", "counts")
	require.Contains(t, out, "Celestial bodies: 4")
	require.Contains(t, out, "Stars: 2")
	require.Contains(t, out, "Solar: 3")

	out = mustRun(t, configPath, "report", "heavier", "1.898e27")
	require.Contains(t, out, "0: Star: Sun")
	require.NotContains(t, out, "Jupiter", "heavier than is strict")

	out = mustRun(t, configPath, "report", "smaller", "139820")
	require.Contains(t, out, "Jupiter", "smaller than includes the bound")
	require.Contains(t, out, "Pluto")

	out = mustRun(t, configPath, "report", "system", "Solar")
	require.Contains(t, out, "Bodies in Solar")
	require.NotContains(t, out, "Vega")

	out = mustRun(t, configPath, "report", "system", "Kepler")
	require.Contains(t, out, registry.MsgInvalidSystem)

	out = mustRun(t, configPath, "report", "spectral", "O")
	require.Contains(t, out, registry.MsgNoStarsForSpectralType('O'))

	out = mustRun(t, configPath, "report", "top-radiation")
	require.Contains(t, out, "Jupiter")
}

func TestReportCounts_JSON(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")
	seedSolar(t, configPath)

	out := mustRun(t, configPath, "report", "counts", "--output", "json")

	var counts presentation.CountsDTO
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	require.Equal(t, 3, counts.Bodies)
	require.Equal(t, 1, counts.DwarfPlanets)
	require.Equal(t, map[string]int{"Solar": 3}, counts.PerSystem)
}

func TestSearchCommands(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")
	seedSolar(t, configPath)

	out := mustRun(t, configPath, "search", "name", "JUPITER")
	require.Contains(t, out, "1: Name: Jupiter")

	out = mustRun(t, configPath, "search", "diameter", "2376")
	require.Contains(t, out, "2: Name: Pluto")

	out = mustRun(t, configPath, "search", "mass", "42")
	require.Contains(t, out, registry.MsgNoMatch)

	_, err := run(t, configPath, "search", "mass", "heavy")
	require.Error(t, err)
}

func TestSortCommands(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")
	seedSolar(t, configPath)

	out := mustRun(t, configPath, "sort", "diameter")
	require.Contains(t, out, "0: Name: Pluto")

	out = mustRun(t, configPath, "body", "list")
	require.Contains(t, out, "0: Name: Pluto", "sorted order is saved")

	mustRun(t, configPath, "sort", "mass")
	out = mustRun(t, configPath, "body", "list")
	require.Contains(t, out, "0: Star: Sun")

	// A body without a system blocks the star sort and nothing is saved.
	mustRun(t, configPath, "body", "add-star", "--name", "Betelgeuse")
	_, err := run(t, configPath, "sort", "star")
	require.ErrorIs(t, err, registry.ErrSystemNotSet)

	out = mustRun(t, configPath, "body", "list")
	require.Contains(t, out, "0: Star: Sun")
	require.Contains(t, out, "3: Star: Betelgeuse")
}

func TestStorageUse(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")

	out := mustRun(t, configPath, "storage", "use", "--celestial", "catalog.sqlite", "--systems", "catalog.sqlite")
	require.Contains(t, out, "catalog.sqlite")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "celestial_file: catalog.sqlite")
	require.Contains(t, string(data), "format: text", "other settings are kept")

	seedSolar(t, configPath)
	dataDir := filepath.Join(filepath.Dir(configPath), ".spaceplace")
	_, err = os.Stat(filepath.Join(dataDir, "catalog.sqlite"))
	require.NoError(t, err, "catalog is now written to SQLite")
	_, err = os.Stat(filepath.Join(dataDir, "bodies.json"))
	require.True(t, os.IsNotExist(err))

	_, err = run(t, configPath, "storage", "use", "--celestial", "bodies.csv")
	require.Error(t, err)
}

func TestLoadFailureBlocksWrites(t *testing.T) {
	configPath := writeConfig(t, "bodies.json", "systems.json")
	dataDir := filepath.Join(filepath.Dir(configPath), ".spaceplace")
	require.NoError(t, os.MkdirAll(dataDir, 0750))
	bodiesPath := filepath.Join(dataDir, "bodies.json")
	require.NoError(t, os.WriteFile(bodiesPath, []byte("{broken"), 0600))

	_, err := run(t, configPath, "body", "add-dwarf", "--name", "Ceres")
	require.ErrorIs(t, err, errLoadFailed)

	data, err := os.ReadFile(bodiesPath)
	require.NoError(t, err)
	require.Equal(t, "{broken", string(data), "a file that failed to load is not overwritten")
}
