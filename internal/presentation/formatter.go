package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Output formats understood by the formatter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format string

	title   lipgloss.Style
	index   lipgloss.Style
	muted   lipgloss.Style
	label   lipgloss.Style
	success lipgloss.Style
}

// NewFormatter creates a new formatter. Any format other than "json" prints text.
func NewFormatter(writer io.Writer, format string) *Formatter {
	// Styles are bound to the writer so colour is dropped when it is not a terminal.
	r := lipgloss.NewRenderer(writer)
	return &Formatter{
		writer:  writer,
		format:  format,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#93C5FD"}),
		index:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		muted:   r.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}),
		label:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: "#73F59F"}),
	}
}

// JSON reports whether the formatter prints JSON.
func (f *Formatter) JSON() bool { return f.format == FormatJSON }

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) println(s string) error {
	_, err := fmt.Fprintln(f.writer, s)
	return err
}

// FormatListing prints a registry listing under a title.
func (f *Formatter) FormatListing(listing ListingDTO) error {
	if f.JSON() {
		return f.encode(listing)
	}

	var b strings.Builder
	if listing.Title != "" {
		b.WriteString(f.title.Render(listing.Title))
		b.WriteString("\n")
	}
	if len(listing.Lines) == 0 {
		b.WriteString(f.muted.Render(listing.Message))
		return f.println(b.String())
	}
	for i, line := range listing.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		head, rest, _ := strings.Cut(line, ": ")
		b.WriteString(f.index.Render(head + ":"))
		b.WriteString(" ")
		b.WriteString(rest)
	}
	return f.println(b.String())
}

// FormatBody prints the full description of one body.
func (f *Formatter) FormatBody(body BodyDTO, description string) error {
	if f.JSON() {
		return f.encode(body)
	}

	var b strings.Builder
	b.WriteString(f.title.Render(fmt.Sprintf("%s #%d", body.Classification, body.ID)))
	for _, line := range strings.Split(description, "\n") {
		b.WriteString("\n")
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			b.WriteString(line)
			continue
		}
		b.WriteString(f.label.Render(key + ":"))
		b.WriteString(" ")
		b.WriteString(value)
	}
	return f.println(b.String())
}

// FormatBodies prints bodies as JSON or as indexed display lines.
func (f *Formatter) FormatBodies(title string, bodies []BodyDTO, empty string) error {
	if f.JSON() {
		return f.encode(bodies)
	}
	lines := make([]string, len(bodies))
	for i, body := range bodies {
		lines[i] = fmt.Sprintf("%d: %s", body.Index, body.Display)
	}
	return f.FormatListing(ListingDTO{Title: title, Lines: lines, Message: empty})
}

// FormatSystems prints systems as JSON or as indexed lines.
func (f *Formatter) FormatSystems(title string, systems []SystemDTO, empty string) error {
	if f.JSON() {
		return f.encode(systems)
	}
	lines := make([]string, len(systems))
	for i, s := range systems {
		lines[i] = fmt.Sprintf("%d: %s orbiting %s", s.Index, s.Name, s.Star)
	}
	return f.FormatListing(ListingDTO{Title: title, Lines: lines, Message: empty})
}

// FormatCounts prints the catalog summary.
func (f *Formatter) FormatCounts(counts CountsDTO, systemOrder []string) error {
	if f.JSON() {
		return f.encode(counts)
	}

	rows := []struct {
		label string
		value int
	}{
		{"Celestial bodies", counts.Bodies},
		{"Stars", counts.Stars},
		{"Gas planets", counts.GasPlanets},
		{"Ice planets", counts.IcePlanets},
		{"Dwarf planets", counts.DwarfPlanets},
		{"Planetary systems", counts.Systems},
	}
	var b strings.Builder
	b.WriteString(f.title.Render("Catalog"))
	for _, row := range rows {
		fmt.Fprintf(&b, "\n%s %d", f.label.Render(row.label+":"), row.value)
	}
	for _, name := range systemOrder {
		fmt.Fprintf(&b, "\n  %s %d", f.index.Render(name+":"), counts.PerSystem[name])
	}
	return f.println(b.String())
}

// FormatMessage prints a confirmation line, or {"message": ...} as JSON.
func (f *Formatter) FormatMessage(msg string) error {
	if f.JSON() {
		return f.encode(map[string]string{"message": msg})
	}
	return f.println(f.success.Render(msg))
}

// FormatResult formats an arbitrary result as JSON
func (f *Formatter) FormatResult(result any) error {
	return f.encode(result)
}
