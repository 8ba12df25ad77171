package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fwojciec/formulary"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Formulary"))
	b.WriteString(dimStyle.Render("  spreadsheet function reference"))
	b.WriteString("\n\n")

	switch m.route.View {
	case formulary.ViewFunction:
		if f, ok := m.catalog.FindFunction(m.route.ID); ok {
			m.renderFunction(&b, f)
		}
	case formulary.ViewGuide:
		if g, ok := m.catalog.FindGuide(m.route.ID); ok {
			m.renderGuide(&b, g)
		}
	case formulary.ViewPlayground:
		m.renderPlayground(&b)
	default:
		m.renderHome(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys.forView(m.route.View)))
	return b.String()
}

func (m Model) renderHome(b *strings.Builder) {
	b.WriteString(m.input.View())
	b.WriteString("\n")

	category := "All"
	if m.filter.Category != nil {
		category = *m.filter.Category
	}
	only := "off"
	if m.filter.BookmarksOnly {
		only = "on"
	}
	fmt.Fprintf(b, "%s\n\n", dimStyle.Render(fmt.Sprintf(
		"Category: %s · Bookmarked only: %s · %d functions", category, only, len(m.results))))

	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("No functions found."))
		b.WriteString("\n")
	}
	bookmarks := m.bookmarks.Bookmarks()
	for i, f := range m.results {
		star := " "
		if bookmarks.Has(f.Name) {
			star = starStyle.Render("★")
		}
		line := fmt.Sprintf("%s %-10s %s", star, f.Name, dimStyle.Render(f.Category+" · "+f.ShortDescription))
		b.WriteString(m.cursorLine(m.pane == paneFunctions && i == m.cursor, line))
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Learning guides"))
	b.WriteString("\n")
	for i, g := range m.catalog.Guides() {
		line := fmt.Sprintf("%s %s", g.Title, dimStyle.Render("("+string(g.Category)+")"))
		b.WriteString(m.cursorLine(m.pane == paneGuides && i == m.guideCursor, line))
	}
}

func (m Model) cursorLine(selected bool, line string) string {
	if selected {
		return selectedStyle.Render("> ") + line + "\n"
	}
	return "  " + line + "\n"
}

func (m Model) renderFunction(b *strings.Builder, f *formulary.Function) {
	star := "☆ not bookmarked"
	if m.bookmarks.Bookmarks().Has(f.Name) {
		star = starStyle.Render("★ bookmarked")
	}
	fmt.Fprintf(b, "%s  %s  %s\n", headingStyle.Render(f.Name), dimStyle.Render(f.Category+" · "+string(f.Difficulty)), star)
	b.WriteString(m.wrap(f.ShortDescription))
	b.WriteString("\n\n")

	section(b, "Syntax")
	b.WriteString(codeStyle.Render(f.Syntax))
	b.WriteString("\n\n")

	if len(f.Arguments) > 0 {
		section(b, "Arguments")
		for _, a := range f.Arguments {
			req := "optional"
			if a.Required {
				req = "required"
			}
			fmt.Fprintf(b, "  %s %s\n", codeStyle.Render(a.Name), dimStyle.Render("("+a.Type+", "+req+")"))
			fmt.Fprintf(b, "    %s\n", a.Description)
		}
		b.WriteString("\n")
	}

	section(b, "Returns")
	fmt.Fprintf(b, "  %s %s\n\n", codeStyle.Render(f.Returns.Type), f.Returns.Description)

	if len(f.Examples) > 0 {
		section(b, "Examples")
		for _, ex := range f.Examples {
			fmt.Fprintf(b, "  %s\n", ex.Description)
			if ex.Data != nil {
				b.WriteString(Sheet(*ex.Data))
				b.WriteString("\n")
			}
			fmt.Fprintf(b, "  %s  →  %s\n\n", codeStyle.Render(ex.Formula), ex.Result)
		}
	}

	if len(f.CommonErrors) > 0 {
		section(b, "Common errors")
		for _, ce := range f.CommonErrors {
			fmt.Fprintf(b, "  %s %s\n", errorStyle.Render(ce.ErrorCode), ce.Description)
		}
		b.WriteString("\n")
	}
	bullets(b, "Pitfalls", f.Pitfalls)
	bullets(b, "Notes", f.Notes)

	fmt.Fprintf(b, "%s %s\n", subheadStyle.Render("Introduced:"), f.VersionIntroduced)
	if len(f.Tags) > 0 {
		fmt.Fprintf(b, "%s %s\n", subheadStyle.Render("Tags:"), strings.Join(f.Tags, ", "))
	}

	if links := formulary.ResolveRelated(m.catalog.Functions(), f); len(links) > 0 {
		b.WriteString("\n")
		section(b, "Related functions")
		for i, l := range links {
			line := l.Name
			if !l.Found {
				line = dimStyle.Render(l.Name + " (not in catalog)")
			}
			b.WriteString(m.cursorLine(i == m.related, line))
		}
	}
}

func (m Model) renderGuide(b *strings.Builder, g *formulary.Guide) {
	fmt.Fprintf(b, "%s  %s\n", headingStyle.Render(g.Title), dimStyle.Render(string(g.Category)))
	b.WriteString(dimStyle.Render(g.ShortDescription))
	b.WriteString("\n\n")

	lines := RenderBlocks(formulary.ParseGuideContent(g.Content))
	start := min(m.scroll, max(len(lines)-1, 0))
	for _, line := range lines[start:] {
		b.WriteString(m.wrap(line))
		b.WriteString("\n")
	}
}

// RenderBlocks styles guide blocks, one output line per block.
func RenderBlocks(blocks []formulary.Block) []string {
	lines := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		switch blk.Kind {
		case formulary.BlockHeading2:
			lines = append(lines, headingStyle.Render(blk.Text))
		case formulary.BlockHeading3:
			lines = append(lines, subheadStyle.Render(blk.Text))
		case formulary.BlockCode:
			lines = append(lines, codeStyle.Render(blk.Text))
		case formulary.BlockBreak:
			lines = append(lines, "")
		default:
			lines = append(lines, blk.Text)
		}
	}
	return lines
}

func (m Model) renderPlayground(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Formula playground"))
	b.WriteString("\n\n")
	b.WriteString(Sheet(formulary.SampleSheet))
	b.WriteString("\n\n")
	b.WriteString(m.formula.View())
	b.WriteString("\n")
	if m.formula.Value() == formulary.DefaultFormula {
		fmt.Fprintf(b, "%s %s\n", subheadStyle.Render("Result:"), formulary.DefaultResult)
	}
	b.WriteString("\n")

	if !formulary.CanExplain(m.formula.Value()) {
		b.WriteString(dimStyle.Render("Enter a formula to explain it."))
		b.WriteString("\n")
		return
	}

	cur := m.playground.Current()
	switch cur.Status {
	case formulary.ExplainPending:
		b.WriteString(dimStyle.Render("Explaining…"))
	case formulary.ExplainFailed:
		b.WriteString(errorStyle.Render(m.wrap(cur.Explanation)))
	case formulary.ExplainResolved:
		section(b, "Explanation")
		b.WriteString(m.wrap(cur.Explanation))
	default:
		b.WriteString(dimStyle.Render("Press enter to explain this formula."))
	}
	b.WriteString("\n")
}

func (m Model) wrap(s string) string {
	if m.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(m.width).Render(s)
}

func section(b *strings.Builder, title string) {
	b.WriteString(subheadStyle.Render(title))
	b.WriteString("\n")
}

func bullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	section(b, title)
	for _, it := range items {
		fmt.Fprintf(b, "  • %s\n", it)
	}
	b.WriteString("\n")
}

// Sheet renders sample data as a bordered grid.
func Sheet(data formulary.SampleData) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorder).
		Headers(data.Headers...).
		Rows(data.Rows...).
		String()
}
