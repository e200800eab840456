// Package render draws catalog views for the terminal: the book list, a
// single book, the checkout list, and collection statistics.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	maxCellWidth = 40
	maxBarWidth  = 40
)

// Renderer writes views using a fixed set of styles.
type Renderer struct {
	styles Styles
}

// New returns a Renderer. When color is false, output carries no ANSI
// styling, which suits pipes and files.
func New(color bool) *Renderer {
	if color {
		return &Renderer{styles: DefaultTheme().Styles()}
	}
	return &Renderer{styles: plainStyles()}
}

var sortHeaders = []struct {
	field types.SortField
	label string
}{
	{types.SortTitle, "Title"},
	{types.SortAuthor, "Author"},
	{types.SortPublisher, "Publisher"},
	{types.SortPublishedDate, "Published"},
}

// BookList renders the derived catalog view as a table. The active sort
// column carries a direction arrow.
func (r *Renderer) BookList(w io.Writer, books []types.Book, spec types.SortSpec, query string) error {
	if len(books) == 0 {
		msg := "No books in the catalog yet. Add one with `shelf add`."
		if strings.TrimSpace(query) != "" {
			msg = fmt.Sprintf("No books match %q.", query)
		}
		_, err := fmt.Fprintln(w, r.styles.Muted.Render(msg))
		return err
	}

	headers := make([]string, 0, len(sortHeaders)+2)
	for _, h := range sortHeaders {
		label := h.label
		if h.field == spec.Field {
			label += " " + arrow(spec.Direction)
		}
		headers = append(headers, label)
	}
	headers = append(headers, "Status", "ID")

	rows := make([][]string, 0, len(books))
	for i := range books {
		b := &books[i]
		rows = append(rows, []string{
			truncate(b.Title, maxCellWidth),
			truncate(b.Author, maxCellWidth),
			truncate(b.Publisher, maxCellWidth),
			FormatDate(b.PublishedDate),
			status(b),
			b.ID,
		})
	}

	var out strings.Builder
	out.WriteString(r.table(headers, rows, func(row, col int) lipgloss.Style {
		if col == 4 && row >= 0 && books[row].IsCheckedOut() {
			return r.styles.Cell.Foreground(r.styles.Warning.GetForeground())
		}
		return r.styles.Cell
	}))
	out.WriteString("\n")

	footer := fmt.Sprintf("%d book%s, sorted by %s", len(books), plural(len(books)), spec)
	if strings.TrimSpace(query) != "" {
		footer += fmt.Sprintf(", matching %q", query)
	}
	out.WriteString(r.styles.Muted.Render(footer))
	out.WriteString("\n")

	_, err := io.WriteString(w, out.String())
	return err
}

// BookDetail renders every field of one book, its checkout state, and the
// record timestamps.
func (r *Renderer) BookDetail(w io.Writer, b types.Book) error {
	var out strings.Builder
	out.WriteString(r.styles.Title.Render(b.Title))
	out.WriteString("\n")
	out.WriteString(r.styles.Muted.Render("by " + b.Author))
	out.WriteString("\n\n")

	pages := placeholder
	if b.PageCount > 0 {
		pages = strconv.Itoa(b.PageCount)
	}
	fields := [][2]string{
		{"Publisher", b.Publisher},
		{"Published", FormatDate(b.PublishedDate)},
		{"ISBN", orDash(b.ISBN)},
		{"Genre", orDash(b.Genre)},
		{"Pages", pages},
		{"Cover", orDash(b.CoverURL)},
		{"ID", b.ID},
	}
	r.writeFields(&out, fields)

	if desc := strings.TrimSpace(b.Description); desc != "" {
		out.WriteString("\n")
		out.WriteString(r.styles.Label.Render("Description"))
		out.WriteString("\n")
		out.WriteString(r.styles.Value.Render(desc))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	if b.IsCheckedOut() {
		co := b.CheckedOut
		out.WriteString(r.styles.Warning.Render("Checked out"))
		out.WriteString("\n")
		r.writeFields(&out, [][2]string{
			{"Borrower", co.Name},
			{"Phone", co.Phone},
			{"Since", FormatTimestamp(co.CheckoutDate)},
		})
	} else {
		out.WriteString(r.styles.Success.Render("Available"))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	r.writeFields(&out, [][2]string{
		{"Added", FormatTimestamp(b.CreatedAt)},
		{"Updated", FormatTimestamp(b.UpdatedAt)},
	})

	_, err := io.WriteString(w, out.String())
	return err
}

// Checkouts renders the books currently lent out with their borrowers.
func (r *Renderer) Checkouts(w io.Writer, books []types.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, r.styles.Muted.Render("No books are checked out."))
		return err
	}

	rows := make([][]string, 0, len(books))
	for i := range books {
		b := &books[i]
		if !b.IsCheckedOut() {
			continue
		}
		rows = append(rows, []string{
			truncate(b.Title, maxCellWidth),
			truncate(b.Author, maxCellWidth),
			b.CheckedOut.Name,
			b.CheckedOut.Phone,
			FormatTimestamp(b.CheckedOut.CheckoutDate),
			b.ID,
		})
	}

	var out strings.Builder
	out.WriteString(r.table(
		[]string{"Title", "Author", "Borrower", "Phone", "Since", "ID"},
		rows,
		func(int, int) lipgloss.Style { return r.styles.Cell },
	))
	out.WriteString("\n")
	out.WriteString(r.styles.Muted.Render(fmt.Sprintf("%d book%s checked out", len(rows), plural(len(rows)))))
	out.WriteString("\n")

	_, err := io.WriteString(w, out.String())
	return err
}

// Stats renders the summary counters followed by a books-per-publisher bar
// chart.
func (r *Renderer) Stats(w io.Writer, st catalog.Stats) error {
	cards := []string{
		r.card("Books", st.Total),
		r.card("Authors", st.Authors),
		r.card("Publishers", st.Publishers),
		r.card("Checked out", st.CheckedOut),
	}

	var out strings.Builder
	out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	out.WriteString("\n\n")
	out.WriteString(r.styles.Title.Render("Books by publisher"))
	out.WriteString("\n")

	if len(st.ByPublisher) == 0 {
		out.WriteString(r.styles.Muted.Render("No data yet."))
		out.WriteString("\n")
		_, err := io.WriteString(w, out.String())
		return err
	}

	labelWidth, peak := 0, 0
	for _, pc := range st.ByPublisher {
		labelWidth = max(labelWidth, lipgloss.Width(truncate(pc.Publisher, maxCellWidth)))
		peak = max(peak, pc.Count)
	}
	label := r.styles.Label.Width(labelWidth)

	for _, pc := range st.ByPublisher {
		out.WriteString(label.Render(truncate(pc.Publisher, maxCellWidth)))
		out.WriteString(" ")
		out.WriteString(r.styles.Bar.Render(strings.Repeat("█", barWidth(pc.Count, peak))))
		out.WriteString(" ")
		out.WriteString(r.styles.Value.Render(strconv.Itoa(pc.Count)))
		out.WriteString("\n")
	}

	_, err := io.WriteString(w, out.String())
	return err
}

func (r *Renderer) table(headers []string, rows [][]string, cell func(row, col int) lipgloss.Style) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return cell(row, col)
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func (r *Renderer) writeFields(out *strings.Builder, fields [][2]string) {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f[0]))
	}
	label := r.styles.Label.Width(width + 2)
	for _, f := range fields {
		out.WriteString(label.Render(f[0]))
		out.WriteString(r.styles.Value.Render(f[1]))
		out.WriteString("\n")
	}
}

func (r *Renderer) card(title string, n int) string {
	body := r.styles.CardHead.Render(title) + "\n" + r.styles.Title.Render(strconv.Itoa(n))
	return r.styles.Card.Render(body)
}

// barWidth scales count against the largest bar. Non-zero counts always get
// at least one cell.
func barWidth(count, peak int) int {
	if count <= 0 || peak <= 0 {
		return 0
	}
	return max(1, count*maxBarWidth/peak)
}

func arrow(d types.SortDirection) string {
	if d == types.SortDesc {
		return "▼"
	}
	return "▲"
}

func status(b *types.Book) string {
	if b.IsCheckedOut() {
		return "Checked out"
	}
	return "Available"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
