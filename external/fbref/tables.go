package fbref

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

// Table is one HTML stats table, flattened: multi-level headers are
// joined into single column names and every row is keyed by them.
type Table struct {
	ID      string
	Columns []string
	Rows    []map[string]string
}

// StatTables groups the tables of one page by what they describe.
type StatTables struct {
	Squad  map[string]*Table
	Player map[string]*Table
}

type tableKind int

const (
	kindSkip tableKind = iota
	kindSquad
	kindPlayer
)

// classifyTable buckets a table by its element id. Squad aggregates carry
// "squads" in the id, per-player tables start with "stats_". Match logs,
// fixtures and score grids are not stats tables and are skipped.
func classifyTable(id string) tableKind {
	switch {
	case id == "":
		return kindSkip
	case strings.Contains(id, "matchlogs"),
		strings.Contains(id, "fixtures"),
		strings.Contains(id, "scores"):
		return kindSkip
	case strings.Contains(id, "squads"):
		return kindSquad
	case strings.HasPrefix(id, "stats_"):
		return kindPlayer
	default:
		return kindSkip
	}
}

// ExtractStatTables parses every stats table on a page, including the
// ones the origin ships inside HTML comments.
func ExtractStatTables(html string) (StatTables, error) {
	tables, err := parseTables(html)
	if err != nil {
		return StatTables{}, err
	}

	out := StatTables{
		Squad:  map[string]*Table{},
		Player: map[string]*Table{},
	}
	for _, t := range tables {
		switch classifyTable(t.ID) {
		case kindSquad:
			out.Squad[t.ID] = t
		case kindPlayer:
			out.Player[t.ID] = t
		}
	}
	return out, nil
}

// parseTables returns every id-carrying table on the page in document
// order, comment-hidden or not.
func parseTables(html string) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(revealComments(html)))
	if err != nil {
		return nil, crerr.Wrap(err, "parse document")
	}

	var tables []*Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		id, ok := sel.Attr("id")
		if !ok || id == "" {
			return
		}
		tables = append(tables, parseTable(id, sel))
	})
	return tables, nil
}

// revealComments strips comment delimiters so tables the origin hides
// inside <!-- --> blocks are parsed like regular markup.
func revealComments(html string) string {
	html = strings.ReplaceAll(html, "<!--", "")
	return strings.ReplaceAll(html, "-->", "")
}

func parseTable(id string, sel *goquery.Selection) *Table {
	t := &Table{ID: id}
	t.Columns = flattenHeader(sel)

	sel.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		if class, _ := row.Attr("class"); strings.Contains(class, "thead") || strings.Contains(class, "spacer") {
			return
		}
		cells := row.Find("th, td")
		if cells.Length() == 0 {
			return
		}
		record := make(map[string]string, len(t.Columns))
		cells.Each(func(i int, cell *goquery.Selection) {
			if i >= len(t.Columns) {
				return
			}
			record[t.Columns[i]] = strings.TrimSpace(cell.Text())
		})
		t.Rows = append(t.Rows, record)
	})
	return t
}

// flattenHeader collapses a multi-level header into one name per column
// by joining the non-placeholder segments of each level with "_".
// A single-level header passes through unchanged, and an all-placeholder
// column falls back to its innermost label.
func flattenHeader(table *goquery.Selection) []string {
	var levels [][]string
	table.Find("thead tr").Each(func(_ int, row *goquery.Selection) {
		var level []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			span := 1
			if v, ok := cell.Attr("colspan"); ok {
				if n, err := strconv.Atoi(v); err == nil && n > 1 {
					span = n
				}
			}
			for i := 0; i < span; i++ {
				level = append(level, text)
			}
		})
		levels = append(levels, level)
	})
	if len(levels) == 0 {
		return nil
	}

	bottom := levels[len(levels)-1]
	columns := make([]string, len(bottom))
	for i := range bottom {
		var segments []string
		for _, level := range levels {
			if i >= len(level) {
				continue
			}
			if seg := level[i]; !placeholderSegment(seg) {
				segments = append(segments, seg)
			}
		}
		if len(segments) == 0 {
			// All levels were placeholders; keep the innermost label
			// so the column stays addressable.
			columns[i] = bottom[i]
		} else {
			columns[i] = strings.Join(segments, "_")
		}
	}
	return columns
}

func placeholderSegment(s string) bool {
	return s == "" || strings.HasPrefix(s, "Unnamed")
}
