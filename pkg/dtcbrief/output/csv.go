package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

// utf8BOM lets Excel open the CSV as UTF-8.
const utf8BOM = "\ufeff"

const tagSeparator = ", "

// CSVHeader is the column order of the ClickUp import file. ClickUp ignores
// the trailing Kind and Source columns on import; ReadCSV uses them.
var CSVHeader = []string{
	"Task Name",
	"Task Description",
	"Due Date",
	"Start Date",
	"Priority",
	"Status",
	"Tags",
	"Assignee",
	"Kind",
	"Source Sheet",
	"Source Cell",
}

var tagEscaper = strings.NewReplacer(`\`, `\\`, ",", `\,`)

// joinTags joins tags with tagSeparator, escaping commas and backslashes
// inside a tag so splitTags can restore it.
func joinTags(tags []string) string {
	escaped := make([]string, len(tags))
	for i, tag := range tags {
		escaped[i] = tagEscaper.Replace(tag)
	}
	return strings.Join(escaped, tagSeparator)
}

// splitTags reverses joinTags.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == ',':
			tags = append(tags, cur.String())
			cur.Reset()
			if strings.HasPrefix(s[i+1:], " ") {
				i++
			}
		default:
			cur.WriteByte(c)
		}
	}
	return append(tags, cur.String())
}

// WriteCSV writes tasks in ClickUp import layout.
func WriteCSV(w io.Writer, tasks []models.TaskRecord) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			t.Name,
			t.Description,
			string(t.DueDate),
			string(t.StartDate),
			string(t.Priority),
			t.Status,
			joinTags(t.Tags),
			t.Assignee,
			string(t.Kind),
			t.Source.Sheet,
			t.Source.Cell,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file written by WriteCSV. Columns are matched by header
// name, so files without the Kind and Source columns still load.
func ReadCSV(r io.Reader) ([]models.TaskRecord, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, []byte(utf8BOM)) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"Task Name", "Due Date"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("csv header missing %q", required)
		}
	}

	var tasks []models.TaskRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		tasks = append(tasks, models.TaskRecord{
			Name:        get("Task Name"),
			Description: get("Task Description"),
			DueDate:     models.Date(get("Due Date")),
			StartDate:   models.Date(get("Start Date")),
			Priority:    models.Priority(get("Priority")),
			Status:      get("Status"),
			Tags:        splitTags(get("Tags")),
			Assignee:    get("Assignee"),
			Kind:        models.TaskKind(get("Kind")),
			Source:      models.Source{Sheet: get("Source Sheet"), Cell: get("Source Cell")},
		})
	}
	return tasks, nil
}
