// Package importer reads external event formats into records. Two formats
// are supported: a YAML document of records and iCalendar (ICS) feeds.
// Date-only bounds are stored with the UTC-midnight sentinel encoding, the
// end bound naming the last day the record covers.
package importer

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"timegrid/internal/dateutil"
	"timegrid/internal/record"
)

type yamlRecord struct {
	Title string `yaml:"title"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Color string `yaml:"color"`
	Group string `yaml:"group"`
}

type yamlFile struct {
	Records []yamlRecord `yaml:"records"`
}

// ReadYAML parses a YAML record document. Bounds accept RFC 3339 timestamps
// or bare dates; a bare date means the whole day.
func ReadYAML(r io.Reader) ([]*record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var doc yamlFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	recs := make([]*record.Record, 0, len(doc.Records))
	for i, yr := range doc.Records {
		if yr.Title == "" {
			return nil, fmt.Errorf("record %d: missing title", i+1)
		}

		start, err := dateutil.ParseInstant(yr.Start)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): start: %w", i+1, yr.Title, err)
		}
		end, err := dateutil.ParseInstant(yr.End)
		if err != nil {
			return nil, fmt.Errorf("record %d (%q): end: %w", i+1, yr.Title, err)
		}

		recs = append(recs, &record.Record{
			Title:    yr.Title,
			Start:    start,
			End:      end,
			Color:    yr.Color,
			GroupKey: yr.Group,
		})
	}

	return recs, nil
}
