package attraction

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// ExportColumns is the fixed column order of the CSV export. The importer
// accepts these names case-insensitively plus the aliases below, so an
// exported file always re-imports cleanly.
var ExportColumns = []string{
	"id", "name", "description", "district", "province", "categories",
	"image", "highlights", "bestTime", "entryFee", "lat", "lng", "x", "y",
}

// columnAliases maps lowercased accepted header names to canonical columns.
// Legacy spreadsheets from the agency used "latitude"/"longitude" and
// "best time"/"entry fee" headings.
var columnAliases = map[string]string{
	"latitude":  "lat",
	"longitude": "lng",
	"lon":       "lng",
	"best time": "bestTime",
	"besttime":  "bestTime",
	"entry fee": "entryFee",
	"entryfee":  "entryFee",
	"category":  "categories",
	"highlight": "highlights",
	"img":       "image",
	"desc":      "description",
}

// RowDefaults supplies the values substituted for missing or unparseable
// columns. District comes from the import request; Lat/Lng fall back to a
// fixed reference point so a row without coordinates still lands on the map.
type RowDefaults struct {
	District string
	Lat      float64
	Lng      float64
}

// ParseRow converts one header→value mapping into an Attraction. It never
// fails: missing columns get defaults, bad numbers get the documented
// fallback (reference point for lat/lng, midpoint 50 for x/y), list columns
// are comma-split with each element trimmed. The importer is used by
// non-technical staff, so silent defaulting beats rejection here.
func ParseRow(row map[string]string, defaults RowDefaults) Attraction {
	get := func(col string) string {
		// a canonical header beats an alias when a file carries both,
		// e.g. "lat" alongside "latitude"
		want := strings.ToLower(col)
		for k, v := range row {
			if strings.ToLower(strings.TrimSpace(k)) == want {
				return strings.TrimSpace(v)
			}
		}
		for k, v := range row {
			if canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(k))]; ok && canonical == col {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}

	district := get("district")
	if district == "" {
		district = defaults.District
	}

	return Attraction{
		ID:          get("id"),
		Name:        get("name"),
		Description: get("description"),
		District:    district,
		Province:    get("province"),
		Categories:  splitList(get("categories")),
		Image:       get("image"),
		Highlights:  splitList(get("highlights")),
		BestTime:    get("bestTime"),
		EntryFee:    get("entryFee"),
		Lat:         parseFloatOr(get("lat"), defaults.Lat),
		Lng:         parseFloatOr(get("lng"), defaults.Lng),
		X:           parseFloatOr(get("x"), 50),
		Y:           parseFloatOr(get("y"), 50),
	}
}

// ReadCSV parses an uploaded CSV document into attractions, one per data row.
// The first row is the header. Rows shorter than the header are padded so a
// truncated row still imports with defaults.
func ReadCSV(r io.Reader, defaults RowDefaults) ([]Attraction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	var out []Attraction
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		out = append(out, ParseRow(row, defaults))
	}
	return out, nil
}

// WriteCSV writes attractions in the fixed export column order using standard
// CSV quoting. List fields are comma-joined inside a single column.
func WriteCSV(w io.Writer, attractions []Attraction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ExportColumns); err != nil {
		return err
	}
	for _, a := range attractions {
		record := []string{
			a.ID,
			a.Name,
			a.Description,
			a.District,
			a.Province,
			strings.Join(a.Categories, ","),
			a.Image,
			strings.Join(a.Highlights, ","),
			a.BestTime,
			a.EntryFee,
			formatFloat(a.Lat),
			formatFloat(a.Lng),
			formatFloat(a.X),
			formatFloat(a.Y),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
