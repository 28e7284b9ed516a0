package weaviate

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	wvtmodels "github.com/weaviate/weaviate/entities/models"
)

const ingestBatchSize = 256

var yearColumn = regexp.MustCompile(`^\d{4}$`)

// Fact is one evidence sentence derived from a row of the export
// statistics CSV. ValueRaw keeps the original cell so the derived
// object ID is stable across re-ingests.
type Fact struct {
	Product  string
	Measure  string
	Units    string
	Year     int
	Value    *float64
	ValueRaw string
	Text     string
}

// ID derives a stable UUID from the fact's key fields so re-ingesting
// the same CSV updates objects instead of duplicating them.
func (f Fact) ID() strfmt.UUID {
	key := fmt.Sprintf("%s|%s|%s|%d|%s", f.Product, f.Measure, f.Units, f.Year, f.ValueRaw)
	return strfmt.UUID(uuid.NewSHA1(uuid.NameSpaceDNS, []byte(key)).String())
}

// ParseFactsCSV reads the wide-format export statistics CSV (one row
// per product/measure, one column per year) and melts it into one fact
// sentence per (row, year) cell.
func ParseFactsCSV(r io.Reader) ([]Fact, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := map[string]int{}
	years := map[int]int{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if yearColumn.MatchString(name) {
			year, _ := strconv.Atoi(name)
			years[year] = i
			continue
		}
		cols[name] = i
	}

	productCol, ok := cols["Diary export"]
	if !ok {
		return nil, fmt.Errorf("csv missing %q column", "Diary export")
	}
	measureCol, ok := cols["Year to 30 June"]
	if !ok {
		return nil, fmt.Errorf("csv missing %q column", "Year to 30 June")
	}
	unitsCol, ok := cols["Units"]
	if !ok {
		return nil, fmt.Errorf("csv missing %q column", "Units")
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("csv has no year columns")
	}

	var facts []Fact
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		for year, col := range years {
			if col >= len(row) {
				continue
			}
			raw := strings.TrimSpace(row[col])
			fact := Fact{
				Product:  strings.TrimSpace(row[productCol]),
				Measure:  strings.TrimSpace(row[measureCol]),
				Units:    strings.TrimSpace(row[unitsCol]),
				Year:     year,
				Value:    parseAmount(raw),
				ValueRaw: raw,
			}
			fact.Text = factText(fact)
			if fact.Text == "" {
				continue
			}
			facts = append(facts, fact)
		}
	}
	return facts, nil
}

func parseAmount(raw string) *float64 {
	switch raw {
	case "", "-", "NA", "N/A":
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

func factText(f Fact) string {
	if f.Value == nil {
		return ""
	}
	value := strconv.FormatFloat(*f.Value, 'f', -1, 64)
	measure := strings.ToLower(f.Measure)
	switch {
	case strings.HasPrefix(measure, "average export price"):
		return fmt.Sprintf("In %d, the average export price for %s was %s %s in New Zealand.", f.Year, f.Product, value, f.Units)
	case strings.HasPrefix(measure, "export volume"):
		return fmt.Sprintf("In %d, the export volume of %s was %s %s in New Zealand.", f.Year, f.Product, value, f.Units)
	case strings.HasPrefix(measure, "export revenue"):
		return fmt.Sprintf("In %d, the export revenue of %s was %s %s in New Zealand.", f.Year, f.Product, value, f.Units)
	default:
		return fmt.Sprintf("In %d, the %s of %s was %s %s in New Zealand.", f.Year, f.Measure, f.Product, value, f.Units)
	}
}

// Ingester loads evidence facts into the Weaviate class the retriever
// searches.
type Ingester struct {
	client *weaviate.Client
	class  string
}

// NewIngester creates an ingester for the configured Weaviate instance
func NewIngester(cfg Config) (*Ingester, error) {
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   cfg.Host,
		Scheme: cfg.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Ingester{client: client, class: cfg.Class}, nil
}

// EnsureClass creates the evidence class if it does not exist yet.
// Idempotent.
func (i *Ingester) EnsureClass(ctx context.Context) error {
	_, err := i.client.Schema().ClassGetter().WithClassName(i.class).Do(ctx)
	if err == nil {
		return nil
	}

	class := &wvtmodels.Class{
		Class:       i.class,
		Description: "Evidence sentences derived from export statistics",
		Properties: []*wvtmodels.Property{
			{Name: "fact_text", DataType: []string{"text"}},
			{Name: "product", DataType: []string{"text"}},
			{Name: "measure", DataType: []string{"text"}},
			{Name: "units", DataType: []string{"text"}},
			{Name: "year", DataType: []string{"int"}},
			{Name: "value", DataType: []string{"number"}},
		},
	}
	if err := i.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", i.class, err)
	}
	return nil
}

// Import batch-upserts facts and returns the number of stored objects.
func (i *Ingester) Import(ctx context.Context, facts []Fact) (int, error) {
	stored := 0
	for start := 0; start < len(facts); start += ingestBatchSize {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		end := start + ingestBatchSize
		if end > len(facts) {
			end = len(facts)
		}

		objects := make([]*wvtmodels.Object, 0, end-start)
		for _, fact := range facts[start:end] {
			props := map[string]interface{}{
				"fact_text": fact.Text,
				"product":   fact.Product,
				"measure":   fact.Measure,
				"units":     fact.Units,
				"year":      fact.Year,
			}
			if fact.Value != nil {
				props["value"] = *fact.Value
			}
			objects = append(objects, &wvtmodels.Object{
				ID:         fact.ID(),
				Class:      i.class,
				Properties: props,
			})
		}

		result, err := i.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
		if err != nil {
			return stored, fmt.Errorf("batch import failed: %w", err)
		}
		for _, obj := range result {
			if obj.Result != nil && obj.Result.Errors == nil {
				stored++
			}
		}
	}
	return stored, nil
}
