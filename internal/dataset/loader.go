package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"olist-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Column names the loader requires. Any other columns are ignored.
const (
	ColOrderID          = "order_id"
	ColCustomerUniqueID = "customer_unique_id"
	ColPurchaseTime     = "order_purchase_timestamp"
	ColPaymentValue     = "payment_value"
	ColPaymentType      = "payment_type"
	ColProductCategory  = "product_category_name"
	ColCustomerCity     = "customer_city"
	ColCustomerState    = "customer_state"
)

var RequiredColumns = []string{
	ColOrderID,
	ColCustomerUniqueID,
	ColPurchaseTime,
	ColPaymentValue,
	ColPaymentType,
	ColProductCategory,
	ColCustomerCity,
	ColCustomerState,
}

var timestampLayouts = []string{
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// columns holds the raw cell text of the required columns, indexed by row.
type columns map[string][]string

type Loader struct {
	logger  *slog.Logger
	workers int
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, workers: maxWorkers}
}

// Load reads a .csv or .xlsx file into a Dataset.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	start := time.Now()

	var (
		cols columns
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", "":
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, loadErr("open %s: %v", path, err)
		}
		defer f.Close()
		cols, err = readCSV(f)
	case ".xlsx", ".xlsm":
		cols, err = readXLSX(path)
	default:
		return nil, loadErr("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}

	orders, err := l.parse(ctx, cols)
	if err != nil {
		return nil, err
	}

	ds := New(path, orders)
	l.logger.Info("dataset loaded",
		"source", path,
		"rows", ds.Len(),
		"duration", time.Since(start),
	)
	return ds, nil
}

// LoadCSV reads CSV content from r into a Dataset.
func (l *Loader) LoadCSV(ctx context.Context, source string, r io.Reader) (*Dataset, error) {
	cols, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	orders, err := l.parse(ctx, cols)
	if err != nil {
		return nil, err
	}
	return New(source, orders), nil
}

func readCSV(r io.Reader) (columns, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, loadErr("read csv: %v", df.Err)
	}
	if df.Nrow() == 0 {
		return nil, loadErr("no data rows")
	}

	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	cols := make(columns, len(RequiredColumns))
	for _, name := range RequiredColumns {
		if !present[name] {
			return nil, loadErr("missing column %q", name)
		}
		cols[name] = df.Col(name).Records()
	}
	return cols, nil
}

func readXLSX(path string) (columns, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, loadErr("open %s: %v", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, loadErr("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, loadErr("read sheet %s: %v", sheets[0], err)
	}
	defer rows.Close()

	index := map[string]int{}
	cols := make(columns, len(RequiredColumns))
	header := true
	for rows.Next() {
		vals, err := rows.Columns()
		if err != nil {
			return nil, loadErr("read row: %v", err)
		}
		if header {
			for i, name := range vals {
				index[strings.TrimSpace(name)] = i
			}
			for _, name := range RequiredColumns {
				if _, ok := index[name]; !ok {
					return nil, loadErr("missing column %q", name)
				}
			}
			header = false
			continue
		}
		for _, name := range RequiredColumns {
			i := index[name]
			cell := ""
			if i < len(vals) {
				cell = vals[i]
			}
			cols[name] = append(cols[name], cell)
		}
	}
	if header {
		return nil, loadErr("empty sheet %s", sheets[0])
	}
	if len(cols[ColOrderID]) == 0 {
		return nil, loadErr("no data rows")
	}
	return cols, nil
}

// parse converts raw columns to orders in parallel batches. Each batch
// writes to its own slots so the output keeps file order; the reported
// error is the one on the earliest line.
func (l *Loader) parse(ctx context.Context, cols columns) ([]models.Order, error) {
	n := len(cols[ColOrderID])
	orders := make([]models.Order, n)
	batches := (n + batchSize - 1) / batchSize
	errs := make([]error, batches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for b := 0; b < batches; b++ {
		lo := b * batchSize
		hi := min(lo+batchSize, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%1000 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				o, err := parseRow(cols, i)
				if err != nil {
					errs[b] = err
					return nil
				}
				orders[i] = o
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func parseRow(cols columns, i int) (models.Order, error) {
	cell := func(name string) string {
		v := strings.TrimSpace(cols[name][i])
		if isMissing(v) {
			return ""
		}
		return v
	}

	rawTS := strings.TrimSpace(cols[ColPurchaseTime][i])
	ts, err := parseTimestamp(rawTS)
	if err != nil {
		return models.Order{}, &ParseError{Line: i + 2, Column: ColPurchaseTime, Value: rawTS, Err: err}
	}

	value := decimal.Zero
	if raw := cell(ColPaymentValue); raw != "" {
		value, err = decimal.NewFromString(raw)
		if err != nil {
			return models.Order{}, &ParseError{Line: i + 2, Column: ColPaymentValue, Value: raw, Err: err}
		}
	}

	return models.Order{
		OrderID:          cell(ColOrderID),
		CustomerUniqueID: cell(ColCustomerUniqueID),
		PurchasedAt:      ts,
		PaymentValue:     value,
		PaymentType:      cell(ColPaymentType),
		ProductCategory:  cell(ColProductCategory),
		CustomerCity:     cell(ColCustomerCity),
		CustomerState:    cell(ColCustomerState),
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp format")
}

func isMissing(v string) bool {
	switch v {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}
