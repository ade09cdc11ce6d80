// Package extractor turns uploaded document bytes into raw transaction rows.
// Recognized tabular formats are parsed; anything else falls back to a fixed
// simulated vendor set so the pipeline always produces output.
package extractor

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
	"github.com/mapleleaf/taxprep_backend/internal/middleware"
	"github.com/mapleleaf/taxprep_backend/internal/platform/storage"
)

const mimeCSV = "text/csv"

// defaultRowDate is used when a CSV row carries no parseable date.
var defaultRowDate = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

// simulatedVendors is the canned vendor set used when structured extraction
// yields nothing. It stands in for real OCR/PDF text extraction.
var simulatedVendors = []string{
	"Tim Hortons #1234",
	"Amazon.ca Purchase",
	"Shell Gas Station",
	"Google Workspace",
	"Air Canada Flight",
	"Staples Office",
	"TD Bank Fee",
	"Facebook Ads",
	"Uber Trip",
	"Starbucks Coffee",
}

// Extractor reads a document's bytes from storage and produces raw rows.
type Extractor struct {
	store storage.Storage

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// Option customizes the extractor.
type Option func(*Extractor)

// WithRandSource replaces the random source used for simulated amounts.
func WithRandSource(rng *rand.Rand) Option {
	return func(e *Extractor) {
		e.rng = rng
	}
}

// New creates an extractor backed by the given byte store.
func New(store storage.Storage, opts ...Option) *Extractor {
	e := &Extractor{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract produces the ordered raw row set for a document. Extraction-level
// failures are recovered locally by simulation and never propagate; the
// returned slice is always non-empty.
func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) []domain.RawTransaction {
	logger := middleware.GetLoggerFromCtx(ctx)

	if doc.MimeType == mimeCSV && doc.StoragePath != "" && e.store.Exists(doc.StoragePath) {
		content, err := e.store.Read(doc.StoragePath)
		if err == nil {
			rows, err := ParseCSV(content)
			if err == nil && len(rows) > 0 {
				return rows
			}
			if err != nil {
				logger.Warn("CSV parse failed, falling back to simulated extraction",
					slog.String("document_id", doc.DocumentID), slog.String("error", err.Error()))
			}
		} else {
			logger.Warn("Document read failed, falling back to simulated extraction",
				slog.String("document_id", doc.DocumentID), slog.String("error", err.Error()))
		}
	}

	return e.simulate()
}

// simulate returns the canned vendor rows with randomized amounts, dated
// three days apart starting 2025-01-01.
func (e *Extractor) simulate() []domain.RawTransaction {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows := make([]domain.RawTransaction, len(simulatedVendors))
	for i, vendor := range simulatedVendors {
		rows[i] = domain.RawTransaction{
			Date:        time.Date(2025, time.January, 1+i*3, 0, 0, 0, 0, time.UTC),
			VendorRaw:   vendor,
			AmountCents: 1000 + int64(e.rng.Intn(50000)),
			Description: fmt.Sprintf("Payment to %s", vendor),
		}
	}
	return rows
}

// ParseCSV parses tabular bank-export content into raw rows. Column headers
// are matched against common aliases; rows with no recognizable vendor or
// amount still produce a row (zero amount, empty vendor) to preserve order.
func ParseCSV(content []byte) ([]domain.RawTransaction, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	field := func(row []string, aliases ...string) string {
		for _, alias := range aliases {
			if i, ok := index[alias]; ok && i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	rows := make([]domain.RawTransaction, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		dateStr := field(record, "date", "transaction date")
		vendor := field(record, "vendor", "description", "payee")
		amountStr := field(record, "amount", "debit")
		description := field(record, "description", "memo")

		date := defaultRowDate
		if dateStr != "" {
			if parsed, err := time.Parse("2006-01-02", dateStr); err == nil {
				date = parsed
			}
		}

		rows = append(rows, domain.RawTransaction{
			Date:        date,
			VendorRaw:   vendor,
			AmountCents: parseAmountCents(amountStr),
			Description: description,
		})
	}
	return rows, nil
}

// parseAmountCents converts a currency string ("$1,234.56") to absolute
// integer cents; unparseable amounts become zero.
func parseAmountCents(amountStr string) int64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(amountStr)
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.Abs().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
