package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/sarkop/opname/internal/cache"
	"github.com/sarkop/opname/internal/config"
	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/opname"
	"github.com/sarkop/opname/internal/summary"
	"github.com/sarkop/opname/internal/wa"
)

// noDataMessage is the user-facing wording for a window with no
// submissions. An empty window is an explicit empty result, not an error.
const noDataMessage = "No stock data found for the selected date range. Please try a different period."

// TableProvider abstracts the spreadsheet-backed data source.
type TableProvider interface {
	ReadRange(ctx context.Context, a1Range string) (domain.Table, error)
}

// StockService derives every view the API serves from the three source
// ranges. All derivations are pure recomputation over freshly fetched (or
// cached) tables; the service holds no state between calls.
type StockService struct {
	provider TableProvider
	cache    cache.TableCache
	sheets   config.SheetsConfig
	report   config.ReportConfig
	cols     opname.Columns
	composer summary.Composer
}

func NewStockService(provider TableProvider, tableCache cache.TableCache, cfg *config.Config, composer summary.Composer) *StockService {
	if tableCache == nil {
		tableCache = cache.NewNoopTableCache()
	}
	if composer == nil {
		composer = summary.NewTemplateComposer()
	}

	return &StockService{
		provider: provider,
		cache:    tableCache,
		sheets:   cfg.Sheets,
		report:   cfg.Report,
		cols: opname.Columns{
			Timestamp: cfg.Columns.Timestamp,
			Email:     cfg.Columns.Email,
			Staff:     cfg.Columns.Staff,
		},
		composer: composer,
	}
}

// CurrentStockView is the payload of the current-stock endpoint.
type CurrentStockView struct {
	Items       []domain.CurrentStockItem `json:"items"`
	Latest      *domain.LatestMeta        `json:"latest,omitempty"`
	DangerCount int                       `json:"danger_count"`
	LowCount    int                       `json:"low_count"`
}

// SupplierEntry pairs a WhatsApp-reachable supplier with its composed
// restock request over the needs-attention item set.
type SupplierEntry struct {
	Contact     domain.SupplierContact    `json:"contact"`
	Items       []domain.CurrentStockItem `json:"items"`
	Message     string                    `json:"message"`
	WhatsAppURL string                    `json:"whatsapp_url"`
}

// TrendReport is the outcome of a summary request over a date window.
type TrendReport struct {
	Text        string `json:"text"`
	Empty       bool   `json:"empty"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// CurrentStock returns the urgency-sorted processing table together with
// freshness metadata from the submission history.
func (s *StockService) CurrentStock(ctx context.Context) (*CurrentStockView, error) {
	var (
		items  []domain.CurrentStockItem
		latest *domain.LatestMeta
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		table, err := s.fetchTable(gctx, s.sheets.ProcessingRange)
		if err != nil {
			return err
		}
		items = opname.SortByUrgency(opname.ParseProcessingTable(table))
		return nil
	})
	g.Go(func() error {
		records, err := s.submissions(gctx)
		if err != nil {
			return err
		}
		latest = opname.LatestSubmission(records, s.cols)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &CurrentStockView{Items: items, Latest: latest}
	for _, it := range items {
		switch it.Condition {
		case domain.ConditionDanger:
			view.DangerCount++
		case domain.ConditionLow:
			view.LowCount++
		}
	}

	return view, nil
}

// VendorMessages composes the broadcast view: per-vendor restock requests
// over the items at or below their restock threshold, most loaded vendor
// first, each with a ready-to-open chat link.
func (s *StockService) VendorMessages(ctx context.Context) ([]domain.VendorMessage, []string, error) {
	items, suppliers, err := s.itemsAndSuppliers(ctx)
	if err != nil {
		return nil, nil, err
	}

	messages := opname.BuildVendorMessages(items, suppliers, s.report.FallbackVendor)

	whatsapp := opname.WhatsAppSuppliers(suppliers)
	links := make([]string, len(messages))
	for i, msg := range messages {
		links[i] = wa.Link(phoneFor(msg.Vendor, whatsapp), msg.Message)
	}

	return messages, links, nil
}

// SupplierDirectory lists WhatsApp-reachable suppliers, each with the
// detail-view request for its needs-attention items. Suppliers whose items
// are all fine still appear, with an empty item list and no message.
func (s *StockService) SupplierDirectory(ctx context.Context) ([]SupplierEntry, error) {
	items, suppliers, err := s.itemsAndSuppliers(ctx)
	if err != nil {
		return nil, err
	}

	var attention []domain.CurrentStockItem
	for _, it := range opname.SortByUrgency(items) {
		if opname.NeedsAttention(it) {
			attention = append(attention, it)
		}
	}

	whatsapp := opname.WhatsAppSuppliers(suppliers)
	entries := make([]SupplierEntry, 0, len(whatsapp))
	for _, contact := range whatsapp {
		entry := SupplierEntry{Contact: contact}
		if msg, ok := opname.BuildSupplierMessage(contact.Name, attention, whatsapp, s.report.FallbackVendor); ok {
			entry.Items = msg.Items
			entry.Message = msg.Message
			entry.WhatsAppURL = wa.Link(contact.Phone, msg.Message)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// TrendRows builds the per-day before/after tables for the window.
func (s *StockService) TrendRows(ctx context.Context, start, end domain.DayKey) (map[domain.DayKey][]domain.ItemRow, error) {
	records, err := s.submissions(ctx)
	if err != nil {
		return nil, err
	}

	daily := opname.LatestPerDay(records, s.cols)

	return opname.BuildRangeRows(daily, s.cols, start, end), nil
}

// Report summarizes the submissions inside the window. A window with no
// parseable submissions yields the no-data wording, not an error.
func (s *StockService) Report(ctx context.Context, start, end domain.DayKey) (*TrendReport, error) {
	records, err := s.submissions(ctx)
	if err != nil {
		return nil, err
	}

	inRange := opname.FilterByRange(records, s.cols, start, end)
	if len(inRange) == 0 {
		return &TrendReport{Text: noDataMessage, Empty: true}, nil
	}

	text, err := s.composer.Summarize(ctx, summary.Digest(inRange, s.cols), start.String(), end.String())
	if err != nil {
		return nil, err
	}

	return &TrendReport{
		Text:        text,
		WhatsAppURL: wa.Link(s.report.WhatsAppTarget, text),
	}, nil
}

// RefreshCache drops every cached source table so the next request hits the
// spreadsheet again. Backs the UI's refresh action.
func (s *StockService) RefreshCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *StockService) submissions(ctx context.Context) ([]domain.StockRecord, error) {
	table, err := s.fetchTable(ctx, s.sheets.FormRange)
	if err != nil {
		return nil, err
	}

	return opname.Normalize(table, s.cols), nil
}

func (s *StockService) itemsAndSuppliers(ctx context.Context) ([]domain.CurrentStockItem, []domain.SupplierContact, error) {
	var (
		items     []domain.CurrentStockItem
		suppliers []domain.SupplierContact
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		table, err := s.fetchTable(gctx, s.sheets.ProcessingRange)
		if err != nil {
			return err
		}
		items = opname.ParseProcessingTable(table)
		return nil
	})
	g.Go(func() error {
		table, err := s.fetchTable(gctx, s.sheets.SupplierRange)
		if err != nil {
			return err
		}
		suppliers = opname.ParseSupplierTable(table)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return items, suppliers, nil
}

func (s *StockService) fetchTable(ctx context.Context, a1Range string) (domain.Table, error) {
	if table, ok, err := s.cache.Get(ctx, a1Range); err == nil && ok {
		return table, nil
	} else if err != nil {
		log.Warn().Err(err).Str("range", a1Range).Msg("table cache get failed")
	}

	table, err := s.provider.ReadRange(ctx, a1Range)
	if err != nil {
		return domain.Table{}, err
	}

	if err := s.cache.Set(ctx, a1Range, table); err != nil {
		log.Warn().Err(err).Str("range", a1Range).Msg("table cache set failed")
	}

	return table, nil
}

func phoneFor(vendor string, whatsapp []domain.SupplierContact) string {
	for _, s := range whatsapp {
		if s.Name == vendor {
			return s.Phone
		}
	}

	return ""
}
