package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

var errExportDisabled = errors.New("export storage is not configured")

// HistoryLimit caps the number of exports returned by History.
const HistoryLimit = 20

// ExportResult locates an uploaded ledger snapshot.
type ExportResult struct {
	Key string
	URL string
}

// ExportService renders an owner's ledger to CSV and stores it in object
// storage behind a presigned download link.
type ExportService struct {
	repomanager repomanager.RepositoryManager
	store       objectstore.Store
	urlValidity time.Duration
	now         func() time.Time
	log         logging.Logger
}

// NewExportService builds the service. A nil store disables exports.
func NewExportService(m repomanager.RepositoryManager, store objectstore.Store, urlValidity time.Duration, log logging.Logger) *ExportService {
	return &ExportService{
		repomanager: m,
		store:       store,
		urlValidity: urlValidity,
		now:         time.Now,
		log:         log.With("module", "export"),
	}
}

// StorageKey returns a fresh object key for ownerID's export made at t.
func StorageKey(ownerID string, t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%s.csv", ownerID, t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ExportService) Export(ctx context.Context, ownerID string) (*ExportResult, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}
	if s.store == nil {
		return nil, s.internal(ctx, "export", errExportDisabled)
	}

	items, err := s.repomanager.Transactions(s.repomanager.DB()).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.internal(ctx, "list transactions", err)
	}

	body, err := renderCSV(items)
	if err != nil {
		return nil, s.internal(ctx, "render csv", err)
	}

	key := StorageKey(ownerID, s.now())
	if err := s.store.Put(ctx, key, "text/csv", body); err != nil {
		return nil, s.internal(ctx, "upload export", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.urlValidity)
	if err != nil {
		return nil, s.internal(ctx, "presign export", err)
	}

	// the object is already stored; a lost history row is not worth failing the call
	record := &models.Export{OwnerID: ownerID, StorageKey: key, Rows: len(items)}
	if _, err := s.repomanager.Exports(s.repomanager.DB()).Create(ctx, record); err != nil {
		s.log.Warn(ctx, "export history not recorded", "user_id", ownerID, "key", key, "error", err)
	}

	s.log.Info(ctx, "ledger exported", "user_id", ownerID, "key", key, "rows", len(items))
	return &ExportResult{Key: key, URL: url}, nil
}

// History lists ownerID's most recent exports, newest first.
func (s *ExportService) History(ctx context.Context, ownerID string) ([]*models.Export, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}

	items, err := s.repomanager.Exports(s.repomanager.DB()).ListByOwner(ctx, ownerID, HistoryLimit)
	if err != nil {
		return nil, s.internal(ctx, "list exports", err)
	}
	return items, nil
}

func (s *ExportService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

func renderCSV(items []*models.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "title", "amount", "category", "date", "notes"}); err != nil {
		return nil, err
	}
	for _, t := range items {
		if err := w.Write([]string{t.ID, t.Title, t.Amount.String(), t.Category, t.Date, t.Notes}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
