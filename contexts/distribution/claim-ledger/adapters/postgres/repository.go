package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"faucet/contexts/distribution/claim-ledger/domain/entities"
	"faucet/contexts/distribution/claim-ledger/ports"
	"faucet/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Single-row config table key; one ledger instance per deployment.
const configRowID = "ledger"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates the faucet tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&claimRecordModel{},
		&ledgerEventModel{},
		&ledgerConfigModel{},
	)
}

func (r *Repository) HasClaimed(ctx context.Context, account entities.Address) (bool, error) {
	var row claimRecordModel
	err := r.db.WithContext(ctx).
		Where("account = ?", entities.NormalizeAddress(string(account)).String()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, r.logError("ledger_repo_has_claimed_failed", err,
			"account", entities.NormalizeAddress(string(account)).String(),
		)
	}
	return row.Claimed, nil
}

func (r *Repository) SetClaimed(ctx context.Context, account entities.Address, at time.Time) error {
	return r.upsertClaim(ctx, account, true, at, "ledger_repo_set_claimed_failed")
}

func (r *Repository) ClearClaimed(ctx context.Context, account entities.Address, at time.Time) error {
	return r.upsertClaim(ctx, account, false, at, "ledger_repo_clear_claimed_failed")
}

func (r *Repository) upsertClaim(ctx context.Context, account entities.Address, claimed bool, at time.Time, failEvent string) error {
	row := claimRecordModel{
		Account:   entities.NormalizeAddress(string(account)).String(),
		Claimed:   claimed,
		UpdatedAt: at.UTC(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account"}},
		DoUpdates: clause.AssignmentColumns([]string{"claimed", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return r.logError(failEvent, err,
			"account", row.Account,
			"claimed", claimed,
		)
	}
	return nil
}

func (r *Repository) SaveConfig(ctx context.Context, config entities.LedgerConfig) error {
	amount, err := storedAmount(config.Amount)
	if err != nil {
		return r.logError("ledger_repo_save_config_failed", err,
			"asset", config.Asset.String(),
		)
	}
	row := ledgerConfigModel{
		ID:        configRowID,
		Owner:     config.Owner.String(),
		Asset:     config.Asset.String(),
		Amount:    amount,
		Paused:    config.Paused,
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"owner", "asset", "amount", "paused", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return r.logError("ledger_repo_save_config_failed", err,
			"asset", row.Asset,
			"amount", row.Amount,
			"paused", row.Paused,
		)
	}
	return nil
}

func (r *Repository) LoadConfig(ctx context.Context) (entities.LedgerConfig, bool, error) {
	var row ledgerConfigModel
	err := r.db.WithContext(ctx).
		Where("id = ?", configRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.LedgerConfig{}, false, nil
		}
		return entities.LedgerConfig{}, false, r.logError("ledger_repo_load_config_failed", err)
	}
	return entities.LedgerConfig{
		Owner:  entities.NormalizeAddress(row.Owner),
		Asset:  entities.NormalizeAddress(row.Asset),
		Amount: uint64(row.Amount),
		Paused: row.Paused,
	}, true, nil
}

func (r *Repository) AppendEvent(ctx context.Context, event entities.LedgerEvent) error {
	amount, err := storedAmount(event.Amount)
	if err != nil {
		return r.logError("ledger_repo_append_event_failed", err,
			"event_id", strings.TrimSpace(event.ID),
			"event_type", string(event.Type),
		)
	}
	row := ledgerEventModel{
		EventID:    strings.TrimSpace(event.ID),
		EventType:  string(event.Type),
		Account:    event.Account.String(),
		Asset:      event.Asset.String(),
		Amount:     amount,
		Status:     outbox.StatusPending,
		OccurredAt: event.OccurredAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return r.logError("ledger_repo_append_event_failed", err,
			"event_id", row.EventID,
			"event_type", row.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingEvents(ctx context.Context, limit int) ([]entities.LedgerEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []ledgerEventModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("occurred_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("ledger_repo_list_pending_events_failed", err,
			"limit", limit,
		)
	}
	events := make([]entities.LedgerEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toEntity())
	}
	return events, nil
}

func (r *Repository) MarkEventPublished(ctx context.Context, eventID string, publishedAt time.Time) error {
	timestamp := publishedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&ledgerEventModel{}).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": &timestamp,
		})
	if result.Error != nil {
		return r.logError("ledger_repo_mark_event_published_failed", result.Error,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	if result.RowsAffected == 0 {
		r.logWarn("ledger_repo_mark_event_published_not_found",
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "distribution/claim-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ledger repository operation failed", fields...)
	return err
}

func (r *Repository) logWarn(event string, attrs ...any) {
	fields := make([]any, 0, len(attrs)+6)
	fields = append(fields,
		"event", event,
		"module", "distribution/claim-ledger",
		"layer", "adapter",
	)
	fields = append(fields, attrs...)
	r.logger.Warn("ledger repository warning", fields...)
}

type claimRecordModel struct {
	Account   string    `gorm:"column:account;primaryKey"`
	Claimed   bool      `gorm:"column:claimed"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (claimRecordModel) TableName() string {
	return "faucet_claims"
}

type ledgerEventModel struct {
	EventID     string     `gorm:"column:event_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Account     string     `gorm:"column:account"`
	Asset       string     `gorm:"column:asset"`
	Amount      int64      `gorm:"column:amount"`
	Status      string     `gorm:"column:status"`
	OccurredAt  time.Time  `gorm:"column:occurred_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (ledgerEventModel) TableName() string {
	return "faucet_ledger_events"
}

func (m ledgerEventModel) toEntity() entities.LedgerEvent {
	return entities.LedgerEvent{
		ID:         m.EventID,
		Type:       entities.EventType(m.EventType),
		Account:    entities.NormalizeAddress(m.Account),
		Asset:      entities.NormalizeAddress(m.Asset),
		Amount:     uint64(m.Amount),
		OccurredAt: m.OccurredAt.UTC(),
	}
}

type ledgerConfigModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Owner     string    `gorm:"column:owner"`
	Asset     string    `gorm:"column:asset"`
	Amount    int64     `gorm:"column:amount"`
	Paused    bool      `gorm:"column:paused"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ledgerConfigModel) TableName() string {
	return "faucet_ledger_config"
}

// storedAmount rejects amounts that would flip sign in the bigint column
// instead of silently truncating them.
func storedAmount(amount uint64) (int64, error) {
	if amount > math.MaxInt64 {
		return 0, fmt.Errorf("amount %d exceeds storable maximum %d", amount, int64(math.MaxInt64))
	}
	return int64(amount), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ClaimRegistry = (*Repository)(nil)
var _ ports.ConfigStore = (*Repository)(nil)
var _ ports.EventOutbox = (*Repository)(nil)
