package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-nft-ledger/internal/domain"
	"github.com/feral-file/ff-nft-ledger/internal/logger"
	"github.com/feral-file/ff-nft-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the ledger tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&schema.Collection{},
		&schema.Token{},
		&schema.Balance{},
		&schema.LedgerEvent{},
		&schema.WebhookClient{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, the defaults of NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Writers serialize on the collection row, so a small pool is enough.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 10
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// CreateCollection persists a collection if absent and returns the stored collection
func (s *pgStore) CreateCollection(ctx context.Context, collection *domain.Collection) (*domain.Collection, error) {
	row := collectionToSchema(collection)
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	stored, err := s.GetCollection(ctx, collection.Contract)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("collection %s not found after create", collection.Contract)
	}
	return stored, nil
}

// GetCollection retrieves a collection by contract address
func (s *pgStore) GetCollection(ctx context.Context, contract string) (*domain.Collection, error) {
	return getCollection(s.db.WithContext(ctx), contract)
}

// GetToken retrieves a token by contract and token id
func (s *pgStore) GetToken(ctx context.Context, contract string, tokenID uint64) (*domain.Token, error) {
	return getToken(s.db.WithContext(ctx), contract, tokenID)
}

// GetBalance returns the number of tokens owned by an address
func (s *pgStore) GetBalance(ctx context.Context, contract string, owner string) (uint64, error) {
	var balance schema.Balance
	err := s.db.WithContext(ctx).
		Where("contract = ? AND owner_address = ?", contract, owner).
		First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return uint64(balance.Quantity), nil //nolint:gosec,G115
}

// GetTokensByOwner retrieves the tokens owned by an address ordered by token id
func (s *pgStore) GetTokensByOwner(ctx context.Context, contract string, owner string, limit int, offset uint64) ([]*domain.Token, uint64, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.Token{}).
		Where("contract = ? AND owner = ?", contract, owner).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var rows []schema.Token
	q := query.Order("token_number::numeric ASC").Offset(int(offset)) //nolint:gosec,G115
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get tokens by owner: %w", err)
	}

	tokens := make([]*domain.Token, 0, len(rows))
	for i := range rows {
		t, err := tokenFromSchema(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		tokens = append(tokens, t)
	}
	return tokens, uint64(total), nil //nolint:gosec,G115
}

// GetEvents retrieves journal entries ordered by sequence
func (s *pgStore) GetEvents(ctx context.Context, filter EventQueryFilter) ([]*domain.LedgerEvent, uint64, error) {
	query := s.db.WithContext(ctx).
		Model(&schema.LedgerEvent{}).
		Where("contract = ?", filter.Contract)

	if filter.TokenID != nil {
		query = query.Where("token_number = ?", strconv.FormatUint(*filter.TokenID, 10))
	}
	if filter.Address != nil {
		addr := *filter.Address
		query = query.Where("from_address = ? OR to_address = ? OR approved_address = ? OR caller = ?", addr, addr, addr, addr)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	var rows []schema.LedgerEvent
	q := query.Order("sequence ASC").Offset(int(filter.Offset)) //nolint:gosec,G115
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get events: %w", err)
	}

	events := make([]*domain.LedgerEvent, 0, len(rows))
	for i := range rows {
		e, err := eventFromSchema(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, uint64(total), nil //nolint:gosec,G115
}

// WithTx runs fn inside a database transaction
func (s *pgStore) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgTx{db: tx})
	})
}

// CreateWebhookClient creates a new webhook client
func (s *pgStore) CreateWebhookClient(ctx context.Context, input CreateWebhookClientInput) (*schema.WebhookClient, error) {
	now := time.Now()
	client := &schema.WebhookClient{
		ClientID:         input.ClientID,
		WebhookURL:       input.WebhookURL,
		WebhookSecret:    input.WebhookSecret,
		EventFilters:     input.EventFilters,
		IsActive:         input.IsActive,
		RetryMaxAttempts: input.RetryMaxAttempts,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create webhook client: %w", err)
	}
	return client, nil
}

// GetActiveWebhookClientsByEventType retrieves active clients subscribed to the event type or to "*"
func (s *pgStore) GetActiveWebhookClientsByEventType(ctx context.Context, eventType string) ([]*schema.WebhookClient, error) {
	var clients []*schema.WebhookClient

	// JSONB containment: the filter array holds the event type or the wildcard
	err := s.db.WithContext(ctx).
		Where("is_active").
		Where("event_filters @> ?::jsonb OR event_filters @> ?::jsonb",
			fmt.Sprintf(`[%q]`, eventType),
			`["*"]`).
		Order("id ASC").
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook clients by event type: %w", err)
	}

	return clients, nil
}

type pgTx struct {
	db *gorm.DB
}

// LockCollection selects the collection row FOR UPDATE
func (t *pgTx) LockCollection(ctx context.Context, contract string) (*domain.Collection, error) {
	return getCollection(t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), contract)
}

// GetToken retrieves a token within the transaction
func (t *pgTx) GetToken(ctx context.Context, contract string, tokenID uint64) (*domain.Token, error) {
	return getToken(t.db.WithContext(ctx), contract, tokenID)
}

// CreateToken inserts a token, credits its owner and increments total supply
func (t *pgTx) CreateToken(ctx context.Context, token *domain.Token) error {
	db := t.db.WithContext(ctx)

	// 1. Bump the supply; the guard keeps total_supply <= max_supply even without a prior check
	res := db.Model(&schema.Collection{}).
		Where("contract = ? AND total_supply < max_supply", token.Contract).
		Updates(map[string]any{
			"total_supply": gorm.Expr("total_supply + 1"),
			"updated_at":   token.MintedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to increment total supply: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to create token: %w", domain.ErrSupplyExceeded)
	}

	// 2. Insert the token; the unique index rejects duplicates
	row := tokenToSchema(token)
	res = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contract"}, {Name: "token_number"}},
		DoNothing: true,
	}).Create(&row)
	if res.Error != nil {
		return fmt.Errorf("failed to create token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to create token: %w", domain.ErrAlreadyMinted)
	}

	// 3. Credit the owner
	return creditBalance(db, token.Contract, token.Owner)
}

// UpdateOwner moves a token between owners and clears its approval
func (t *pgTx) UpdateOwner(ctx context.Context, token *domain.Token, from string, to string) error {
	db := t.db.WithContext(ctx)

	// 1. Update the token row, only if it is still owned by from
	res := db.Model(&schema.Token{}).
		Where("contract = ? AND token_number = ? AND owner = ?",
			token.Contract, strconv.FormatUint(token.TokenID, 10), from).
		Updates(map[string]any{
			"owner":      to,
			"approved":   nil,
			"updated_at": token.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update token owner: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update token owner: %w", domain.ErrNonexistentToken)
	}

	// 2. Debit the sender and drop the row when it reaches zero
	res = db.Model(&schema.Balance{}).
		Where("contract = ? AND owner_address = ? AND quantity > 0", token.Contract, from).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - 1"),
			"updated_at": token.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update sender balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		logger.WarnCtx(ctx, "Sender balance not found",
			zap.String("contract", token.Contract),
			zap.String("owner_address", from))
	}
	if err := db.Where("contract = ? AND owner_address = ? AND quantity = 0", token.Contract, from).
		Delete(&schema.Balance{}).Error; err != nil {
		return fmt.Errorf("failed to delete zero balance: %w", err)
	}

	// 3. Credit the receiver
	return creditBalance(db, token.Contract, to)
}

// UpdateApproval sets or clears the approved address of a token
func (t *pgTx) UpdateApproval(ctx context.Context, token *domain.Token, approved *string) error {
	res := t.db.WithContext(ctx).Model(&schema.Token{}).
		Where("contract = ? AND token_number = ?", token.Contract, strconv.FormatUint(token.TokenID, 10)).
		Updates(map[string]any{
			"approved":   approved,
			"updated_at": token.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update approval: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update approval: %w", domain.ErrNonexistentToken)
	}
	return nil
}

// AppendEvent journals an event and advances the collection's event sequence
func (t *pgTx) AppendEvent(ctx context.Context, event *domain.LedgerEvent) error {
	db := t.db.WithContext(ctx)

	res := db.Model(&schema.Collection{}).
		Where("contract = ? AND event_seq = ?", event.Contract, int64(event.Sequence-1)). //nolint:gosec,G115
		Updates(map[string]any{
			"event_seq":  int64(event.Sequence), //nolint:gosec,G115
			"updated_at": event.Timestamp,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to advance event sequence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to append event: sequence %d is out of order", event.Sequence)
	}

	row, err := eventToSchema(event)
	if err != nil {
		return err
	}
	if err := db.Create(row).Error; err != nil {
		return fmt.Errorf("failed to create ledger event: %w", err)
	}
	return nil
}

func getCollection(db *gorm.DB, contract string) (*domain.Collection, error) {
	var row schema.Collection
	err := db.Where("contract = ?", contract).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return collectionFromSchema(&row), nil
}

func getToken(db *gorm.DB, contract string, tokenID uint64) (*domain.Token, error) {
	var row schema.Token
	err := db.Where("contract = ? AND token_number = ?", contract, strconv.FormatUint(tokenID, 10)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return tokenFromSchema(&row)
}

func creditBalance(db *gorm.DB, contract string, owner string) error {
	now := time.Now()
	balance := schema.Balance{
		Contract:     contract,
		OwnerAddress: owner,
		Quantity:     1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "contract"}, {Name: "owner_address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("balances.quantity + 1"),
			"updated_at": now,
		}),
	}).Create(&balance).Error
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	return nil
}

func collectionToSchema(c *domain.Collection) schema.Collection {
	return schema.Collection{
		Contract:    c.Contract,
		Chain:       string(c.Chain),
		Name:        c.Name,
		Symbol:      c.Symbol,
		MaxSupply:   int64(c.MaxSupply),   //nolint:gosec,G115
		TotalSupply: int64(c.TotalSupply), //nolint:gosec,G115
		Admin:       c.Admin,
		BaseURI:     c.BaseURI,
		URISuffix:   c.URISuffix,
		EventSeq:    int64(c.EventSeq), //nolint:gosec,G115
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.CreatedAt,
	}
}

func collectionFromSchema(row *schema.Collection) *domain.Collection {
	return &domain.Collection{
		Contract:    row.Contract,
		Chain:       domain.Chain(row.Chain),
		Name:        row.Name,
		Symbol:      row.Symbol,
		MaxSupply:   uint64(row.MaxSupply),   //nolint:gosec,G115
		TotalSupply: uint64(row.TotalSupply), //nolint:gosec,G115
		Admin:       row.Admin,
		BaseURI:     row.BaseURI,
		URISuffix:   row.URISuffix,
		EventSeq:    uint64(row.EventSeq), //nolint:gosec,G115
		CreatedAt:   row.CreatedAt,
	}
}

func tokenToSchema(t *domain.Token) schema.Token {
	return schema.Token{
		Contract:    t.Contract,
		TokenNumber: strconv.FormatUint(t.TokenID, 10),
		Owner:       t.Owner,
		Approved:    t.Approved,
		MintedAt:    t.MintedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tokenFromSchema(row *schema.Token) (*domain.Token, error) {
	id, err := strconv.ParseUint(row.TokenNumber, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token number %q: %w", row.TokenNumber, err)
	}
	return &domain.Token{
		Contract:  row.Contract,
		TokenID:   id,
		Owner:     row.Owner,
		Approved:  row.Approved,
		MintedAt:  row.MintedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func eventToSchema(e *domain.LedgerEvent) (*schema.LedgerEvent, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return &schema.LedgerEvent{
		EventID:         e.EventID,
		Contract:        e.Contract,
		Sequence:        int64(e.Sequence), //nolint:gosec,G115
		EventType:       schema.LedgerEventType(e.EventType),
		TokenNumber:     strconv.FormatUint(e.TokenID, 10),
		Caller:          e.Caller,
		FromAddress:     optional(e.From),
		ToAddress:       optional(e.To),
		ApprovedAddress: optional(e.Approved),
		TxHash:          e.TxHash,
		Timestamp:       e.Timestamp,
		Payload:         payload,
	}, nil
}

func eventFromSchema(row *schema.LedgerEvent) (*domain.LedgerEvent, error) {
	var e domain.LedgerEvent
	if err := json.Unmarshal(row.Payload, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event payload %s: %w", row.EventID, err)
	}
	return &e, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
