package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scottyowen4683/aspiredentaldemo-sub003/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const integrationColumns = `id, org_id, assistant_id, name, provider, direction, status, use_case, endpoint, created_at, updated_at`

func scanIntegration(row pgx.Row) (models.Integration, error) {
	var in models.Integration
	err := row.Scan(&in.ID, &in.OrgID, &in.AssistantID, &in.Name, &in.Provider, &in.Direction, &in.Status, &in.UseCase, &in.Endpoint, &in.CreatedAt, &in.UpdatedAt)
	return in, err
}

// GetCatalog returns the full integration catalog for an organization,
// every status and scope included. Visibility filtering belongs to the
// resolver, not the query.
func (s *Store) GetCatalog(ctx context.Context, orgID string) ([]models.Integration, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+integrationColumns+` FROM integrations WHERE org_id = $1 ORDER BY created_at ASC, id ASC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *Store) ListIntegrations(ctx context.Context, orgID, assistantID, useCase, status string) ([]models.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM integrations`
	var args []any
	var wheres []string
	if orgID != "" {
		args = append(args, orgID)
		wheres = append(wheres, fmt.Sprintf("org_id = $%d", len(args)))
	}
	if assistantID != "" {
		args = append(args, assistantID)
		wheres = append(wheres, fmt.Sprintf("assistant_id = $%d", len(args)))
	}
	if useCase != "" {
		args = append(args, useCase)
		wheres = append(wheres, fmt.Sprintf("use_case = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Integration
	for rows.Next() {
		in, err := scanIntegration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (s *Store) GetIntegration(ctx context.Context, id string) (models.Integration, error) {
	return scanIntegration(s.Pool.QueryRow(ctx, `SELECT `+integrationColumns+` FROM integrations WHERE id = $1`, id))
}

func (s *Store) UpsertIntegration(ctx context.Context, in models.Integration) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO integrations (id, org_id, assistant_id, name, provider, direction, status, use_case, endpoint, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			assistant_id = EXCLUDED.assistant_id,
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			direction = EXCLUDED.direction,
			status = EXCLUDED.status,
			use_case = EXCLUDED.use_case,
			endpoint = EXCLUDED.endpoint,
			updated_at = EXCLUDED.updated_at
	`, in.ID, in.OrgID, in.AssistantID, in.Name, in.Provider, in.Direction, in.Status, in.UseCase, in.Endpoint, in.CreatedAt, in.UpdatedAt)
	return err
}

func (s *Store) SetIntegrationStatus(ctx context.Context, id string, status string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE integrations SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteIntegration(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM integrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateAssistant inserts the assistant together with its default policy row
// in one transaction, so a policy always exists for a live assistant.
func (s *Store) CreateAssistant(ctx context.Context, a models.Assistant) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO assistants (id, org_id, name, channel, created_at)
			VALUES ($1,$2,$3,$4,$5)
		`, a.ID, a.OrgID, a.Name, a.Channel, a.CreatedAt)
		if err != nil {
			return err
		}
		return upsertPolicyTx(ctx, tx, models.DefaultPolicy(a.ID))
	})
}

func (s *Store) GetAssistant(ctx context.Context, id string) (models.Assistant, error) {
	var a models.Assistant
	err := s.Pool.QueryRow(ctx, `SELECT id, org_id, name, channel, created_at FROM assistants WHERE id = $1`, id).
		Scan(&a.ID, &a.OrgID, &a.Name, &a.Channel, &a.CreatedAt)
	return a, err
}

func (s *Store) ListAssistants(ctx context.Context, orgID string) ([]models.Assistant, error) {
	query := `SELECT id, org_id, name, channel, created_at FROM assistants`
	var args []any
	if orgID != "" {
		args = append(args, orgID)
		query += ` WHERE org_id = $1`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assistant
	for rows.Next() {
		var a models.Assistant
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Name, &a.Channel, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetPolicy returns the assistant's integration policy, falling back to the
// documented defaults when no row exists yet.
func (s *Store) GetPolicy(ctx context.Context, assistantID string) (models.AssistantPolicy, error) {
	var (
		p          models.AssistantPolicy
		selections []byte
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT assistant_id, integrations_enabled, use_org_defaults, override_org_settings, selections, updated_at
		FROM assistant_policies WHERE assistant_id = $1
	`, assistantID).Scan(&p.AssistantID, &p.IntegrationsEnabled, &p.UseOrgDefaults, &p.OverrideOrgSettings, &selections, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultPolicy(assistantID), nil
		}
		return models.AssistantPolicy{}, err
	}

	p.Selections = map[string]string{}
	if len(selections) > 0 {
		if err := json.Unmarshal(selections, &p.Selections); err != nil {
			return models.AssistantPolicy{}, fmt.Errorf("decode policy selections: %w", err)
		}
	}
	return p, nil
}

func (s *Store) UpsertPolicy(ctx context.Context, p models.AssistantPolicy) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		return upsertPolicyTx(ctx, tx, p)
	})
}

func upsertPolicyTx(ctx context.Context, tx pgx.Tx, p models.AssistantPolicy) error {
	selections, err := json.Marshal(p.Selections)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO assistant_policies (assistant_id, integrations_enabled, use_org_defaults, override_org_settings, selections, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (assistant_id) DO UPDATE SET
			integrations_enabled = EXCLUDED.integrations_enabled,
			use_org_defaults = EXCLUDED.use_org_defaults,
			override_org_settings = EXCLUDED.override_org_settings,
			selections = EXCLUDED.selections,
			updated_at = EXCLUDED.updated_at
	`, p.AssistantID, p.IntegrationsEnabled, p.UseOrgDefaults, p.OverrideOrgSettings, selections, p.UpdatedAt)
	return err
}

func (s *Store) InsertContactSubmission(ctx context.Context, cs models.ContactSubmission) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, phone, message, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, cs.ID, cs.Name, cs.Email, cs.Phone, cs.Message, cs.Status, cs.CreatedAt)
	return err
}

func (s *Store) ListContactSubmissions(ctx context.Context, limit, offset int) ([]models.ContactSubmission, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, name, email, phone, message, status, created_at
		FROM contact_submissions ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ContactSubmission
	for rows.Next() {
		var cs models.ContactSubmission
		if err := rows.Scan(&cs.ID, &cs.Name, &cs.Email, &cs.Phone, &cs.Message, &cs.Status, &cs.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}

func (s *Store) InsertEventDeliveries(ctx context.Context, deliveries []models.EventDelivery) (int64, error) {
	rows := make([][]any, 0, len(deliveries))
	for _, d := range deliveries {
		rows = append(rows, []any{d.ID, d.AssistantID, d.Event, d.UseCase, d.IntegrationID, d.Source, d.Status, d.Error, d.Detail, d.CreatedAt})
	}
	return s.Pool.CopyFrom(ctx, pgx.Identifier{"event_deliveries"},
		[]string{"id", "assistant_id", "event", "use_case", "integration_id", "source", "status", "error", "detail", "created_at"},
		pgx.CopyFromRows(rows))
}

func (s *Store) ListEventDeliveries(ctx context.Context, assistantID, event string, limit, offset int) ([]models.EventDelivery, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, assistant_id, event, use_case, integration_id, source, status, error, detail, created_at FROM event_deliveries`
	var args []any
	var wheres []string
	if assistantID != "" {
		args = append(args, assistantID)
		wheres = append(wheres, fmt.Sprintf("assistant_id = $%d", len(args)))
	}
	if event != "" {
		args = append(args, event)
		wheres = append(wheres, fmt.Sprintf("event = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EventDelivery
	for rows.Next() {
		var d models.EventDelivery
		if err := rows.Scan(&d.ID, &d.AssistantID, &d.Event, &d.UseCase, &d.IntegrationID, &d.Source, &d.Status, &d.Error, &d.Detail, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Postgres keeps microsecond precision; truncate so round-tripped
// timestamps compare equal.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
