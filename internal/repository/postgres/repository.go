package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"taskmail/internal/model"
	"taskmail/internal/repository"
)

type PostgresEmailRepository struct {
	db *sqlx.DB
}

func NewPostgresEmailRepository(db *sqlx.DB) *PostgresEmailRepository {
	return &PostgresEmailRepository{db: db}
}

const emailColumns = `id, owner_id, sender, subject, body, recipient, message_id, signature, summary, is_spam, is_archived, created_at, updated_at`

func (r *PostgresEmailRepository) Create(ctx context.Context, email *model.Email) error {
	query := `
		INSERT INTO emails (` + emailColumns + `)
		VALUES (:id, :owner_id, :sender, :subject, :body, :recipient, :message_id, :signature, :summary, :is_spam, :is_archived, :created_at, :updated_at)`
	_, err := r.db.NamedExecContext(ctx, query, email)
	return err
}

func (r *PostgresEmailRepository) FindByID(ctx context.Context, id string) (*model.Email, error) {
	email := &model.Email{}
	query := `SELECT ` + emailColumns + ` FROM emails WHERE id = $1`
	if err := r.db.GetContext(ctx, email, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindByMessageID(ctx context.Context, ownerID, messageID string) (*model.Email, error) {
	email := &model.Email{}
	query := `SELECT ` + emailColumns + ` FROM emails WHERE owner_id = $1 AND message_id = $2 LIMIT 1`
	if err := r.db.GetContext(ctx, email, query, ownerID, messageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindBySignature(ctx context.Context, ownerID, signature string) (*model.Email, error) {
	email := &model.Email{}
	query := `SELECT ` + emailColumns + ` FROM emails WHERE owner_id = $1 AND signature = $2 LIMIT 1`
	if err := r.db.GetContext(ctx, email, query, ownerID, signature); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return email, nil
}

func (r *PostgresEmailRepository) FindRecent(ctx context.Context, ownerID string, limit int) ([]*model.Email, error) {
	var emails []*model.Email
	query := `SELECT ` + emailColumns + ` FROM emails WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.SelectContext(ctx, &emails, query, ownerID, limit); err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *PostgresEmailRepository) FindSpam(ctx context.Context, ownerID string) ([]*model.Email, error) {
	var emails []*model.Email
	query := `SELECT ` + emailColumns + ` FROM emails WHERE owner_id = $1 AND is_spam = TRUE ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &emails, query, ownerID); err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *PostgresEmailRepository) Update(ctx context.Context, email *model.Email) error {
	query := `
		UPDATE emails SET sender=:sender, subject=:subject, body=:body, recipient=:recipient,
		message_id=:message_id, signature=:signature, summary=:summary, is_spam=:is_spam,
		is_archived=:is_archived, updated_at=NOW() WHERE id=:id`
	_, err := r.db.NamedExecContext(ctx, query, email)
	return err
}

// Postgres Task repository implementation
type PostgresTaskRepository struct {
	db *sqlx.DB
}

func NewPostgresTaskRepository(db *sqlx.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

const taskColumns = `id, email_id, owner_id, sender, subject, context, summary, actions, status, action_taken, created_at, updated_at`

func (r *PostgresTaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.EmailID, task.OwnerID, task.Sender, task.Subject,
		task.Context, task.Summary, pq.Array(task.Actions), task.Status,
		task.ActionTaken, task.CreatedAt, task.UpdatedAt)
	return err
}

func (r *PostgresTaskRepository) scanTask(row *sqlx.Row) (*model.Task, error) {
	task := &model.Task{}
	err := row.Scan(
		&task.ID, &task.EmailID, &task.OwnerID, &task.Sender, &task.Subject,
		&task.Context, &task.Summary, pq.Array(&task.Actions), &task.Status,
		&task.ActionTaken, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *PostgresTaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return r.scanTask(r.db.QueryRowxContext(ctx, query, id))
}

func (r *PostgresTaskRepository) FindByEmailID(ctx context.Context, emailID string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE email_id = $1 LIMIT 1`
	return r.scanTask(r.db.QueryRowxContext(ctx, query, emailID))
}

func (r *PostgresTaskRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryxContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task := &model.Task{}
		err := rows.Scan(
			&task.ID, &task.EmailID, &task.OwnerID, &task.Sender, &task.Subject,
			&task.Context, &task.Summary, pq.Array(&task.Actions), &task.Status,
			&task.ActionTaken, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `
		UPDATE tasks SET sender=$1, subject=$2, context=$3, summary=$4, actions=$5,
		status=$6, action_taken=$7, updated_at=NOW() WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		task.Sender, task.Subject, task.Context, task.Summary,
		pq.Array(task.Actions), task.Status, task.ActionTaken, task.ID)
	return err
}

// Postgres Webhook config repository implementation
type PostgresWebhookConfigRepository struct {
	db *sqlx.DB
}

func NewPostgresWebhookConfigRepository(db *sqlx.DB) *PostgresWebhookConfigRepository {
	return &PostgresWebhookConfigRepository{db: db}
}

const webhookColumns = `id, api_key, allowed_ips, active, created_at, updated_at`

func (r *PostgresWebhookConfigRepository) scanConfig(row *sqlx.Row) (*model.WebhookSecurityConfig, error) {
	config := &model.WebhookSecurityConfig{}
	err := row.Scan(
		&config.ID, &config.APIKey, pq.Array(&config.AllowedIPs),
		&config.Active, &config.CreatedAt, &config.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return config, nil
}

func (r *PostgresWebhookConfigRepository) FindActive(ctx context.Context) (*model.WebhookSecurityConfig, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_configs WHERE active = TRUE ORDER BY created_at DESC LIMIT 1`
	return r.scanConfig(r.db.QueryRowxContext(ctx, query))
}

func (r *PostgresWebhookConfigRepository) FindActiveByAPIKey(ctx context.Context, apiKey string) (*model.WebhookSecurityConfig, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_configs WHERE active = TRUE AND api_key = $1 ORDER BY created_at DESC LIMIT 1`
	return r.scanConfig(r.db.QueryRowxContext(ctx, query, apiKey))
}

func (r *PostgresWebhookConfigRepository) Save(ctx context.Context, config *model.WebhookSecurityConfig) error {
	query := `
		INSERT INTO webhook_configs (` + webhookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			api_key = EXCLUDED.api_key,
			allowed_ips = EXCLUDED.allowed_ips,
			active = EXCLUDED.active,
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, query,
		config.ID, config.APIKey, pq.Array(config.AllowedIPs),
		config.Active, config.CreatedAt, config.UpdatedAt)
	return err
}

// InitializeDatabase creates the tables if they do not exist.
func InitializeDatabase(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS emails (
		id UUID PRIMARY KEY,
		owner_id TEXT NOT NULL,
		sender TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		recipient TEXT NOT NULL DEFAULT '',
		message_id TEXT NOT NULL DEFAULT '',
		signature TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		is_spam BOOLEAN NOT NULL DEFAULT FALSE,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_emails_owner_created ON emails (owner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_emails_owner_signature ON emails (owner_id, signature);
	CREATE INDEX IF NOT EXISTS idx_emails_owner_message_id ON emails (owner_id, message_id);

	CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		email_id UUID NOT NULL REFERENCES emails(id),
		owner_id TEXT NOT NULL,
		sender TEXT NOT NULL DEFAULT '',
		subject TEXT NOT NULL DEFAULT '',
		context TEXT NOT NULL DEFAULT '',
		summary TEXT NOT NULL DEFAULT '',
		actions TEXT[] NOT NULL DEFAULT '{}',
		status TEXT NOT NULL DEFAULT 'pending',
		action_taken TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_tasks_owner_created ON tasks (owner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_tasks_email_id ON tasks (email_id);

	CREATE TABLE IF NOT EXISTS webhook_configs (
		id UUID PRIMARY KEY,
		api_key TEXT NOT NULL,
		allowed_ips TEXT[] NOT NULL DEFAULT '{}',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}
