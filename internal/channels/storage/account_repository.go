package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gomarketsync/internal/channels"
)

// AccountRepository -- postgres-реализация channels.AccountStore.
// Карты credentials/settings/identifiers лежат в jsonb-колонках.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetAccount(ctx context.Context, channel channels.Channel, name string) (*channels.Account, error) {
	query := `
	SELECT id, name, channel, credentials, settings, identifiers, active
	FROM sync.channel_accounts
	WHERE channel = $1 AND name = $2`

	row := r.db.QueryRowContext(ctx, query, channel.String(), name)
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %q not found for channel %q", name, channel)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) ListActive(ctx context.Context) ([]*channels.Account, error) {
	query := `
	SELECT id, name, channel, credentials, settings, identifiers, active
	FROM sync.channel_accounts
	WHERE active = TRUE
	ORDER BY channel, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*channels.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// ReplaceIdentifiers заменяет карту идентификаторов одним обновлением.
func (r *AccountRepository) ReplaceIdentifiers(ctx context.Context, accountID int, identifiers map[string]string) error {
	payload, err := json.Marshal(identifiers)
	if err != nil {
		return fmt.Errorf("failed to marshal identifiers: %w", err)
	}

	query := `
	UPDATE sync.channel_accounts
	SET identifiers = $1, updated_at = NOW()
	WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, payload, accountID)
	if err != nil {
		return fmt.Errorf("failed to replace identifiers: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("account %d not found", accountID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*channels.Account, error) {
	var (
		account                            channels.Account
		channelName                        string
		credentials, settings, identifiers []byte
	)
	err := row.Scan(&account.ID, &account.Name, &channelName, &credentials, &settings, &identifiers, &account.Active)
	if err != nil {
		return nil, err
	}

	channel, err := channels.ParseChannel(channelName)
	if err != nil {
		return nil, err
	}
	account.Channel = channel

	if err := unmarshalMap(credentials, &account.Credentials); err != nil {
		return nil, fmt.Errorf("invalid credentials payload: %w", err)
	}
	if err := unmarshalMap(settings, &account.Settings); err != nil {
		return nil, fmt.Errorf("invalid settings payload: %w", err)
	}
	if err := unmarshalMap(identifiers, &account.Identifiers); err != nil {
		return nil, fmt.Errorf("invalid identifiers payload: %w", err)
	}
	return &account, nil
}

func unmarshalMap(data []byte, target *map[string]string) error {
	if len(data) == 0 {
		*target = map[string]string{}
		return nil
	}
	return json.Unmarshal(data, target)
}
