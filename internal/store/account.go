package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/centavo/internal/model"
)

type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func scanAccount(scanner interface{ Scan(...any) error }) (*model.FixedAccount, error) {
	var a model.FixedAccount
	var active int
	err := scanner.Scan(
		&a.ID, &a.UserID, &a.Name, &a.AmountCents, &a.Category,
		&a.DueDay, &active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.IsActive = active != 0
	return &a, nil
}

const accountCols = `id, user_id, name, amount_cents, category, due_day, is_active, created_at, updated_at`

func (s *AccountStore) Create(userID int64, name string, amountCents int64, category string, dueDay int) (*model.FixedAccount, error) {
	result, err := s.db.Exec(
		`INSERT INTO fixed_accounts (user_id, name, amount_cents, category, due_day)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, name, amountCents, category, dueDay,
	)
	if err != nil {
		return nil, fmt.Errorf("insert fixed account: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *AccountStore) GetByID(id, userID int64) (*model.FixedAccount, error) {
	row := s.db.QueryRow(
		`SELECT `+accountCols+` FROM fixed_accounts WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get fixed account: %w", err)
	}
	return a, nil
}

// ListByUser returns all of a user's fixed accounts, active or not.
func (s *AccountStore) ListByUser(userID int64) ([]model.FixedAccount, error) {
	rows, err := s.db.Query(
		`SELECT `+accountCols+` FROM fixed_accounts WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list fixed accounts: %w", err)
	}
	defer rows.Close()
	return scanAccounts(rows)
}

// ListActive returns every active fixed account across all users, in
// insertion order. The notification sweep's load phase.
func (s *AccountStore) ListActive() ([]model.FixedAccount, error) {
	rows, err := s.db.Query(
		`SELECT ` + accountCols + ` FROM fixed_accounts WHERE is_active = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list active fixed accounts: %w", err)
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (s *AccountStore) Update(id, userID int64, name string, amountCents int64, category string, dueDay int) (*model.FixedAccount, error) {
	_, err := s.db.Exec(
		`UPDATE fixed_accounts
		 SET name = ?, amount_cents = ?, category = ?, due_day = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, amountCents, category, dueDay, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update fixed account: %w", err)
	}
	return s.GetByID(id, userID)
}

// SetActive toggles whether the account participates in reminders and
// balance displays. Inactive accounts persist and can be reactivated.
func (s *AccountStore) SetActive(id, userID int64, active bool) (*model.FixedAccount, error) {
	var v int
	if active {
		v = 1
	}
	_, err := s.db.Exec(
		`UPDATE fixed_accounts SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`,
		v, id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("set fixed account active: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *AccountStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM fixed_accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete fixed account: %w", err)
	}
	return nil
}

func scanAccounts(rows *sql.Rows) ([]model.FixedAccount, error) {
	var accounts []model.FixedAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fixed account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}
