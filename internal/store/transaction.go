package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/centavo/internal/model"
)

type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func scanTransaction(scanner interface{ Scan(...any) error }) (*model.Transaction, error) {
	var tx model.Transaction
	err := scanner.Scan(
		&tx.ID, &tx.UserID, &tx.Name, &tx.AmountCents, &tx.Type,
		&tx.Category, &tx.OccurredAt, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

const transactionCols = `id, user_id, name, amount_cents, type, category, occurred_at, created_at, updated_at`

func (s *TransactionStore) Create(userID int64, name string, amountCents int64, txType, category string, occurredAt time.Time) (*model.Transaction, error) {
	result, err := s.db.Exec(
		`INSERT INTO transactions (user_id, name, amount_cents, type, category, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, amountCents, txType, category, occurredAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *TransactionStore) GetByID(id, userID int64) (*model.Transaction, error) {
	row := s.db.QueryRow(
		`SELECT `+transactionCols+` FROM transactions WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// ListByUserSince returns the user's transactions dated at or after
// since, newest first.
func (s *TransactionStore) ListByUserSince(userID int64, since time.Time) ([]model.Transaction, error) {
	rows, err := s.db.Query(
		`SELECT `+transactionCols+` FROM transactions
		 WHERE user_id = ? AND occurred_at >= ?
		 ORDER BY occurred_at DESC, id DESC`,
		userID, since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func (s *TransactionStore) Update(id, userID int64, name string, amountCents int64, txType, category string, occurredAt time.Time) (*model.Transaction, error) {
	_, err := s.db.Exec(
		`UPDATE transactions
		 SET name = ?, amount_cents = ?, type = ?, category = ?, occurred_at = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		name, amountCents, txType, category, occurredAt.UTC(), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return s.GetByID(id, userID)
}

func (s *TransactionStore) Delete(id, userID int64) error {
	_, err := s.db.Exec(`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
