package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/authgate/authgate/internal/model"
)

// AccountRepo persists accounts in the 'users' table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const mysqlErrDuplicateEntry = 1062

// CreateAccount inserts the account and returns its id. The caller must
// have normalized the email; a duplicate maps to ErrEmailExists.
func (r *AccountRepo) CreateAccount(ctx context.Context, acc *model.Account) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (full_name, email, password_hash) VALUES (?,?,?)",
		acc.FullName, acc.Email, acc.PasswordHash)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindAccountByEmail fetches an account by its normalized (lower-cased) email.
func (r *AccountRepo) FindAccountByEmail(ctx context.Context, email string) (model.Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id, full_name, email, password_hash, created_at, updated_at FROM users WHERE email=? LIMIT 1",
		email))
}

// FindAccountByID fetches an account by id.
func (r *AccountRepo) FindAccountByID(ctx context.Context, id uint64) (model.Account, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id, full_name, email, password_hash, created_at, updated_at FROM users WHERE id=? LIMIT 1",
		id))
}

func (r *AccountRepo) scanOne(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}
