package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/authgate/authgate/internal/model"
)

// RoleRepo persists roles and role assignments.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// FindRoleByName fetches a role by its exact name.
func (r *RoleRepo) FindRoleByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE name=? LIMIT 1", name).
		Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Role{}, ErrNotFound
	}
	return role, err
}

// FindRoleByID fetches a role by id.
func (r *RoleRepo) FindRoleByID(ctx context.Context, id uint64) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM roles WHERE id=? LIMIT 1", id).
		Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Role{}, ErrNotFound
	}
	return role, err
}

// CreateRole inserts a role. When a concurrent registration already created
// the same role (unique name key), the existing row is returned instead, so
// the bootstrap policy converges under races.
func (r *RoleRepo) CreateRole(ctx context.Context, name string) (model.Role, error) {
	res, err := r.DB.ExecContext(ctx, "INSERT INTO roles (name) VALUES (?)", name)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return r.FindRoleByName(ctx, name)
		}
		return model.Role{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Role{}, err
	}
	return model.Role{ID: uint64(id), Name: name}, nil
}

// FindRoleAssignment returns the account's role assignment. The first row
// by id is the account's single active assignment; extra rows are tolerated
// in storage but never consulted.
func (r *RoleRepo) FindRoleAssignment(ctx context.Context, accountID uint64) (model.RoleAssignment, error) {
	var ra model.RoleAssignment
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, role_id FROM user_roles WHERE user_id=? ORDER BY id LIMIT 1",
		accountID).
		Scan(&ra.ID, &ra.AccountID, &ra.RoleID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RoleAssignment{}, ErrNotFound
	}
	return ra, err
}

// CreateRoleAssignment links an account to a role.
func (r *RoleRepo) CreateRoleAssignment(ctx context.Context, accountID, roleID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role_id) VALUES (?,?)", accountID, roleID)
	return err
}
