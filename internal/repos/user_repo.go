package repos

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"bagshop/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, user_id, email, name, phone_number, post_code, address, password_hash, created_at`

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
}

// ByHandle looks a user up by login handle (users.user_id).
func (r *UserRepo) ByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE user_id = ?`, handle)
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
}

func (r *UserRepo) one(ctx context.Context, q string, arg any) (*domain.User, error) {
	var u domain.User
	if err := r.DB.GetContext(ctx, &u, r.DB.Rebind(q), arg); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts u and returns the stored row.
func (r *UserRepo) Create(ctx context.Context, u domain.NewUser) (*domain.User, error) {
	var id int64
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`
		INSERT INTO users(user_id, email, name, phone_number, post_code, address, password_hash, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`),
		u.UserID, strings.ToLower(u.Email), u.Name, u.PhoneNumber, u.PostCode, u.Address, u.Hash, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.ByID(ctx, id)
}

// UpdateProfile applies the non-nil fields of ch to user id.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, ch domain.ProfileChanges) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}
	if ch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, strings.ToLower(*ch.Email))
	}
	if ch.PhoneNumber != nil {
		sets = append(sets, "phone_number = ?")
		args = append(args, *ch.PhoneNumber)
	}
	if ch.PostCode != nil {
		sets = append(sets, "post_code = ?")
		args = append(args, *ch.PostCode)
	}
	if ch.Address != nil {
		sets = append(sets, "address = ?")
		args = append(args, *ch.Address)
	}
	args = append(args, id)
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	return err
}
