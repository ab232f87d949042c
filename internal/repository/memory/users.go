package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/samber/lo"
)

// UserRecord is a stored account. User.Token is never set here.
type UserRecord struct {
	User         domain.UserInfo
	PasswordHash []byte
}

type UserRepo struct {
	store *Store
	tx    *Tx
}

func (r *UserRepo) With(tx *Tx) *UserRepo {
	cp := *r
	cp.tx = tx
	return &cp
}

// Create stores rec under a new id. Email and username are unique, case-insensitively.
//
// Returns:
//   - int64: the new user id.
//   - error: repository.ErrConflict if the email or username is taken.
func (r *UserRepo) Create(ctx context.Context, rec UserRecord) (int64, error) {
	const op = "memory.UserRepo.Create"

	var id int64
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		s := tx.s

		taken := lo.SomeBy(lo.Values(s.users), func(u UserRecord) bool {
			return strings.EqualFold(u.User.Email, rec.User.Email) ||
				strings.EqualFold(u.User.Username, rec.User.Username)
		})
		if taken {
			return repository.ErrConflict
		}

		s.nextUserID++
		id = s.nextUserID
		rec.User.ID = id
		rec.User.Token = ""
		s.users[id] = rec

		tx.onRollback(func() {
			delete(s.users, id)
			s.nextUserID--
		})

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	const op = "memory.UserRepo.GetByEmail"

	var out UserRecord
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		u, ok := lo.Find(lo.Values(tx.s.users), func(u UserRecord) bool {
			return strings.EqualFold(u.User.Email, email)
		})
		if !ok {
			return repository.ErrNotFound
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (r *UserRepo) Get(ctx context.Context, id int64) (*UserRecord, error) {
	const op = "memory.UserRepo.Get"

	var out UserRecord
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		u, ok := tx.s.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}
