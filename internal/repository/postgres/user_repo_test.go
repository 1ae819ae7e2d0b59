package postgres

import (
	"context"
	"database/sql"
	"testing"

	"clubevents/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ana@example.edu", "Ana", "student", "org-1", "hash", "salt",
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))

		repo := NewUserRepository(db)
		user := &domain.User{
			Email:          "ana@example.edu",
			Name:           "Ana",
			Role:           "student",
			OrganizationID: "org-1",
			PasswordHash:   "hash",
			PasswordSalt:   "salt",
		}
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, "user-uuid-1", user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewUserRepository(db)
		err = repo.Create(ctx, &domain.User{Email: "ana@example.edu"})
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	cols := []string{"id", "email", "name", "role", "organization_id",
		"password_hash", "salt", "created_at", "updated_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("ana@example.edu").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("user-1", "ana@example.edu", "Ana", "student", "org-1",
					"hash", "salt", repoTestTime, repoTestTime))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "ana@example.edu")
		require.NoError(t, err)
		require.Equal(t, "user-1", user.ID)
		require.Equal(t, "Ana", user.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
			WithArgs("nobody@example.edu").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "nobody@example.edu")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
