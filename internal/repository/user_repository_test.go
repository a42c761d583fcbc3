package repository

import (
    "context"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/ekaraca/carmarket/internal/model"
)

func newUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return NewUserRepo(db), mock
}

var userCols = []string{"id", "username", "password_hash", "email", "phone",
    "location", "is_admin", "is_active", "created_at"}

func TestCreateMapsDuplicateUsername(t *testing.T) {
    repo, mock := newUserRepo(t)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
        WillReturnError(&mysql.MySQLError{
            Number:  1062,
            Message: "Duplicate entry 'ali' for key 'users.uq_users_username'",
        })
    mock.ExpectRollback()

    u := model.User{Username: "ali", Email: "ali@x.com", Phone: "555"}
    err := repo.Create(context.Background(), &u, "pw", 4)

    var conflict *ConflictError
    require.ErrorAs(t, err, &conflict)
    assert.Equal(t, "username", conflict.Field)
    assert.Equal(t, "duplicate username", conflict.Error())
}

func TestCreateMapsDuplicateEmailAndPhone(t *testing.T) {
    repo, mock := newUserRepo(t)

    for key, field := range map[string]string{
        "uq_users_email": "email",
        "uq_users_phone": "phone",
    } {
        mock.ExpectBegin()
        mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
            WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key '" + key + "'"})
        mock.ExpectRollback()

        u := model.User{Username: "ali", Email: "ali@x.com", Phone: "555"}
        err := repo.Create(context.Background(), &u, "pw", 4)

        var conflict *ConflictError
        require.ErrorAs(t, err, &conflict)
        assert.Equal(t, field, conflict.Field)
    }
}

func TestCreateDefaultsAndAudit(t *testing.T) {
    repo, mock := newUserRepo(t)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
        WithArgs("ali", sqlmock.AnyArg(), "ali@x.com", "555", "Ankara", false, true, sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(3, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_logs")).
        WithArgs(uint64(3), model.AuditActionInsert, sqlmock.AnyArg(), sqlmock.AnyArg()).
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    u := model.User{Username: " ali ", Email: "ali@x.com", Phone: "555", Location: "Ankara"}
    require.NoError(t, repo.Create(context.Background(), &u, "pw", 4))
    assert.Equal(t, uint64(3), u.ID)
    assert.Equal(t, "ali", u.Username)
    assert.False(t, u.IsAdmin)
    assert.True(t, u.IsActive)
    assert.NotEmpty(t, u.PasswordHash)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActiveAlwaysLogs(t *testing.T) {
    repo, mock := newUserRepo(t)

    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id=? FOR UPDATE")).
        WithArgs(uint64(9)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET is_active=? WHERE id=?")).
        WithArgs(false, uint64(9)).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_logs")).
        WithArgs(uint64(9), model.AuditActionUpdate, sqlmock.AnyArg(), "User #9 has been deactivated\n").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    require.NoError(t, repo.SetActive(context.Background(), 9, false))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateKeepsHashWhenEmpty(t *testing.T) {
    repo, mock := newUserRepo(t)
    stored := sqlmock.NewRows(userCols).
        AddRow(4, "ali", "oldhash", "a@x.com", "555", "Ankara", false, true, time.Now().UTC())

    mock.ExpectBegin()
    mock.ExpectQuery("FOR UPDATE").WithArgs(uint64(4)).WillReturnRows(stored)
    mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET email=?, phone=?, location=?, password_hash=? WHERE id=?")).
        WithArgs("b@x.com", "555", "Ankara", "oldhash", uint64(4)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_logs")).
        WithArgs(uint64(4), model.AuditActionUpdate, sqlmock.AnyArg(), "Mail changed from a@x.com to b@x.com\n").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectCommit()

    upd := model.UserUpdate{Email: "b@x.com", Phone: "555", Location: "Ankara"}
    require.NoError(t, repo.Update(context.Background(), 4, upd, ""))
    assert.NoError(t, mock.ExpectationsWereMet())
}
