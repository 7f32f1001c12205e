package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "github.com/d60-Lab/shop-analytics/internal/model"
    "github.com/d60-Lab/shop-analytics/internal/repository"
)

const testSecret = "test-secret"

func seedAdmin(t *testing.T, db *gorm.DB, username, password string) {
    t.Helper()
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
    require.NoError(t, err)
    u := model.User{Username: username, Email: username + "@example.com", Password: string(hash), Role: model.RoleAdmin}
    require.NoError(t, db.Create(&u).Error)
}

func TestLoginIssuesToken(t *testing.T) {
    db := setupServiceDB(t)
    seedAdmin(t, db, "admin", "s3cret")
    svc := NewAuthService(repository.NewUserRepository(db), nil, testSecret, time.Hour)

    token, user, err := svc.Login(context.Background(), "admin", "s3cret")
    require.NoError(t, err)
    assert.Equal(t, "admin", user.Username)

    claims, err := ParseToken(token, testSecret)
    require.NoError(t, err)
    assert.Equal(t, model.RoleAdmin, claims.Role)
    assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginRejectsBadPassword(t *testing.T) {
    db := setupServiceDB(t)
    seedAdmin(t, db, "admin", "s3cret")
    svc := NewAuthService(repository.NewUserRepository(db), nil, testSecret, time.Hour)

    _, _, err := svc.Login(context.Background(), "admin", "wrong")
    assert.ErrorIs(t, err, ErrInvalidCredentials)

    _, _, err = svc.Login(context.Background(), "ghost", "s3cret")
    assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsForgedSecret(t *testing.T) {
    db := setupServiceDB(t)
    seedAdmin(t, db, "admin", "s3cret")
    svc := NewAuthService(repository.NewUserRepository(db), nil, testSecret, time.Hour)

    token, _, err := svc.Login(context.Background(), "admin", "s3cret")
    require.NoError(t, err)

    _, err = ParseToken(token, "other-secret")
    assert.Error(t, err)
}

func TestLoginRecordsActivity(t *testing.T) {
    db := setupServiceDB(t)
    seedAdmin(t, db, "admin", "s3cret")
    repo := repository.NewActivityRepository(db)
    recorder := NewActivityRecorder(repo, 4)
    stop := recorder.Start(1)
    defer func() { _ = stop(context.Background()) }()

    svc := NewAuthService(repository.NewUserRepository(db), recorder, testSecret, time.Hour)
    _, _, err := svc.Login(context.Background(), "admin", "s3cret")
    require.NoError(t, err)

    assert.Eventually(t, func() bool {
        items, err := repo.ListRecent(context.Background(), 5)
        return err == nil && len(items) == 1 && items[0].Type == model.ActivityUserLogin
    }, 2*time.Second, 20*time.Millisecond)
}
