package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/crowdsage/crowdsage/domain"
	mysqlRepo "github.com/crowdsage/crowdsage/internal/repository/mysql"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
	"github.com/crowdsage/crowdsage/internal/usecase/user"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to in-memory SQLite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}))

	return db
}

func newService(db *gorm.DB) *user.Service {
	return user.NewService(mysqlRepo.NewUserRepository(db), []byte(testSecret), time.Hour)
}

func TestRegister_HashesPasswordAndRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	userName := faker.Username()
	require.NoError(t, svc.Register(ctx, userName, faker.Email(), "s3cretpass"))

	stored, err := mysqlRepo.NewUserRepository(db).GetByUserName(ctx, userName)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cretpass")))

	err = svc.Register(ctx, userName, faker.Email(), "otherpass")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_RejectsBlankFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "", "a@b.c", "password"), domain.ErrBadParamInput)
	assert.ErrorIs(t, svc.Register(ctx, "name", "", "password"), domain.ErrBadParamInput)
	assert.ErrorIs(t, svc.Register(ctx, "name", "a@b.c", ""), domain.ErrBadParamInput)
}

func TestLogin_ReturnsSignedTokenWithUserSubject(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	userName := faker.Username()
	require.NoError(t, svc.Register(ctx, userName, faker.Email(), "s3cretpass"))
	stored, err := mysqlRepo.NewUserRepository(db).GetByUserName(ctx, userName)
	require.NoError(t, err)

	tokenStr, err := svc.Login(ctx, userName, "s3cretpass")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, stored.ID, sub)

	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)
	ctx := context.Background()

	userName := faker.Username()
	require.NoError(t, svc.Register(ctx, userName, faker.Email(), "s3cretpass"))

	_, err := svc.Login(ctx, userName, "wrongpass")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	_, err = svc.Login(ctx, "no-such-user", "s3cretpass")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
