package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/chirp-social/internal/models"
	"github.com/chirp-social/internal/repository"
	"github.com/chirp-social/internal/service"
	"github.com/chirp-social/internal/session"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env bundles the wired services over an in-memory database and redis
type env struct {
	db       *gorm.DB
	sessions *session.Store

	userRepo    *repository.UserRepository
	messageRepo *repository.MessageRepository
	followRepo  *repository.FollowRepository
	likeRepo    *repository.LikeRepository

	auth     *service.AuthService
	users    *service.UserService
	messages *service.MessageService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(client, time.Hour)

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	return &env{
		db:          db,
		sessions:    sessions,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		followRepo:  followRepo,
		likeRepo:    likeRepo,
		auth:        service.NewAuthService(userRepo, sessions),
		users:       service.NewUserService(userRepo, messageRepo, followRepo, likeRepo, sessions),
		messages:    service.NewMessageService(messageRepo, followRepo, likeRepo, nil),
	}
}

func (e *env) signup(t *testing.T, username string) *models.User {
	t.Helper()
	user, _, err := e.auth.Signup(context.Background(), &service.SignupRequest{
		Username: username,
		Email:    username + "@test.com",
		Password: username + "-password",
	})
	require.NoError(t, err)
	return user
}
