package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/crowdsage/crowdsage/internal/repository"
	mysqlRepo "github.com/crowdsage/crowdsage/internal/repository/mysql"
	"github.com/crowdsage/crowdsage/internal/repository/mysql/model"
	redisCache "github.com/crowdsage/crowdsage/internal/repository/redis"
	"github.com/crowdsage/crowdsage/internal/workers"

	"github.com/crowdsage/crowdsage/internal/rest"
	"github.com/crowdsage/crowdsage/internal/rest/middleware"
	"github.com/crowdsage/crowdsage/internal/usecase/answer"
	"github.com/crowdsage/crowdsage/internal/usecase/comment"
	"github.com/crowdsage/crowdsage/internal/usecase/question"
	"github.com/crowdsage/crowdsage/internal/usecase/user"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "UTC")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	err = db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Answer{},
		&model.QuestionVote{},
		&model.AnswerVote{},
		&model.QuestionBookmark{},
		&model.AnswerBookmark{},
		&model.QuestionComment{},
		&model.AnswerComment{},
	)
	if err != nil {
		log.Fatal("failed to migrate database schema:", err)
	}

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	questionRepo := mysqlRepo.NewQuestionRepository(db)
	answerRepo := mysqlRepo.NewAnswerRepository(db)
	questionBookmarkRepo := mysqlRepo.NewQuestionBookmarkRepository(db)
	answerBookmarkRepo := mysqlRepo.NewAnswerBookmarkRepository(db)

	// 投票计数走三层：DB层、Cache层、协调层
	questionVoteDBRepo := mysqlRepo.NewQuestionVoteRepository(db)
	answerVoteDBRepo := mysqlRepo.NewAnswerVoteRepository(db)
	questionVoteCache := redisCache.NewVoteCountCache(client, "question")
	answerVoteCache := redisCache.NewVoteCountCache(client, "answer")
	questionVoteRepo := repository.NewCachedVoteRepository(questionVoteDBRepo, questionVoteCache)
	answerVoteRepo := repository.NewCachedVoteRepository(answerVoteDBRepo, answerVoteCache)

	// Start workers
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 同步worker直接读DB层重算计数，避免读到自己写的缓存
	questionVoteSyncer := workers.NewSyncVotesWorker(questionVoteDBRepo, questionVoteCache)
	go questionVoteSyncer.Start(ctx)

	answerVoteSyncer := workers.NewSyncVotesWorker(answerVoteDBRepo, answerVoteCache)
	go answerVoteSyncer.Start(ctx)

	// Build service Layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}

	questionSvc := question.NewService(questionRepo, userRepo, questionVoteRepo, questionBookmarkRepo, questionVoteSyncer)
	answerSvc := answer.NewService(answerRepo, questionRepo, userRepo, answerVoteRepo, answerBookmarkRepo, answerVoteSyncer)
	questionCommentSvc := comment.NewService(mysqlRepo.NewQuestionCommentRepository(db), questionRepo, userRepo)
	answerCommentSvc := comment.NewService(mysqlRepo.NewAnswerCommentRepository(db), answerRepo, userRepo)
	userSvc := user.NewService(userRepo, jwtSecret, time.Duration(jwtTTL)*time.Hour)

	questionHandler := rest.NewQuestionHandler(questionSvc)
	answerHandler := rest.NewAnswerHandler(answerSvc)
	questionCommentHandler := rest.NewCommentHandler(questionCommentSvc)
	answerCommentHandler := rest.NewCommentHandler(answerCommentSvc)
	userHandler := rest.NewUserHandler(userSvc)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))
	optionalAuth := middleware.OptionalAuth(string(jwtSecret))

	// Register routes
	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	// 读接口对匿名开放，带token时合并个人的投票和收藏状态
	public := route.Group("/")
	public.Use(optionalAuth)
	{
		public.GET("/questions", questionHandler.FetchNew)
		public.GET("/questions/:id", questionHandler.GetByID)
		public.GET("/questions/:id/answers", answerHandler.FetchByQuestion)
		public.GET("/answers/:id", answerHandler.GetByID)
		public.GET("/questions/:id/comments", questionCommentHandler.FetchByParent)
		public.GET("/answers/:id/comments", answerCommentHandler.FetchByParent)
		public.GET("/comments/questions/:id", questionCommentHandler.GetByID)
		public.GET("/comments/answers/:id", answerCommentHandler.GetByID)
	}

	authorized := route.Group("/")
	authorized.Use(authMiddleware)
	{
		authorized.POST("/questions", questionHandler.Store)
		authorized.PUT("/questions/:id", questionHandler.Edit)
		authorized.DELETE("/questions/:id", questionHandler.Delete)
		authorized.POST("/questions/:id/vote", questionHandler.Vote)
		authorized.POST("/questions/:id/bookmark", questionHandler.Bookmark)
		authorized.DELETE("/questions/:id/bookmark", questionHandler.RemoveBookmark)

		authorized.POST("/questions/:id/answers", answerHandler.Store)
		authorized.PUT("/answers/:id", answerHandler.Edit)
		authorized.DELETE("/answers/:id", answerHandler.Delete)
		authorized.POST("/answers/:id/vote", answerHandler.Vote)
		authorized.POST("/answers/:id/bookmark", answerHandler.Bookmark)
		authorized.DELETE("/answers/:id/bookmark", answerHandler.RemoveBookmark)

		authorized.POST("/questions/:id/comments", questionCommentHandler.Create)
		authorized.POST("/answers/:id/comments", answerCommentHandler.Create)
		authorized.PUT("/comments/questions/:id", questionCommentHandler.Edit)
		authorized.DELETE("/comments/questions/:id", questionCommentHandler.Delete)
		authorized.PUT("/comments/answers/:id", answerCommentHandler.Edit)
		authorized.DELETE("/comments/answers/:id", answerCommentHandler.Delete)

		authorized.GET("/bookmarks/questions", questionHandler.FetchBookmarked)
		authorized.GET("/bookmarks/answers", answerHandler.FetchBookmarked)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for workers to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
