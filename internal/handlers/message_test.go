package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/constants"
	"github.com/pvsouza/blog-messenger-api/internal/database"
	"github.com/pvsouza/blog-messenger-api/internal/dto"
	"github.com/pvsouza/blog-messenger-api/internal/middleware"
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/repository"
	"github.com/pvsouza/blog-messenger-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type messageTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupMessageTestEnv(t *testing.T) messageTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Message{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	authService := services.NewAuthService(userRepo)
	authHandler := NewAuthHandler(authService)
	messageHandler := NewMessageHandler(services.NewMessageService(messageRepo, userRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/accounts/login", authHandler.Login)

	messenger := r.Group("/messenger")
	messenger.Use(middleware.RequireAuth())
	{
		messenger.GET("/inbox", messageHandler.Inbox)
		messenger.POST("/send", messageHandler.SendMessage)
		messenger.GET("/:id", middleware.RequireMessageReceiver(), messageHandler.GetMessage)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return messageTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env messageTestEnv) registerUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := env.authService.Register(services.RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func getWithCookies(t *testing.T, r *gin.Engine, url string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, url, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type inboxResponse struct {
	Messages []dto.MessageDTO `json:"messages"`
}

func TestMessenger_SendAndReadFlow(t *testing.T) {
	env := setupMessageTestEnv(t)

	env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	aliceCookies := loginAs(t, env.router, "alice", "supersecret")
	bobCookies := loginAs(t, env.router, "bob", "supersecret")

	// alice sends "hi" to bob
	w := postJSON(t, env.router, "/messenger/send", map[string]any{
		"receiver_id": bob.ID,
		"subject":     "hello",
		"body":        "hi",
	}, aliceCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var sent dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	require.False(t, sent.IsRead)

	// bob's inbox contains exactly one unread message
	w = getWithCookies(t, env.router, "/messenger/inbox", bobCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var inbox inboxResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Messages, 1)
	require.Equal(t, "hi", inbox.Messages[0].Body)
	require.False(t, inbox.Messages[0].IsRead)

	// bob opens the message: is_read flips to true
	messageURL := "/messenger/" + strconv.FormatUint(sent.ID, 10)
	w = getWithCookies(t, env.router, messageURL, bobCookies)
	require.Equal(t, http.StatusOK, w.Code)

	var viewed dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &viewed))
	require.True(t, viewed.IsRead)
	require.Equal(t, "alice", viewed.Sender.Username)

	// Re-viewing is idempotent
	w = getWithCookies(t, env.router, messageURL, bobCookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &viewed))
	require.True(t, viewed.IsRead)

	// alice's inbox stays empty
	w = getWithCookies(t, env.router, "/messenger/inbox", aliceCookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inbox))
	require.Len(t, inbox.Messages, 0)
}

func TestMessenger_SendToSelf(t *testing.T) {
	env := setupMessageTestEnv(t)

	alice := env.registerUser(t, "alice")
	aliceCookies := loginAs(t, env.router, "alice", "supersecret")

	w := postJSON(t, env.router, "/messenger/send", map[string]any{
		"receiver_id": alice.ID,
		"body":        "talking to myself",
	}, aliceCookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessenger_SendSubjectTooLong(t *testing.T) {
	env := setupMessageTestEnv(t)

	env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	aliceCookies := loginAs(t, env.router, "alice", "supersecret")

	w := postJSON(t, env.router, "/messenger/send", map[string]any{
		"receiver_id": bob.ID,
		"subject":     strings.Repeat("s", constants.MaxSubjectLength+1),
		"body":        "hi",
	}, aliceCookies)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessenger_SendToMissingReceiver(t *testing.T) {
	env := setupMessageTestEnv(t)

	env.registerUser(t, "alice")
	aliceCookies := loginAs(t, env.router, "alice", "supersecret")

	w := postJSON(t, env.router, "/messenger/send", map[string]any{
		"receiver_id": uint64(9999),
		"body":        "into the void",
	}, aliceCookies)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessenger_DetailOnlyForReceiver(t *testing.T) {
	env := setupMessageTestEnv(t)

	env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	env.registerUser(t, "mallory")

	aliceCookies := loginAs(t, env.router, "alice", "supersecret")
	malloryCookies := loginAs(t, env.router, "mallory", "supersecret")

	w := postJSON(t, env.router, "/messenger/send", map[string]any{
		"receiver_id": bob.ID,
		"body":        "for bob only",
	}, aliceCookies)
	require.Equal(t, http.StatusCreated, w.Code)

	var sent dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))

	messageURL := "/messenger/" + strconv.FormatUint(sent.ID, 10)

	// Neither the sender nor a third party can open the detail view
	w = getWithCookies(t, env.router, messageURL, aliceCookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = getWithCookies(t, env.router, messageURL, malloryCookies)
	require.Equal(t, http.StatusNotFound, w.Code)

	// The message stays unread
	var stored models.Message
	require.NoError(t, env.db.First(&stored, sent.ID).Error)
	require.False(t, stored.IsRead)
}

func TestMessenger_RequiresAuth(t *testing.T) {
	env := setupMessageTestEnv(t)

	w := getWithCookies(t, env.router, "/messenger/inbox", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
