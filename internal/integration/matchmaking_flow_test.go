package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/config"
	"github.com/eKidenge/QuickConnect-sub000/internal/database"
	"github.com/eKidenge/QuickConnect-sub000/internal/database/migration"
	dbpostgres "github.com/eKidenge/QuickConnect-sub000/internal/database/postgres"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/middleware"
	"github.com/eKidenge/QuickConnect-sub000/internal/delivery/http/routes"
	"github.com/eKidenge/QuickConnect-sub000/internal/infrastructure/cache"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginData struct {
	AccessToken string `json:"access_token"`
}

type rankData struct {
	Category string `json:"category"`
	Results  []struct {
		ProfessionalID uuid.UUID `json:"professional_id"`
		Score          int       `json:"score"`
		CategoryScore  float64   `json:"category_score"`
		Confidence     float64   `json:"confidence"`
		Justification  string    `json:"justification"`
	} `json:"results"`
}

type sessionData struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Status         string    `json:"status"`
}

type autoPairData struct {
	Session sessionData `json:"session"`
	Match   struct {
		ProfessionalID uuid.UUID `json:"professional_id"`
		Score          int       `json:"score"`
	} `json:"match"`
}

type seedData struct {
	cfg          config.Config
	userID       uuid.UUID
	email        string
	password     string
	categoryID   int64
	categoryName string
	proMatchID   uuid.UUID
	proHiddenID  uuid.UUID
}

func TestIntegration_Login_Rank_AutoPair(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	tok := loginAndGetJWT(t, app, seed)
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	ranked := callRank(t, app, tok, seed.categoryName)
	if len(ranked.Results) != 1 {
		t.Fatalf("rank: expected exactly 1 eligible professional, got %d", len(ranked.Results))
	}
	best := ranked.Results[0]
	if best.ProfessionalID != seed.proMatchID {
		t.Fatalf("rank: expected professional %s first, got %s", seed.proMatchID, best.ProfessionalID)
	}
	if best.CategoryScore != 1.0 {
		t.Fatalf("rank: expected category_score 1.0 for exact primary match, got %v", best.CategoryScore)
	}
	if best.Score < 0 || best.Score > 100 {
		t.Fatalf("rank: expected score 0-100, got %d", best.Score)
	}
	if best.Justification == "" {
		t.Fatalf("rank: expected non-empty justification")
	}

	paired := callAutoPair(t, app, tok, seed.categoryID)
	if paired.Session.Status != "pending" {
		t.Fatalf("autopair: expected pending session, got %q", paired.Session.Status)
	}
	if paired.Session.ProfessionalID != seed.proMatchID {
		t.Fatalf("autopair: expected professional %s, got %s", seed.proMatchID, paired.Session.ProfessionalID)
	}
	if paired.Match.ProfessionalID != seed.proMatchID {
		t.Fatalf("autopair: match/session professional mismatch")
	}

	pending := callPendingSessions(t, app, tok)
	found := false
	for _, s := range pending {
		if s.ID == paired.Session.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("sessions/pending: expected paired session %s in list", paired.Session.ID)
	}

	updated := callUpdateStatus(t, app, tok, paired.Session.ID, "cancelled")
	if updated.Status != "cancelled" {
		t.Fatalf("update status: expected cancelled, got %q", updated.Status)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("QUICKCONNECT_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("QUICKCONNECT_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("QUICKCONNECT_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("QUICKCONNECT_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("QUICKCONNECT_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("QUICKCONNECT_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set QUICKCONNECT_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/matchmaking_flow_test.go
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	return migDir
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seedData {
	t.Helper()

	suffix := uuid.NewString()[:8]
	seed := seedData{
		userID:       uuid.New(),
		email:        "client-" + suffix + "@example.com",
		password:     "super-secret-pass",
		categoryName: "Test Consulting " + suffix,
		proMatchID:   uuid.New(),
		proHiddenID:  uuid.New(),
	}
	seed.cfg = config.Config{
		App: config.AppConfig{AppName: "quickconnect-test", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Matchmaking: config.MatchmakingConfig{LockTTL: 5 * time.Second, PoolLimit: 50},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("seed: bcrypt: %v", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role) VALUES ($1,$2,$3,'client')`,
		seed.userID, seed.email, string(hash),
	); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	if err := db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, seed.categoryName,
	).Scan(&seed.categoryID); err != nil {
		t.Fatalf("seed category: %v", err)
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO professionals
			(id, display_name, primary_category_id, is_active, is_online, is_available,
			 average_rating, total_sessions, years_experience, response_bucket, current_load, max_load)
		 VALUES ($1, $2, $3, TRUE, TRUE, TRUE, 4.8, 120, 8, '< 1 hour', 1, 10)`,
		seed.proMatchID, "Pro Match "+suffix, seed.categoryID,
	); err != nil {
		t.Fatalf("seed professional: %v", err)
	}
	if _, err := db.Exec(ctx,
		`INSERT INTO professional_categories (professional_id, category_id, is_primary)
		 VALUES ($1, $2, TRUE)`,
		seed.proMatchID, seed.categoryID,
	); err != nil {
		t.Fatalf("seed professional category: %v", err)
	}

	// Inactive professional in the same category, must never surface.
	if _, err := db.Exec(ctx,
		`INSERT INTO professionals
			(id, display_name, primary_category_id, is_active, is_online, is_available)
		 VALUES ($1, $2, $3, FALSE, TRUE, TRUE)`,
		seed.proHiddenID, "Pro Hidden "+suffix, seed.categoryID,
	); err != nil {
		t.Fatalf("seed hidden professional: %v", err)
	}

	return seed
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seedData) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM sessions WHERE client_id = $1`, seed.userID)
	_, _ = db.Exec(ctx, `DELETE FROM professionals WHERE id = ANY($1)`, []uuid.UUID{seed.proMatchID, seed.proHiddenID})
	_, _ = db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, seed.categoryID)
	_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, seed.userID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	app := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	registry := routes.NewRegistry(routes.Deps{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		Logger: logger,
	})
	registry.Register(app)

	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App, seed seedData) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": seed.email, "password": seed.password})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	var env semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("login decode: %v", err)
	}
	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("login data decode: %v", err)
	}
	return data.AccessToken
}

func callRank(t *testing.T, app *fiber.App, tok, category string) rankData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/matchmaking/rank?category="+url.QueryEscape(category), nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("rank request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("rank: expected 200, got %d", resp.StatusCode)
	}

	var env semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("rank decode: %v", err)
	}
	var data rankData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("rank data decode: %v", err)
	}
	return data
}

func callAutoPair(t *testing.T, app *fiber.App, tok string, categoryID int64) autoPairData {
	t.Helper()

	body, _ := json.Marshal(map[string]int64{"category_id": categoryID})
	req := httptest.NewRequest("POST", "/api/v1/matchmaking/autopair", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("autopair request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("autopair: expected 200, got %d", resp.StatusCode)
	}

	var env semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("autopair decode: %v", err)
	}
	var data autoPairData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("autopair data decode: %v", err)
	}
	return data
}

func callPendingSessions(t *testing.T, app *fiber.App, tok string) []sessionData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/sessions/pending", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("pending request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("pending: expected 200, got %d", resp.StatusCode)
	}

	var env semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("pending decode: %v", err)
	}
	var data struct {
		Sessions []sessionData `json:"sessions"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("pending data decode: %v", err)
	}
	return data.Sessions
}

func callUpdateStatus(t *testing.T, app *fiber.App, tok string, id uuid.UUID, status string) sessionData {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"status": status})
	req := httptest.NewRequest("PATCH", "/api/v1/sessions/"+id.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("update status request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("update status: expected 200, got %d", resp.StatusCode)
	}

	var env semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("update status decode: %v", err)
	}
	var data sessionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("update status data decode: %v", err)
	}
	return data
}

func stringsOrDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

