package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/lucky-wheel/lucky_wheel/internal/config"
	"github.com/lucky-wheel/lucky_wheel/internal/logging"
)

func setupApp(t *testing.T) (*fiber.App, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := config.Config{
		AppName:        "lucky-wheel-test",
		AppEnv:         "test",
		Port:           "0",
		IdempotencyTTL: time.Minute,
		SpinDuration:   10 * time.Millisecond,
		SnapshotTTL:    time.Minute,
		StoreTimeout:   time.Second,
	}

	app := fiber.New()
	err = Setup(app, Deps{
		Cfg:    cfg,
		Cache:  cache,
		Logger: logging.Discard(),
		Rng:    rand.New(rand.NewSource(11)),
	})
	if err != nil {
		t.Fatalf("setup routes: %v", err)
	}

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, cleanup
}

var idemSeq int

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	idemSeq++
	req.Header.Set("Idempotency-Key", fmt.Sprintf("test-key-%d", idemSeq))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	// Error responses from fiber.NewError carry a plain-text body.
	var decoded map[string]any
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("%s %s: read response: %v", method, path, err)
	}
	_ = json.Unmarshal(payload, &decoded)
	return resp.StatusCode, decoded
}

func TestFullGameFlow(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	// Register Alice.
	status, created := doJSON(t, app, fiber.MethodPost, "/api/v1/players", fiber.Map{
		"name":          "Alice",
		"wallet_number": "01711111111",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register: status %d, body %v", status, created)
	}
	if created["wallet_number"] != "01*******11" {
		t.Fatalf("wallet not masked: %v", created["wallet_number"])
	}
	if created["score"].(float64) != 0 || created["has_played"].(bool) {
		t.Fatalf("fresh participant state wrong: %v", created)
	}
	aliceID := created["id"].(string)

	// The wallet now validates as registered.
	status, validated := doJSON(t, app, fiber.MethodPost, "/api/v1/players/validate", fiber.Map{
		"wallet_number": "01711111111",
	})
	if status != fiber.StatusOK || validated["valid"].(bool) {
		t.Fatalf("validate: status %d, body %v", status, validated)
	}

	// A malformed wallet is rejected up front.
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/v1/players/validate", fiber.Map{
		"wallet_number": "12345",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for malformed wallet, got %d", status)
	}

	// Open a session and play Alice's spin.
	status, sess := doJSON(t, app, fiber.MethodPost, "/api/v1/sessions", nil)
	if status != fiber.StatusCreated {
		t.Fatalf("start session: status %d, body %v", status, sess)
	}
	token := sess["token"].(string)

	status, spun := doJSON(t, app, fiber.MethodPost, "/api/v1/sessions/"+token+"/spin", nil)
	if status != fiber.StatusOK {
		t.Fatalf("spin: status %d, body %v", status, spun)
	}
	prizeValue := int(spun["prize"].(map[string]any)["value"].(float64))
	if prizeValue <= 0 {
		t.Fatalf("expected a catalog prize, got %v", spun)
	}

	status, resolved := doJSON(t, app, fiber.MethodPost, "/api/v1/sessions/"+token+"/resolve", nil)
	if status != fiber.StatusOK {
		t.Fatalf("resolve: status %d, body %v", status, resolved)
	}
	if !resolved["committed"].(bool) || !resolved["completed"].(bool) {
		t.Fatalf("unexpected resolution: %v", resolved)
	}

	// Alice now appears among the winners with her committed prize.
	status, winners := doJSON(t, app, fiber.MethodGet, "/api/v1/winners", nil)
	if status != fiber.StatusOK {
		t.Fatalf("winners: status %d, body %v", status, winners)
	}
	entries := winners["players"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one winner, got %v", entries)
	}
	alice := entries[0].(map[string]any)
	if alice["id"].(string) != aliceID || int(alice["score"].(float64)) != prizeValue {
		t.Fatalf("unexpected winner entry: %v", alice)
	}

	// Re-registering the same wallet with a new name keeps the record.
	status, again := doJSON(t, app, fiber.MethodPost, "/api/v1/players", fiber.Map{
		"name":          "Alicia",
		"wallet_number": "01711111111",
	})
	if status != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate wallet, got %d: %v", status, again)
	}
	existing := again["player"].(map[string]any)
	if existing["id"].(string) != aliceID {
		t.Fatalf("duplicate registration created a new record: %v", existing)
	}
	if existing["name"].(string) != "Alicia" {
		t.Fatalf("name not updated last-write-wins: %v", existing)
	}
	if int(existing["score"].(float64)) != prizeValue || !existing["has_played"].(bool) {
		t.Fatalf("existing state not surfaced: %v", existing)
	}

	// Standings list the single participant.
	status, standings := doJSON(t, app, fiber.MethodGet, "/api/v1/players", nil)
	if status != fiber.StatusOK {
		t.Fatalf("standings: status %d, body %v", status, standings)
	}
	if len(standings["players"].([]any)) != 1 {
		t.Fatalf("unexpected standings: %v", standings)
	}
}

func TestScoreEndpointRejectsOffCatalogValues(t *testing.T) {
	app, cleanup := setupApp(t)
	defer cleanup()

	status, created := doJSON(t, app, fiber.MethodPost, "/api/v1/players", fiber.Map{
		"name":          "Bob",
		"wallet_number": "01722222222",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("register: status %d", status)
	}
	id := created["id"].(string)

	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/players/"+id+"/score", fiber.Map{"score": 123})
	if status != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for off-catalog score, got %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/players/"+id+"/score", fiber.Map{"score": 100})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for catalog score, got %d", status)
	}

	// Unknown ids are a distinct failure, not silent success.
	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/players/00000000-0000-0000-0000-000000000000/score", fiber.Map{"score": 100})
	if status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", status)
	}
}
