package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestAuthRequiredOnAPIRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	request := jsonRequest(t, http.MethodGet, "/api/rooms", nil)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a token, got %d", response.StatusCode)
	}
}

func TestRoomCreationGatedBySubscription(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := registerAccount(t, app, "Alice", "alice@example.com")

	// No plan yet: the room ceiling is zero.
	doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms", fiber.Map{
		"name": "Peanut OIT",
	}), token), http.StatusPaymentRequired)

	doJSON(t, app, authed(jsonRequest(t, http.MethodPut, "/api/subscription", fiber.Map{
		"plan_id": "plan.single",
	}), token), http.StatusOK)

	body := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms", fiber.Map{
		"name": "Peanut OIT",
	}), token), http.StatusCreated)

	room, ok := body["room"].(map[string]any)
	if !ok {
		t.Fatal("create room response is missing the room")
	}
	if code, _ := room["invite_code"].(string); code == "" {
		t.Fatal("owner should see the invite code")
	}

	// plan.single allows exactly one room.
	doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms", fiber.Map{
		"name": "Second room",
	}), token), http.StatusPaymentRequired)
}

func TestInviteJoinAndWeekView(t *testing.T) {
	app, _ := newTestApp(t)
	ownerToken, _ := registerAccount(t, app, "Alice", "alice@example.com")

	doJSON(t, app, authed(jsonRequest(t, http.MethodPut, "/api/subscription", fiber.Map{
		"plan_id": "plan.family",
	}), ownerToken), http.StatusOK)

	roomBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms", fiber.Map{
		"name": "Peanut OIT",
	}), ownerToken), http.StatusCreated)
	room := roomBody["room"].(map[string]any)
	roomID := uintField(t, roomBody["room"], "id")
	inviteCode := room["invite_code"].(string)

	startDate := time.Now().AddDate(0, 0, -3).Format("2006-01-02")
	cycleBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost,
		"/api/rooms/"+itoa(roomID)+"/cycles", fiber.Map{
			"patient_name":        "Sam",
			"start_date":          startDate,
			"food_challenge_date": time.Now().AddDate(0, 0, 60).Format("2006-01-02"),
		}), ownerToken), http.StatusCreated)
	cycleID := uintField(t, cycleBody["cycle"], "id")

	doJSON(t, app, authed(jsonRequest(t, http.MethodPost,
		"/api/cycles/"+itoa(cycleID)+"/items", fiber.Map{
			"name":     "Peanut flour",
			"category": "food",
			"dose":     0.5,
			"unit":     "mg",
		}), ownerToken), http.StatusCreated)

	memberToken, _ := registerAccount(t, app, "Bob", "bob@example.com")
	doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms/join", fiber.Map{
		"invite_code": inviteCode,
	}), memberToken), http.StatusOK)

	week := doJSON(t, app, authed(jsonRequest(t, http.MethodGet,
		"/api/cycles/"+itoa(cycleID)+"/weeks/1", nil), memberToken), http.StatusOK)

	if got := int(week["week"].(float64)); got != 1 {
		t.Fatalf("expected week 1, got %d", got)
	}
	days, ok := week["days"].([]any)
	if !ok || len(days) != 7 {
		t.Fatalf("expected 7 days in an unshifted week, got %v", week["days"])
	}

	items := week["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 item in the week view, got %d", len(items))
	}
	item := items[0].(map[string]any)
	if display := item["dose_display"].(string); display != "1/2 mg" {
		t.Fatalf("expected dose display %q, got %q", "1/2 mg", display)
	}
	for index, due := range item["due"].([]any) {
		if due != true {
			t.Fatalf("everyday item should be due on day %d", index)
		}
	}
}

func TestToggleConsumptionFlipsTakenMark(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := registerAccount(t, app, "Alice", "alice@example.com")

	doJSON(t, app, authed(jsonRequest(t, http.MethodPut, "/api/subscription", fiber.Map{
		"plan_id": "plan.single",
	}), token), http.StatusOK)
	roomBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms", fiber.Map{
		"name": "Milk ladder",
	}), token), http.StatusCreated)
	roomID := uintField(t, roomBody["room"], "id")

	today := time.Now().Format("2006-01-02")
	cycleBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost,
		"/api/rooms/"+itoa(roomID)+"/cycles", fiber.Map{
			"patient_name":        "Sam",
			"start_date":          today,
			"food_challenge_date": time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		}), token), http.StatusCreated)
	cycleID := uintField(t, cycleBody["cycle"], "id")

	itemBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost,
		"/api/cycles/"+itoa(cycleID)+"/items", fiber.Map{
			"name":     "Baked milk muffin",
			"category": "food",
		}), token), http.StatusCreated)
	itemID := uintField(t, itemBody["item"], "id")

	toggleURL := "/api/cycles/" + itoa(cycleID) + "/items/" + itoa(itemID) + "/logs/" + today

	first := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, toggleURL, nil), token), http.StatusOK)
	if first["taken"] != true {
		t.Fatal("first toggle should mark the item taken")
	}

	second := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, toggleURL, nil), token), http.StatusOK)
	if second["taken"] != false {
		t.Fatal("second toggle should clear the mark")
	}
}

func TestTransferParksUntilRecipientUpgrades(t *testing.T) {
	app, _ := newTestApp(t)
	ownerToken, _ := registerAccount(t, app, "Alice", "alice@example.com")
	recipientToken, recipientID := registerAccount(t, app, "Bob", "bob@example.com")

	doJSON(t, app, authed(jsonRequest(t, http.MethodPut, "/api/subscription", fiber.Map{
		"plan_id": "plan.single",
	}), ownerToken), http.StatusOK)
	roomBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/rooms", fiber.Map{
		"name": "Egg OIT",
	}), ownerToken), http.StatusCreated)
	roomID := uintField(t, roomBody["room"], "id")

	transferBody := doJSON(t, app, authed(jsonRequest(t, http.MethodPost, "/api/transfers", fiber.Map{
		"room_id":      roomID,
		"recipient_id": recipientID,
	}), ownerToken), http.StatusCreated)
	transfer := transferBody["transfer"].(map[string]any)
	tokenParam := transfer["token"].(string)

	// The recipient has no plan, so acceptance parks instead of completing.
	accepted := doJSON(t, app, authed(jsonRequest(t, http.MethodPost,
		"/api/transfers/"+tokenParam+"/accept", nil), recipientToken), http.StatusOK)
	if status := accepted["transfer"].(map[string]any)["status"]; status != "accepted_pending_subscription" {
		t.Fatalf("expected parked status, got %v", status)
	}

	upgrade := doJSON(t, app, authed(jsonRequest(t, http.MethodPut, "/api/subscription", fiber.Map{
		"plan_id": "plan.single",
	}), recipientToken), http.StatusOK)
	if promoted := int(upgrade["promoted_transfers"].(float64)); promoted != 1 {
		t.Fatalf("expected 1 promoted transfer, got %d", promoted)
	}

	rooms := doJSON(t, app, authed(jsonRequest(t, http.MethodGet, "/api/rooms", nil), recipientToken), http.StatusOK)
	list := rooms["rooms"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected the recipient to own 1 room, got %d", len(list))
	}
	if owned := list[0].(map[string]any)["is_owner"]; owned != true {
		t.Fatal("recipient should own the room after promotion")
	}
}
