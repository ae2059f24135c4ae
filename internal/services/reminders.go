package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/hazelbrook/doseline/internal/db"
	"github.com/hazelbrook/doseline/internal/models"
	"gorm.io/gorm"
)

// ReminderService runs the minute sweep: dose reminders for members whose
// reminder time just came up, and expiry stamping of overdue transfer
// requests. Telegram delivery is configured via TELEGRAM_BOT_TOKEN and
// TELEGRAM_CHAT_ID; with either missing only the expiry half runs.
type ReminderService struct {
	db        *gorm.DB
	transfers *TransferService
	botToken  string
	chatID    string
	enabled   bool
	location  *time.Location
	client    *http.Client
	scheduler *gocron.Scheduler

	mu            sync.Mutex
	sentReminders map[string]time.Time
}

func NewReminderService(db *gorm.DB, transfers *TransferService, location *time.Location) *ReminderService {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatID := os.Getenv("TELEGRAM_CHAT_ID")

	if location == nil {
		location = time.Local
	}

	return &ReminderService{
		db:        db,
		transfers: transfers,
		botToken:  botToken,
		chatID:    chatID,
		enabled:   botToken != "" && chatID != "",
		location:  location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentReminders: make(map[string]time.Time),
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	scheduler := gocron.NewScheduler(service.location)

	scheduler.Every(1).Minute().Do(func() {
		service.run(ctx)
	})

	scheduler.StartAsync()
	service.scheduler = scheduler

	go func() {
		<-ctx.Done()
		scheduler.Stop()
	}()
}

func (service *ReminderService) run(ctx context.Context) {
	now := time.Now().In(service.location)

	if expired, err := service.transfers.ExpireOverdue(now); err != nil {
		log.Printf("reminders: transfer expiry sweep failed: %v", err)
	} else if expired > 0 {
		log.Printf("reminders: expired %d overdue transfer request(s)", expired)
	}

	if !service.enabled {
		return
	}
	service.sendDueReminders(ctx, now)
}

func (service *ReminderService) sendDueReminders(ctx context.Context, now time.Time) {
	settingsRows, err := db.NewRoomRepository(service.db.WithContext(ctx)).ListEnabledReminderSettings()
	if err != nil {
		log.Printf("reminders: fetch settings failed: %v", err)
		return
	}

	wallClock := now.Format("15:04")
	today := dateOnly(now)

	for _, settings := range settingsRows {
		if settings.ReminderTime != wallClock {
			continue
		}

		key := fmt.Sprintf("reminder:%d:%d:%s", settings.RoomID, settings.UserID, today.Format("2006-01-02"))
		if !service.shouldSend(key, today) {
			continue
		}

		pending, patientName, err := service.pendingItemsToday(ctx, settings.RoomID, today, now)
		if err != nil {
			log.Printf("reminders: room %d: %v", settings.RoomID, err)
			continue
		}
		if len(pending) == 0 {
			continue
		}

		message := fmt.Sprintf("Doseline reminder for %s: %d item(s) still due today: %s.",
			patientName,
			len(pending),
			strings.Join(pending, ", "),
		)
		if err := service.sendTelegram(ctx, message); err != nil {
			log.Printf("reminders: send failed for room %d: %v", settings.RoomID, err)
		}
	}
}

// pendingItemsToday lists display strings for items due today and not yet
// logged by anyone in the room.
func (service *ReminderService) pendingItemsToday(ctx context.Context, roomID uint, today time.Time, now time.Time) ([]string, string, error) {
	var cycle models.Cycle
	err := service.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("number DESC").
		First(&cycle).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("fetch cycle: %w", err)
	}

	items := make([]models.Item, 0)
	if err := service.db.WithContext(ctx).
		Preload("WeeklyDoses").
		Where("cycle_id = ?", cycle.ID).
		Order("display_order ASC").
		Find(&items).Error; err != nil {
		return nil, "", fmt.Errorf("fetch items: %w", err)
	}

	dayStart, dayEnd := DayRange(today, service.location)
	logged := make([]models.ConsumptionLog, 0)
	if err := service.db.WithContext(ctx).
		Where("cycle_id = ? AND date >= ? AND date <= ?", cycle.ID, dayStart, dayEnd).
		Find(&logged).Error; err != nil {
		return nil, "", fmt.Errorf("fetch logs: %w", err)
	}

	loggedItems := make(map[uint]bool, len(logged))
	for _, entry := range logged {
		loggedItems[entry.ItemID] = true
	}

	week := CurrentWeekIndex(cycle.StartDate, now) + 1
	pending := make([]string, 0, len(items))
	for _, item := range items {
		if loggedItems[item.ID] || !ItemDueOn(item, today) {
			continue
		}
		label := item.Name
		if resolved, ok := ResolveDose(item, week); ok {
			label = item.Name + " (" + resolved.Display() + ")"
		}
		pending = append(pending, label)
	}
	return pending, cycle.PatientName, nil
}

func (service *ReminderService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if sentOn, ok := service.sentReminders[key]; ok && sameDay(sentOn, today) {
		return false
	}

	service.sentReminders[key] = today
	if len(service.sentReminders) > 500 {
		service.sentReminders = make(map[string]time.Time)
	}
	return true
}

func (service *ReminderService) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", service.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", service.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
