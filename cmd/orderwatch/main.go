// Command orderwatch polls a running lounge server and alerts on new orders.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"lounge-orders/client"
	"lounge-orders/models"
	"lounge-orders/notify"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", envOr("LOUNGE_URL", "http://localhost:8080"), "base URL of the lounge server")
	username := flag.String("user", os.Getenv("LOUNGE_USER"), "staff username")
	password := flag.String("password", os.Getenv("LOUNGE_PASSWORD"), "staff password")
	interval := flag.Duration("interval", notify.DefaultInterval, "poll interval")
	bell := flag.Bool("bell", true, "ring the terminal bell on new orders")
	flag.Parse()

	if *username == "" || *password == "" {
		die("--user and --password (or LOUNGE_USER / LOUNGE_PASSWORD) are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := client.NewSession(client.New(*server), *username, *password)
	if _, err := session.Login(ctx); err != nil {
		die("login: %v", err)
	}

	alerters := notify.Multi{notify.LogAlerter{Out: os.Stdout, Bell: *bell}}
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			die("TELEGRAM_CHAT_ID must be a numeric chat id: %v", err)
		}
		tg, err := notify.NewTelegramAlerter(token, chatID)
		if err != nil {
			die("%v", err)
		}
		alerters = append(alerters, tg)
		log.Printf("✅ Telegram alerts to chat %d", chatID)
	}

	p := &notify.Poller{
		Source:   session,
		Alerter:  alerters,
		Interval: *interval,
		OnUpdate: func(orders []models.Order) {
			log.Printf("%d open orders at %s", len(orders), time.Now().Format("15:04:05"))
		},
	}
	log.Printf("👀 Watching %s every %s", *server, *interval)
	if err := p.Run(ctx); err != nil && ctx.Err() == nil {
		die("poller: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
