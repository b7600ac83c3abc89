package main

import (
	"context"
	"flag"
	"log"
	"time"

	"sakhigps/internal/config"
	"sakhigps/internal/services"
)

func main() {
	channel := flag.String("channel", "", "Notification channel: ack, email or whatsapp (defaults to NOTIFY_CHANNEL)")
	phone := flag.String("phone", "", "Phone number (e.g. 628123456789)")
	email := flag.String("email", "", "Email address")
	msg := flag.String("msg", "Test alert from SakhiGPS", "Message body")
	flag.Parse()

	if *phone == "" && *email == "" {
		log.Fatal("Please provide a recipient using -phone or -email")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if *channel != "" {
		cfg.Notify.Channel = *channel
	}

	notifier, err := services.NewNotifier(cfg.Notify)
	if err != nil {
		log.Fatalf("Failed to set up %s notifier: %v", cfg.Notify.Channel, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	to := services.Recipient{Name: "Test", Phone: *phone, Email: *email}
	log.Printf("Sending %s message to %s: %s", cfg.Notify.Channel, to, *msg)

	receipt, err := notifier.Notify(ctx, to, *msg)
	if err != nil {
		log.Fatalf("Failed to send message: %v", err)
	}

	log.Printf("Message sent via %s at %s", receipt.Channel, receipt.SentAt.Format(time.RFC3339))
}
