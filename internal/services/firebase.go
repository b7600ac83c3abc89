package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var ErrNoCredentials = errors.New("firebase credentials file not found")

// InitFirebase initializes the Firebase Admin SDK and returns an auth client.
// A missing credentials file yields ErrNoCredentials so callers can run the
// demo login instead.
func InitFirebase(ctx context.Context, credPath string) (*auth.Client, error) {
	if _, err := os.Stat(credPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, credPath)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credPath))
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}
