package utils

import (
	"context"
	"fmt"

	"clinicdesk/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp *firebase.App
	FCMClient   *messaging.Client
	AuthClient  *auth.Client
)

// FirebaseInit initializes the Firebase App with its Auth and Messaging clients.
// The credentials file is optional so the emulator and ambient credentials work.
func FirebaseInit(ctx context.Context) error {
	var opts []option.ClientOption
	if path := config.AppConfig.FirebaseCredentialsFile; path != "" && fileExists(path) {
		opts = append(opts, option.WithCredentialsFile(path))
	}

	var fbCfg *firebase.Config
	if id := config.AppConfig.FirebaseProjectID; id != "" {
		fbCfg = &firebase.Config{ProjectID: id}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	fcm, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	FirebaseApp = app
	AuthClient = authClient
	FCMClient = fcm
	return nil
}
