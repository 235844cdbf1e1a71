package database

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreClient is the global Firestore client instance.
var FirestoreClient *firestore.Client

// InitFirestore opens the Firestore client of the given Firebase app.
func InitFirestore(app *firebase.App) {
	client, err := app.Firestore(context.Background())
	if err != nil {
		log.Fatalf("failed to open Firestore: %v", err)
	}
	FirestoreClient = client
	log.Println("Connected to Firestore successfully!")
}

// PingFirestore reads the settings document; a missing document still
// proves the connection works.
func PingFirestore(ctx context.Context) error {
	_, err := FirestoreClient.Collection("settings").Doc("site").Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return err
	}
	return nil
}

// CloseFirestore closes the Firestore client if it was opened.
func CloseFirestore() {
	if FirestoreClient == nil {
		return
	}
	if err := FirestoreClient.Close(); err != nil {
		log.Printf("failed to close Firestore: %v", err)
	}
}
