package config

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	fbstorage "firebase.google.com/go/v4/storage"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// Firebase bundles the Admin SDK clients used by the service
type Firebase struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
	Storage   *fbstorage.Client
}

// InitFirebase initializes the Firebase Admin SDK and its clients
func InitFirebase(ctx context.Context, cfg *Config, log *logrus.Logger) (*Firebase, error) {
	var opts []option.ClientOption
	if _, err := os.Stat(cfg.CredentialsPath); err == nil {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	} else if os.IsNotExist(err) {
		// Falls back to Application Default Credentials or the emulators.
		log.Warnf("⚠️  Firebase credentials not found at %s, using default credentials", cfg.CredentialsPath)
	} else {
		return nil, errors.Wrap(err, "stat credentials")
	}

	fbConfig := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}
	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initialize firebase app")
	}
	log.Info("✅ Firebase app initialized")

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initialize firestore")
	}
	log.Info("✅ Firestore client initialized")

	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, errors.Wrap(err, "initialize auth")
	}
	log.Info("✅ Firebase Auth client initialized")

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		fs.Close()
		return nil, errors.Wrap(err, "initialize messaging")
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		fs.Close()
		return nil, errors.Wrap(err, "initialize storage")
	}

	return &Firebase{
		App:       app,
		Firestore: fs,
		Auth:      authClient,
		Messaging: msgClient,
		Storage:   storageClient,
	}, nil
}

// Close closes Firebase connections
func (f *Firebase) Close(log *logrus.Logger) {
	if f != nil && f.Firestore != nil {
		f.Firestore.Close()
		log.Info("🔌 Firestore connection closed")
	}
}
