package vertex

import (
	"change-detector/core/notify"
	"change-detector/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new vertex change detection feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config, extractor Extractor, notifier notify.Notifier) *Feature {
	svc := NewService(client, bucket, logger, db, cfg, extractor, notifier)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "vertex"
}

// IsEnabled checks if the feature is enabled.
// The comparison needs the system-of-record, so the feature is off without a database.
func (f *Feature) IsEnabled() bool {
	return f.service.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
