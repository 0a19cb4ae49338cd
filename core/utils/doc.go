// Package utils provides common utility functions for the change-detector application.
// It includes helper functions for type conversion and numeric normalization
// shared by the snapshot loaders and the reconcile engine.
package utils
