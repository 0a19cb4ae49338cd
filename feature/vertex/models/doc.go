// Package models defines the GORM models of the survey tables compared by the
// change detector, and helpers listing their mapped columns.
package models
