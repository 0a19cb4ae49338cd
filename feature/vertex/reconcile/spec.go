package reconcile

import (
	"time"

	"change-detector/core/reconcile"
)

// LineSpec returns the comparison spec of the segment pipeline.
func LineSpec(source reconcile.Source, ttl time.Duration) *reconcile.Spec {
	return &reconcile.Spec{
		Adapter:         NewLineAdapter(),
		IdentityColumns: LineIdentityColumns,
		Source:          source,
		CacheTTL:        ttl,
	}
}

// PointSpec returns the comparison spec of the point pipeline.
func PointSpec(source reconcile.Source, ttl time.Duration) *reconcile.Spec {
	return &reconcile.Spec{
		Adapter:         NewPointAdapter(),
		IdentityColumns: PointIdentityColumns,
		Source:          source,
		CacheTTL:        ttl,
	}
}
