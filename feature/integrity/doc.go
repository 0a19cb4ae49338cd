// Package integrity validates the infrastructure the change detector depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the exports, backups and reports folders exist in the storage bucket.
//   - Schema: Validates that the segment and point tables carry the columns (and, where the
//     model declares one, the type) of the vertex models.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
package integrity
