// Package simplefeeds provides a reusable library for media feed ingestion
// and retrieval with pluggable repository, blob storage, and notification
// backends.
//
// It exposes a single Service interface that orchestrates the upload pipeline
// (store the binary payload, persist the feed record, publish a new-feed
// notification) and serves paginated per-user queries and point lookups over
// the persisted records. Implementations of repositories (memory, Postgres),
// blob stores (memory, filesystem, S3), and publishers (noop, logging, SNS)
// are provided under subpackages.
//
// Failure Ordering
//
// The ingestion pipeline is strictly ordered: the payload is written to the
// blob store first, the feed record is persisted only after that write
// succeeds, and the notification is published only after the record is
// durable. A failed blob write leaves no trace; a failed record write leaves
// an orphaned object to be reconciled out of band; a failed publish is logged
// and never surfaces to the caller.
package simplefeeds
