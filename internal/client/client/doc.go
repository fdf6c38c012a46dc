// Package client contains the client-side building blocks that reach
// outside the process.
//
// # Overview
//
//  1. The ImageGenerator contract and its REST implementation, ImagenClient,
//     which sends one prediction request per call and returns the image as
//     a base64 data URI.
//  2. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Generation failures are exposed as sentinel errors matched with errors.Is:
// ErrMissingAPIKey, ErrNoImages, ErrAPI. Transport errors are wrapped and
// returned as is; there are no retries.
package client
