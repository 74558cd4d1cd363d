// Package blobstore abstracts container and blob storage behind a single
// interface with in-memory and local disk backends.
package blobstore
