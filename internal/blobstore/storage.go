package blobstore

import (
	"context"
	"errors"
	"strings"
)

const (
	containerNotFoundMessageConstant        = "container not found"
	containerAlreadyExistsMessageConstant   = "container already exists"
	blobNotFoundMessageConstant             = "blob not found"
	emptyContainerNameMessageConstant       = "container name must not be empty"
	emptyBlobNameMessageConstant            = "blob name must not be empty"
	invalidContainerNameMessageConstant     = "container name must not contain ':'"
	containerNameForbiddenCharacterConstant = ":"
)

// ErrContainerNotFound indicates an operation referenced a container that
// does not exist.
var ErrContainerNotFound = errors.New(containerNotFoundMessageConstant)

// ErrContainerAlreadyExists indicates creation of a container that exists.
var ErrContainerAlreadyExists = errors.New(containerAlreadyExistsMessageConstant)

// ErrBlobNotFound indicates an operation referenced a blob that does not
// exist.
var ErrBlobNotFound = errors.New(blobNotFoundMessageConstant)

// ErrEmptyContainerName indicates a blank container name.
var ErrEmptyContainerName = errors.New(emptyContainerNameMessageConstant)

// ErrEmptyBlobName indicates a blank blob name.
var ErrEmptyBlobName = errors.New(emptyBlobNameMessageConstant)

// ErrInvalidContainerName indicates a container name containing the reserved
// key separator.
var ErrInvalidContainerName = errors.New(invalidContainerNameMessageConstant)

// ValidateContainerName rejects blank names and names containing the
// reserved separator, which would let one container's blob keys collide
// with another's.
func ValidateContainerName(containerName string) error {
	if len(containerName) == 0 {
		return ErrEmptyContainerName
	}
	if strings.Contains(containerName, containerNameForbiddenCharacterConstant) {
		return ErrInvalidContainerName
	}
	return nil
}

// BlobPath names a blob within a container.
type BlobPath struct {
	ContainerName string
	BlobName      string
}

// Validate reports whether both path segments are present and the container
// name is well formed.
func (path BlobPath) Validate() error {
	if validationError := ValidateContainerName(path.ContainerName); validationError != nil {
		return validationError
	}
	if len(path.BlobName) == 0 {
		return ErrEmptyBlobName
	}
	return nil
}

// BlobStorage stores named byte blobs grouped into containers.
//
// Deleting a container removes every blob it holds. Writing a blob into a
// container that does not exist fails with ErrContainerNotFound; callers
// create containers explicitly.
type BlobStorage interface {
	CreateContainer(executionContext context.Context, containerName string) error
	DeleteContainer(executionContext context.Context, containerName string) error
	ContainerExists(executionContext context.Context, containerName string) (bool, error)
	SetBlobContents(executionContext context.Context, path BlobPath, contents []byte) error
	GetBlobContents(executionContext context.Context, path BlobPath) ([]byte, error)
	BlobExists(executionContext context.Context, path BlobPath) (bool, error)
	DeleteBlob(executionContext context.Context, path BlobPath) error
	ListBlobs(executionContext context.Context, containerName string, blobNamePrefix string) ([]string, error)
}
