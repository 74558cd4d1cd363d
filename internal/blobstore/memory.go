package blobstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStorage keeps containers and blobs in process memory. It is safe for
// concurrent use and intended for tests and short-lived tooling runs.
type MemoryStorage struct {
	mutex      sync.RWMutex
	containers map[string]map[string][]byte
}

// NewMemoryStorage builds an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{containers: map[string]map[string][]byte{}}
}

// CreateContainer registers an empty container.
func (storage *MemoryStorage) CreateContainer(_ context.Context, containerName string) error {
	if validationError := ValidateContainerName(containerName); validationError != nil {
		return validationError
	}

	storage.mutex.Lock()
	defer storage.mutex.Unlock()

	if _, containerExists := storage.containers[containerName]; containerExists {
		return ErrContainerAlreadyExists
	}
	storage.containers[containerName] = map[string][]byte{}
	return nil
}

// DeleteContainer removes a container and every blob it holds.
func (storage *MemoryStorage) DeleteContainer(_ context.Context, containerName string) error {
	storage.mutex.Lock()
	defer storage.mutex.Unlock()

	if _, containerExists := storage.containers[containerName]; !containerExists {
		return ErrContainerNotFound
	}
	delete(storage.containers, containerName)
	return nil
}

// ContainerExists reports whether the container is registered.
func (storage *MemoryStorage) ContainerExists(_ context.Context, containerName string) (bool, error) {
	storage.mutex.RLock()
	defer storage.mutex.RUnlock()

	_, containerExists := storage.containers[containerName]
	return containerExists, nil
}

// SetBlobContents writes a blob, overwriting existing contents.
func (storage *MemoryStorage) SetBlobContents(_ context.Context, path BlobPath, contents []byte) error {
	if validationError := path.Validate(); validationError != nil {
		return validationError
	}

	storage.mutex.Lock()
	defer storage.mutex.Unlock()

	containerBlobs, containerExists := storage.containers[path.ContainerName]
	if !containerExists {
		return ErrContainerNotFound
	}
	storedContents := make([]byte, len(contents))
	copy(storedContents, contents)
	containerBlobs[path.BlobName] = storedContents
	return nil
}

// GetBlobContents reads a blob's contents.
func (storage *MemoryStorage) GetBlobContents(_ context.Context, path BlobPath) ([]byte, error) {
	if validationError := path.Validate(); validationError != nil {
		return nil, validationError
	}

	storage.mutex.RLock()
	defer storage.mutex.RUnlock()

	containerBlobs, containerExists := storage.containers[path.ContainerName]
	if !containerExists {
		return nil, ErrContainerNotFound
	}
	blobContents, blobExists := containerBlobs[path.BlobName]
	if !blobExists {
		return nil, ErrBlobNotFound
	}
	returnedContents := make([]byte, len(blobContents))
	copy(returnedContents, blobContents)
	return returnedContents, nil
}

// BlobExists reports whether the blob is stored.
func (storage *MemoryStorage) BlobExists(_ context.Context, path BlobPath) (bool, error) {
	if validationError := path.Validate(); validationError != nil {
		return false, validationError
	}

	storage.mutex.RLock()
	defer storage.mutex.RUnlock()

	containerBlobs, containerExists := storage.containers[path.ContainerName]
	if !containerExists {
		return false, nil
	}
	_, blobExists := containerBlobs[path.BlobName]
	return blobExists, nil
}

// DeleteBlob removes a blob.
func (storage *MemoryStorage) DeleteBlob(_ context.Context, path BlobPath) error {
	if validationError := path.Validate(); validationError != nil {
		return validationError
	}

	storage.mutex.Lock()
	defer storage.mutex.Unlock()

	containerBlobs, containerExists := storage.containers[path.ContainerName]
	if !containerExists {
		return ErrContainerNotFound
	}
	if _, blobExists := containerBlobs[path.BlobName]; !blobExists {
		return ErrBlobNotFound
	}
	delete(containerBlobs, path.BlobName)
	return nil
}

// ListBlobs returns the sorted blob names in a container matching the prefix.
func (storage *MemoryStorage) ListBlobs(_ context.Context, containerName string, blobNamePrefix string) ([]string, error) {
	storage.mutex.RLock()
	defer storage.mutex.RUnlock()

	containerBlobs, containerExists := storage.containers[containerName]
	if !containerExists {
		return nil, ErrContainerNotFound
	}

	blobNames := make([]string, 0, len(containerBlobs))
	for blobName := range containerBlobs {
		if strings.HasPrefix(blobName, blobNamePrefix) {
			blobNames = append(blobNames, blobName)
		}
	}
	sort.Strings(blobNames)
	return blobNames, nil
}
