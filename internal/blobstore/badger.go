package blobstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const (
	containerKeyPrefixConstant       = "container:"
	blobKeyPrefixConstant            = "blob:"
	blobKeySeparatorConstant         = ":"
	openDatabaseFailedTemplate       = "failed to open blob database: %w"
	createContainerFailedTemplate    = "failed to create container %q: %w"
	deleteContainerFailedTemplate    = "failed to delete container %q: %w"
	inspectContainerFailedTemplate   = "failed to inspect container %q: %w"
	writeBlobFailedTemplateConstant  = "failed to write blob %q: %w"
	readBlobFailedTemplateConstant   = "failed to read blob %q: %w"
	deleteBlobFailedTemplateConstant = "failed to delete blob %q: %w"
	listBlobsFailedTemplateConstant  = "failed to list blobs in container %q: %w"
)

// BadgerStorage persists containers and blobs in a local Badger database.
type BadgerStorage struct {
	database *badger.DB
}

// OpenBadgerStorage opens (or creates) a Badger-backed store at the provided
// directory. Logging from the embedded database is disabled; the caller owns
// process logging.
func OpenBadgerStorage(databaseDirectory string) (*BadgerStorage, error) {
	databaseOptions := badger.DefaultOptions(databaseDirectory).WithLogger(nil)
	database, openError := badger.Open(databaseOptions)
	if openError != nil {
		return nil, fmt.Errorf(openDatabaseFailedTemplate, openError)
	}
	return &BadgerStorage{database: database}, nil
}

// NewBadgerStorage wraps an already opened database.
func NewBadgerStorage(database *badger.DB) *BadgerStorage {
	return &BadgerStorage{database: database}
}

// Close releases the underlying database.
func (storage *BadgerStorage) Close() error {
	return storage.database.Close()
}

func containerKey(containerName string) []byte {
	return []byte(containerKeyPrefixConstant + containerName)
}

func blobKey(path BlobPath) []byte {
	return []byte(blobKeyPrefixConstant + path.ContainerName + blobKeySeparatorConstant + path.BlobName)
}

func containerBlobPrefix(containerName string) []byte {
	return []byte(blobKeyPrefixConstant + containerName + blobKeySeparatorConstant)
}

func keyExists(transaction *badger.Txn, key []byte) (bool, error) {
	_, getError := transaction.Get(key)
	if getError == nil {
		return true, nil
	}
	if errors.Is(getError, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, getError
}

// CreateContainer registers an empty container.
func (storage *BadgerStorage) CreateContainer(_ context.Context, containerName string) error {
	if validationError := ValidateContainerName(containerName); validationError != nil {
		return validationError
	}

	updateError := storage.database.Update(func(transaction *badger.Txn) error {
		containerExists, existenceError := keyExists(transaction, containerKey(containerName))
		if existenceError != nil {
			return existenceError
		}
		if containerExists {
			return ErrContainerAlreadyExists
		}
		return transaction.Set(containerKey(containerName), []byte{})
	})
	if updateError != nil {
		if errors.Is(updateError, ErrContainerAlreadyExists) {
			return updateError
		}
		return fmt.Errorf(createContainerFailedTemplate, containerName, updateError)
	}
	return nil
}

// DeleteContainer removes a container and every blob it holds.
func (storage *BadgerStorage) DeleteContainer(_ context.Context, containerName string) error {
	updateError := storage.database.Update(func(transaction *badger.Txn) error {
		containerExists, existenceError := keyExists(transaction, containerKey(containerName))
		if existenceError != nil {
			return existenceError
		}
		if !containerExists {
			return ErrContainerNotFound
		}

		iteratorOptions := badger.DefaultIteratorOptions
		iteratorOptions.PrefetchValues = false
		blobIterator := transaction.NewIterator(iteratorOptions)
		defer blobIterator.Close()

		keyPrefix := containerBlobPrefix(containerName)
		blobKeys := [][]byte{}
		for blobIterator.Seek(keyPrefix); blobIterator.ValidForPrefix(keyPrefix); blobIterator.Next() {
			blobKeys = append(blobKeys, blobIterator.Item().KeyCopy(nil))
		}
		for _, storedKey := range blobKeys {
			if deleteError := transaction.Delete(storedKey); deleteError != nil {
				return deleteError
			}
		}
		return transaction.Delete(containerKey(containerName))
	})
	if updateError != nil {
		if errors.Is(updateError, ErrContainerNotFound) {
			return updateError
		}
		return fmt.Errorf(deleteContainerFailedTemplate, containerName, updateError)
	}
	return nil
}

// ContainerExists reports whether the container is registered.
func (storage *BadgerStorage) ContainerExists(_ context.Context, containerName string) (bool, error) {
	containerExists := false
	viewError := storage.database.View(func(transaction *badger.Txn) error {
		exists, existenceError := keyExists(transaction, containerKey(containerName))
		containerExists = exists
		return existenceError
	})
	if viewError != nil {
		return false, fmt.Errorf(inspectContainerFailedTemplate, containerName, viewError)
	}
	return containerExists, nil
}

// SetBlobContents writes a blob, overwriting existing contents.
func (storage *BadgerStorage) SetBlobContents(_ context.Context, path BlobPath, contents []byte) error {
	if validationError := path.Validate(); validationError != nil {
		return validationError
	}

	updateError := storage.database.Update(func(transaction *badger.Txn) error {
		containerExists, existenceError := keyExists(transaction, containerKey(path.ContainerName))
		if existenceError != nil {
			return existenceError
		}
		if !containerExists {
			return ErrContainerNotFound
		}
		return transaction.Set(blobKey(path), contents)
	})
	if updateError != nil {
		if errors.Is(updateError, ErrContainerNotFound) {
			return updateError
		}
		return fmt.Errorf(writeBlobFailedTemplateConstant, path.BlobName, updateError)
	}
	return nil
}

// GetBlobContents reads a blob's contents.
func (storage *BadgerStorage) GetBlobContents(_ context.Context, path BlobPath) ([]byte, error) {
	if validationError := path.Validate(); validationError != nil {
		return nil, validationError
	}

	var blobContents []byte
	viewError := storage.database.View(func(transaction *badger.Txn) error {
		containerExists, existenceError := keyExists(transaction, containerKey(path.ContainerName))
		if existenceError != nil {
			return existenceError
		}
		if !containerExists {
			return ErrContainerNotFound
		}

		storedItem, getError := transaction.Get(blobKey(path))
		if errors.Is(getError, badger.ErrKeyNotFound) {
			return ErrBlobNotFound
		}
		if getError != nil {
			return getError
		}
		copiedContents, copyError := storedItem.ValueCopy(nil)
		if copyError != nil {
			return copyError
		}
		blobContents = copiedContents
		return nil
	})
	if viewError != nil {
		if errors.Is(viewError, ErrContainerNotFound) || errors.Is(viewError, ErrBlobNotFound) {
			return nil, viewError
		}
		return nil, fmt.Errorf(readBlobFailedTemplateConstant, path.BlobName, viewError)
	}
	return blobContents, nil
}

// BlobExists reports whether the blob is stored.
func (storage *BadgerStorage) BlobExists(_ context.Context, path BlobPath) (bool, error) {
	if validationError := path.Validate(); validationError != nil {
		return false, validationError
	}

	blobExists := false
	viewError := storage.database.View(func(transaction *badger.Txn) error {
		exists, existenceError := keyExists(transaction, blobKey(path))
		blobExists = exists
		return existenceError
	})
	if viewError != nil {
		return false, fmt.Errorf(readBlobFailedTemplateConstant, path.BlobName, viewError)
	}
	return blobExists, nil
}

// DeleteBlob removes a blob.
func (storage *BadgerStorage) DeleteBlob(_ context.Context, path BlobPath) error {
	if validationError := path.Validate(); validationError != nil {
		return validationError
	}

	updateError := storage.database.Update(func(transaction *badger.Txn) error {
		containerExists, existenceError := keyExists(transaction, containerKey(path.ContainerName))
		if existenceError != nil {
			return existenceError
		}
		if !containerExists {
			return ErrContainerNotFound
		}

		blobStored, blobExistenceError := keyExists(transaction, blobKey(path))
		if blobExistenceError != nil {
			return blobExistenceError
		}
		if !blobStored {
			return ErrBlobNotFound
		}
		return transaction.Delete(blobKey(path))
	})
	if updateError != nil {
		if errors.Is(updateError, ErrContainerNotFound) || errors.Is(updateError, ErrBlobNotFound) {
			return updateError
		}
		return fmt.Errorf(deleteBlobFailedTemplateConstant, path.BlobName, updateError)
	}
	return nil
}

// ListBlobs returns the sorted blob names in a container matching the prefix.
func (storage *BadgerStorage) ListBlobs(_ context.Context, containerName string, blobNamePrefix string) ([]string, error) {
	blobNames := []string{}
	viewError := storage.database.View(func(transaction *badger.Txn) error {
		containerExists, existenceError := keyExists(transaction, containerKey(containerName))
		if existenceError != nil {
			return existenceError
		}
		if !containerExists {
			return ErrContainerNotFound
		}

		iteratorOptions := badger.DefaultIteratorOptions
		iteratorOptions.PrefetchValues = false
		blobIterator := transaction.NewIterator(iteratorOptions)
		defer blobIterator.Close()

		keyPrefix := containerBlobPrefix(containerName)
		for blobIterator.Seek(keyPrefix); blobIterator.ValidForPrefix(keyPrefix); blobIterator.Next() {
			storedKey := string(blobIterator.Item().Key())
			blobName := strings.TrimPrefix(storedKey, string(keyPrefix))
			if strings.HasPrefix(blobName, blobNamePrefix) {
				blobNames = append(blobNames, blobName)
			}
		}
		return nil
	})
	if viewError != nil {
		if errors.Is(viewError, ErrContainerNotFound) {
			return nil, viewError
		}
		return nil, fmt.Errorf(listBlobsFailedTemplateConstant, containerName, viewError)
	}
	return blobNames, nil
}
