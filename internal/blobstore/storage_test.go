package blobstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NullMDR/azure-js-dev-tools/internal/blobstore"
)

const (
	memoryBackendNameConstant  = "memory"
	badgerBackendNameConstant  = "badger"
	testContainerNameConstant  = "build-artifacts"
	otherContainerNameConstant = "release-artifacts"
	testBlobNameConstant       = "logs/run-output.txt"
	otherBlobNameConstant      = "packages/tooling.tgz"
	testBlobContentsConstant   = "example blob contents"
)

type storageFactory func(testInstance *testing.T) blobstore.BlobStorage

func storageBackends(testInstance *testing.T) map[string]storageFactory {
	return map[string]storageFactory{
		memoryBackendNameConstant: func(subtestInstance *testing.T) blobstore.BlobStorage {
			return blobstore.NewMemoryStorage()
		},
		badgerBackendNameConstant: func(subtestInstance *testing.T) blobstore.BlobStorage {
			storage, openError := blobstore.OpenBadgerStorage(subtestInstance.TempDir())
			require.NoError(subtestInstance, openError)
			subtestInstance.Cleanup(func() {
				require.NoError(subtestInstance, storage.Close())
			})
			return storage
		},
	}
}

func testBlobPath() blobstore.BlobPath {
	return blobstore.BlobPath{ContainerName: testContainerNameConstant, BlobName: testBlobNameConstant}
}

func TestContainerLifecycle(testInstance *testing.T) {
	for backendName, newStorage := range storageBackends(testInstance) {
		testInstance.Run(backendName, func(subtestInstance *testing.T) {
			storage := newStorage(subtestInstance)
			executionContext := context.Background()

			containerExists, existenceError := storage.ContainerExists(executionContext, testContainerNameConstant)
			require.NoError(subtestInstance, existenceError)
			require.False(subtestInstance, containerExists)

			require.NoError(subtestInstance, storage.CreateContainer(executionContext, testContainerNameConstant))
			require.ErrorIs(subtestInstance,
				storage.CreateContainer(executionContext, testContainerNameConstant),
				blobstore.ErrContainerAlreadyExists)

			containerExists, existenceError = storage.ContainerExists(executionContext, testContainerNameConstant)
			require.NoError(subtestInstance, existenceError)
			require.True(subtestInstance, containerExists)

			require.NoError(subtestInstance, storage.DeleteContainer(executionContext, testContainerNameConstant))
			require.ErrorIs(subtestInstance,
				storage.DeleteContainer(executionContext, testContainerNameConstant),
				blobstore.ErrContainerNotFound)
		})
	}
}

func TestBlobLifecycle(testInstance *testing.T) {
	for backendName, newStorage := range storageBackends(testInstance) {
		testInstance.Run(backendName, func(subtestInstance *testing.T) {
			storage := newStorage(subtestInstance)
			executionContext := context.Background()

			require.ErrorIs(subtestInstance,
				storage.SetBlobContents(executionContext, testBlobPath(), []byte(testBlobContentsConstant)),
				blobstore.ErrContainerNotFound)

			require.NoError(subtestInstance, storage.CreateContainer(executionContext, testContainerNameConstant))
			require.NoError(subtestInstance, storage.SetBlobContents(executionContext, testBlobPath(), []byte(testBlobContentsConstant)))

			blobExists, existenceError := storage.BlobExists(executionContext, testBlobPath())
			require.NoError(subtestInstance, existenceError)
			require.True(subtestInstance, blobExists)

			blobContents, readError := storage.GetBlobContents(executionContext, testBlobPath())
			require.NoError(subtestInstance, readError)
			require.Equal(subtestInstance, []byte(testBlobContentsConstant), blobContents)

			require.NoError(subtestInstance, storage.DeleteBlob(executionContext, testBlobPath()))
			require.ErrorIs(subtestInstance,
				storage.DeleteBlob(executionContext, testBlobPath()),
				blobstore.ErrBlobNotFound)

			_, readError = storage.GetBlobContents(executionContext, testBlobPath())
			require.ErrorIs(subtestInstance, readError, blobstore.ErrBlobNotFound)
		})
	}
}

func TestBlobOverwriteReplacesContents(testInstance *testing.T) {
	for backendName, newStorage := range storageBackends(testInstance) {
		testInstance.Run(backendName, func(subtestInstance *testing.T) {
			storage := newStorage(subtestInstance)
			executionContext := context.Background()

			require.NoError(subtestInstance, storage.CreateContainer(executionContext, testContainerNameConstant))
			require.NoError(subtestInstance, storage.SetBlobContents(executionContext, testBlobPath(), []byte("first")))
			require.NoError(subtestInstance, storage.SetBlobContents(executionContext, testBlobPath(), []byte("second")))

			blobContents, readError := storage.GetBlobContents(executionContext, testBlobPath())
			require.NoError(subtestInstance, readError)
			require.Equal(subtestInstance, []byte("second"), blobContents)
		})
	}
}

func TestListBlobsFiltersByPrefix(testInstance *testing.T) {
	for backendName, newStorage := range storageBackends(testInstance) {
		testInstance.Run(backendName, func(subtestInstance *testing.T) {
			storage := newStorage(subtestInstance)
			executionContext := context.Background()

			require.NoError(subtestInstance, storage.CreateContainer(executionContext, testContainerNameConstant))
			require.NoError(subtestInstance, storage.SetBlobContents(executionContext, testBlobPath(), []byte(testBlobContentsConstant)))
			require.NoError(subtestInstance, storage.SetBlobContents(executionContext,
				blobstore.BlobPath{ContainerName: testContainerNameConstant, BlobName: otherBlobNameConstant},
				[]byte(testBlobContentsConstant)))

			allBlobNames, listError := storage.ListBlobs(executionContext, testContainerNameConstant, "")
			require.NoError(subtestInstance, listError)
			require.Equal(subtestInstance, []string{testBlobNameConstant, otherBlobNameConstant}, allBlobNames)

			logBlobNames, listError := storage.ListBlobs(executionContext, testContainerNameConstant, "logs/")
			require.NoError(subtestInstance, listError)
			require.Equal(subtestInstance, []string{testBlobNameConstant}, logBlobNames)

			_, listError = storage.ListBlobs(executionContext, otherContainerNameConstant, "")
			require.ErrorIs(subtestInstance, listError, blobstore.ErrContainerNotFound)
		})
	}
}

func TestDeleteContainerRemovesContainedBlobs(testInstance *testing.T) {
	for backendName, newStorage := range storageBackends(testInstance) {
		testInstance.Run(backendName, func(subtestInstance *testing.T) {
			storage := newStorage(subtestInstance)
			executionContext := context.Background()

			require.NoError(subtestInstance, storage.CreateContainer(executionContext, testContainerNameConstant))
			require.NoError(subtestInstance, storage.SetBlobContents(executionContext, testBlobPath(), []byte(testBlobContentsConstant)))
			require.NoError(subtestInstance, storage.DeleteContainer(executionContext, testContainerNameConstant))

			require.NoError(subtestInstance, storage.CreateContainer(executionContext, testContainerNameConstant))
			blobExists, existenceError := storage.BlobExists(executionContext, testBlobPath())
			require.NoError(subtestInstance, existenceError)
			require.False(subtestInstance, blobExists)
		})
	}
}

func TestBlobPathValidation(testInstance *testing.T) {
	require.ErrorIs(testInstance,
		blobstore.BlobPath{BlobName: testBlobNameConstant}.Validate(),
		blobstore.ErrEmptyContainerName)
	require.ErrorIs(testInstance,
		blobstore.BlobPath{ContainerName: testContainerNameConstant}.Validate(),
		blobstore.ErrEmptyBlobName)
	require.ErrorIs(testInstance,
		blobstore.BlobPath{ContainerName: "build:artifacts", BlobName: testBlobNameConstant}.Validate(),
		blobstore.ErrInvalidContainerName)
	require.NoError(testInstance, testBlobPath().Validate())
}

func TestCreateContainerRejectsSeparatorInName(testInstance *testing.T) {
	for backendName, newStorage := range storageBackends(testInstance) {
		testInstance.Run(backendName, func(subtestInstance *testing.T) {
			storage := newStorage(subtestInstance)
			executionContext := context.Background()

			require.ErrorIs(subtestInstance,
				storage.CreateContainer(executionContext, "build:artifacts"),
				blobstore.ErrInvalidContainerName)

			containerExists, existenceError := storage.ContainerExists(executionContext, "build:artifacts")
			require.NoError(subtestInstance, existenceError)
			require.False(subtestInstance, containerExists)
		})
	}
}
