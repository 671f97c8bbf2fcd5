package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/domain/interfaces"
	"github.com/secmon-lab/argus/pkg/repository/firestore"
	"github.com/secmon-lab/argus/pkg/repository/memory"
)

// runWithBackends runs the same repository test suite against the memory
// backend always and the firestore backend when test credentials are set.
func runWithBackends(t *testing.T, fn func(t *testing.T, newRepo func(t *testing.T) interfaces.Repository)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, func(t *testing.T) interfaces.Repository {
			return memory.New()
		})
	})

	t.Run("firestore", func(t *testing.T) {
		projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
		if projectID == "" {
			t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
		}
		databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

		fn(t, func(t *testing.T) interfaces.Repository {
			repo, err := firestore.New(context.Background(), projectID, databaseID,
				firestore.WithCollectionPrefix(fmt.Sprintf("test_%d", time.Now().UnixNano())))
			gt.NoError(t, err).Required()
			t.Cleanup(func() {
				if err := repo.Close(); err != nil {
					t.Logf("failed to close firestore repository: %v", err)
				}
			})
			return repo
		})
	})
}
