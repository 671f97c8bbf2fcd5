package cli

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/repository/firestore"
)

func TestIndexConfigCollections(t *testing.T) {
	t.Run("unprefixed names match the repository collections", func(t *testing.T) {
		cfg := getIndexConfig("")

		var names []string
		for _, col := range cfg.Collections {
			names = append(names, col.Name)
		}
		gt.Value(t, names).Equal([]string{
			"appointments",
			"notification_history",
			"check_history",
		})
	})

	t.Run("prefixed names follow the repository convention", func(t *testing.T) {
		cfg := getIndexConfig("staging")

		for i, base := range []string{"appointments", "notification_history", "check_history"} {
			gt.Value(t, cfg.Collections[i].Name).Equal(firestore.CollectionName("staging", base))
		}
		gt.Value(t, cfg.Collections[0].Name).Equal("staging_appointments")
	})
}

func TestCollectionName(t *testing.T) {
	gt.Value(t, firestore.CollectionName("", "appointments")).Equal("appointments")
	gt.Value(t, firestore.CollectionName("test_123", "appointments")).Equal("test_123_appointments")
}
