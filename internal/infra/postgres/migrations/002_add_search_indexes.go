package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// addSearchIndexes adds trigram indexes so the ILIKE '%q%' candidate
// queries stay fast as the tables grow. Requires the pg_trgm extension;
// index creation is best-effort so the service still runs on databases
// where the extension cannot be installed (queries fall back to a
// sequential scan).
func addSearchIndexes() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_add_search_indexes",
		Migrate: func(tx *gorm.DB) error {
			// Best-effort: needs superuser on some managed databases
			_ = tx.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm;").Error

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_profiles_username_trgm ON profiles USING GIN (username gin_trgm_ops);",
				"CREATE INDEX IF NOT EXISTS idx_profiles_full_name_trgm ON profiles USING GIN (full_name gin_trgm_ops);",
				"CREATE INDEX IF NOT EXISTS idx_posts_title_trgm ON posts USING GIN (title gin_trgm_ops);",
				"CREATE INDEX IF NOT EXISTS idx_videos_title_trgm ON videos USING GIN (title gin_trgm_ops);",
			}

			for _, idx := range indexes {
				// Ignore error if pg_trgm is unavailable
				_ = tx.Exec(idx).Error
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			drops := []string{
				"DROP INDEX IF EXISTS idx_profiles_username_trgm;",
				"DROP INDEX IF EXISTS idx_profiles_full_name_trgm;",
				"DROP INDEX IF EXISTS idx_posts_title_trgm;",
				"DROP INDEX IF EXISTS idx_videos_title_trgm;",
			}
			for _, d := range drops {
				_ = tx.Exec(d).Error
			}
			return nil
		},
	}
}
