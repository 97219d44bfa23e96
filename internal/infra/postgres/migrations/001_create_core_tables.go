package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createCoreTables creates the profiles, posts, videos, follows and
// likes tables with their indexes.
func createCoreTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_core_tables",
		Migrate: func(tx *gorm.DB) error {
			tables := []string{
				`
				CREATE TABLE IF NOT EXISTS profiles (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					username VARCHAR(50) NOT NULL,
					full_name VARCHAR(100),
					avatar_url VARCHAR(500),
					bio TEXT,
					followers_count INTEGER DEFAULT 0,
					game_preferences TEXT[],

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT uq_profiles_username UNIQUE (username)
				);
				`,
				`
				CREATE TABLE IF NOT EXISTS posts (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					author_id UUID NOT NULL REFERENCES profiles(id),
					title VARCHAR(500) NOT NULL,
					description TEXT,
					slug VARCHAR(200),
					thumbnail_url VARCHAR(500),
					game VARCHAR(100),
					mode VARCHAR(50),

					-- Engagement counters
					view_count INTEGER DEFAULT 0,
					like_count INTEGER DEFAULT 0,
					comment_count INTEGER DEFAULT 0,

					visibility VARCHAR(20) NOT NULL DEFAULT 'public',
					moderation_status VARCHAR(20) NOT NULL DEFAULT 'pending',
					trending_score DECIMAL(14,4) DEFAULT 0,

					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT uq_posts_slug UNIQUE (slug)
				);
				`,
				`
				CREATE TABLE IF NOT EXISTS videos (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					author_id UUID REFERENCES profiles(id),
					provider_id VARCHAR(50) NOT NULL DEFAULT 'native',
					external_id VARCHAR(100) NOT NULL DEFAULT gen_random_uuid(),
					title VARCHAR(500) NOT NULL,
					description TEXT,
					slug VARCHAR(200),
					thumbnail_url VARCHAR(500),
					video_url VARCHAR(500),
					game VARCHAR(100),
					mode VARCHAR(50),

					duration_seconds INTEGER DEFAULT 0,
					watch_time_seconds DECIMAL(14,2) DEFAULT 0,
					view_count INTEGER DEFAULT 0,
					like_count INTEGER DEFAULT 0,
					comment_count INTEGER DEFAULT 0,

					visibility VARCHAR(20) NOT NULL DEFAULT 'public',
					moderation_status VARCHAR(20) NOT NULL DEFAULT 'pending',
					trending_score DECIMAL(14,4) DEFAULT 0,

					published_at TIMESTAMP NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					-- Unique constraint for highlight upsert
					CONSTRAINT uq_videos_provider_external UNIQUE (provider_id, external_id),
					CONSTRAINT uq_videos_slug UNIQUE (slug)
				);
				`,
				`
				CREATE TABLE IF NOT EXISTS follows (
					follower_id UUID NOT NULL REFERENCES profiles(id),
					followed_id UUID NOT NULL REFERENCES profiles(id),
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					PRIMARY KEY (follower_id, followed_id)
				);
				`,
				`
				CREATE TABLE IF NOT EXISTS likes (
					user_id UUID NOT NULL REFERENCES profiles(id),
					item_id UUID NOT NULL,
					item_kind VARCHAR(10) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					PRIMARY KEY (user_id, item_id)
				);
				`,
			}

			for _, ddl := range tables {
				if err := tx.Exec(ddl).Error; err != nil {
					return err
				}
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);",
				"CREATE INDEX IF NOT EXISTS idx_posts_game ON posts(game);",
				"CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_posts_trending_score ON posts(trending_score DESC);",
				"CREATE INDEX IF NOT EXISTS idx_posts_moderation ON posts(moderation_status);",
				"CREATE INDEX IF NOT EXISTS idx_videos_author_id ON videos(author_id);",
				"CREATE INDEX IF NOT EXISTS idx_videos_game ON videos(game);",
				"CREATE INDEX IF NOT EXISTS idx_videos_published_at ON videos(published_at DESC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_trending_score ON videos(trending_score DESC);",
				"CREATE INDEX IF NOT EXISTS idx_videos_moderation ON videos(moderation_status);",
				"CREATE INDEX IF NOT EXISTS idx_follows_followed_id ON follows(followed_id);",
				"CREATE INDEX IF NOT EXISTS idx_likes_item_id ON likes(item_id);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			for _, table := range []string{"likes", "follows", "videos", "posts", "profiles"} {
				if err := tx.Exec("DROP TABLE IF EXISTS " + table + ";").Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
