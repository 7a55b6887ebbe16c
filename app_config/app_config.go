package app_config

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	TokenStoreDB    = "db"
	TokenStoreRedis = "redis"

	FileStoreLocal = "local"
	FileStoreS3    = "s3"
)

// AppConfig holds the tunables of the api server. Secrets and connection
// endpoints live in env files instead.
type AppConfig struct {
	// Page size used by the home feed when the client doesn't send one.
	DEFAULT_FEED_LIMIT int `yaml:"DEFAULT_FEED_LIMIT"`
	// Page size used by the unrestricted explore listing.
	DEFAULT_ALL_POSTS_LIMIT int `yaml:"DEFAULT_ALL_POSTS_LIMIT"`
	DEFAULT_COMMENT_LIMIT   int `yaml:"DEFAULT_COMMENT_LIMIT"`
	// Page size used by a single user's post listing on the profile page.
	DEFAULT_USER_POSTS_LIMIT int `yaml:"DEFAULT_USER_POSTS_LIMIT"`
	// Any requested limit above this value is capped.
	MAX_PAGE_LIMIT int `yaml:"MAX_PAGE_LIMIT"`
	// Max number of characters (runes) of a post or a comment.
	MAX_CONTENT_LENGTH int `yaml:"MAX_CONTENT_LENGTH"`
	TOKEN_TTL_HOURS    int `yaml:"TOKEN_TTL_HOURS"`
	// "db" or "redis"
	TOKEN_STORE string `yaml:"TOKEN_STORE"`
	// "local" or "s3"
	FILE_STORE                string `yaml:"FILE_STORE"`
	UPLOAD_DIR                string `yaml:"UPLOAD_DIR"`
	MAX_PROFILE_PICTURE_BYTES int64  `yaml:"MAX_PROFILE_PICTURE_BYTES"`
}

// DefaultAppConfig returns the config used when no file is provided.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DEFAULT_FEED_LIMIT:        5,
		DEFAULT_ALL_POSTS_LIMIT:   10,
		DEFAULT_COMMENT_LIMIT:     5,
		DEFAULT_USER_POSTS_LIMIT:  5,
		MAX_PAGE_LIMIT:            50,
		MAX_CONTENT_LENGTH:        500,
		TOKEN_TTL_HOURS:           24 * 30,
		TOKEN_STORE:               TokenStoreDB,
		FILE_STORE:                FileStoreLocal,
		UPLOAD_DIR:                "public/uploads",
		MAX_PROFILE_PICTURE_BYTES: 2 << 20,
	}
}

// ParseAppConfig reads the yaml file at path on top of the defaults. A missing
// file is not an error, every key keeps its default value.
func ParseAppConfig(path string) (AppConfig, error) {
	c := DefaultAppConfig()
	if path == "" {
		return c, nil
	}
	yamlFile, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, errors.Wrap(err, "read app config")
	}
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, errors.Wrap(err, "unmarshal app config")
	}
	return c, c.Validate()
}

// Validate rejects values the server can't run with.
func (c AppConfig) Validate() error {
	for name, v := range map[string]int{
		"DEFAULT_FEED_LIMIT":       c.DEFAULT_FEED_LIMIT,
		"DEFAULT_ALL_POSTS_LIMIT":  c.DEFAULT_ALL_POSTS_LIMIT,
		"DEFAULT_COMMENT_LIMIT":    c.DEFAULT_COMMENT_LIMIT,
		"DEFAULT_USER_POSTS_LIMIT": c.DEFAULT_USER_POSTS_LIMIT,
		"MAX_PAGE_LIMIT":           c.MAX_PAGE_LIMIT,
		"MAX_CONTENT_LENGTH":       c.MAX_CONTENT_LENGTH,
		"TOKEN_TTL_HOURS":          c.TOKEN_TTL_HOURS,
	} {
		if v <= 0 {
			return errors.Errorf("%s should be > 0, got %d", name, v)
		}
	}
	if c.TOKEN_STORE != TokenStoreDB && c.TOKEN_STORE != TokenStoreRedis {
		return errors.Errorf("unknown TOKEN_STORE %q", c.TOKEN_STORE)
	}
	if c.FILE_STORE != FileStoreLocal && c.FILE_STORE != FileStoreS3 {
		return errors.Errorf("unknown FILE_STORE %q", c.FILE_STORE)
	}
	return nil
}
