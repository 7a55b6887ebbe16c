package app_config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAppConfigMissingFileUsesDefaults(t *testing.T) {
	c, err := ParseAppConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultAppConfig(), c)
	require.Equal(t, 5, c.DEFAULT_FEED_LIMIT)
	require.Equal(t, 10, c.DEFAULT_ALL_POSTS_LIMIT)
}

func TestParseAppConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("DEFAULT_FEED_LIMIT: 7\nTOKEN_STORE: redis\n"), 0o644))

	c, err := ParseAppConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, c.DEFAULT_FEED_LIMIT)
	require.Equal(t, TokenStoreRedis, c.TOKEN_STORE)
	require.Equal(t, 50, c.MAX_PAGE_LIMIT)
}

func TestParseAppConfigRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("MAX_PAGE_LIMIT: 0\n"), 0o644))
	_, err := ParseAppConfig(path)
	require.Error(t, err)

	require.NoError(t, ioutil.WriteFile(path, []byte("FILE_STORE: ftp\n"), 0o644))
	_, err = ParseAppConfig(path)
	require.Error(t, err)
}
