package resolver

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Luismorlan/socialmux/app_config"
	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/server/auth"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/Luismorlan/socialmux/utils/dotenv"
	"github.com/Luismorlan/socialmux/utils/file_store"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func PrepareTestResolver(t *testing.T) *Resolver {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	issuer, err := auth.NewIssuer("test-secret", time.Hour, auth.NewDBTokenStore(db))
	require.NoError(t, err)
	return NewResolver(db, app_config.DefaultAppConfig(), issuer, file_store.NewFakeFileStore(), nil)
}

func postIds(posts []*model.PostView) []uint {
	ids := []uint{}
	for _, p := range posts {
		ids = append(ids, p.Id)
	}
	return ids
}

func summaryIds(users []*model.UserSummary) []uint {
	ids := []uint{}
	for _, u := range users {
		ids = append(ids, u.Id)
	}
	return ids
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(notFound("post %d not found", 3))
	require.True(t, ok)
	require.Equal(t, KindNotFound, kind)
	require.Equal(t, "post 3 not found", notFound("post %d not found", 3).Error())

	_, ok = KindOf(context.Canceled)
	require.False(t, ok)
}
