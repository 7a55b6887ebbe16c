package main

import (
	"context"
	"fmt"

	"github.com/Luismorlan/socialmux/app_config"
	"github.com/Luismorlan/socialmux/server/resolver"
	"github.com/Luismorlan/socialmux/utils"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/spf13/cobra"
)

const seedPassword = "password123"

var (
	seedUsers        int
	seedPostsPerUser int
)

// seedCmd fills an empty development database with users following each
// other in a ring, a few posts each and a comment on every post.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo users, follows, posts and comments",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := app_config.ParseAppConfig(configPath)
		if err != nil {
			return err
		}
		db, err := utils.GetDBConnection()
		if err != nil {
			return err
		}
		if err := utils.DatabaseSetupAndMigration(db); err != nil {
			return err
		}
		return seed(cmd.Context(), resolver.NewResolver(db, config, nil, nil, nil))
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedUsers, "users", 5, "number of demo users")
	seedCmd.Flags().IntVar(&seedPostsPerUser, "posts", 3, "number of posts per demo user")
}

func seed(ctx context.Context, r *resolver.Resolver) error {
	ids := make([]uint, 0, seedUsers)
	for i := 0; i < seedUsers; i++ {
		user, err := r.CreateUser(ctx, resolver.NewUserInput{
			FirstName: fmt.Sprintf("Demo%d", i),
			LastName:  "User",
			Email:     fmt.Sprintf("demo%d_%s@example.com", i, utils.RandomAlphabetString(4)),
			Password:  seedPassword,
		})
		if err != nil {
			return err
		}
		ids = append(ids, user.Id)
	}

	for i, id := range ids {
		if len(ids) > 1 {
			if _, err := r.Follow(ctx, id, ids[(i+1)%len(ids)]); err != nil {
				return err
			}
		}
		for j := 0; j < seedPostsPerUser; j++ {
			post, err := r.CreatePost(ctx, id, fmt.Sprintf("Post #%d of demo user %d", j+1, i))
			if err != nil {
				return err
			}
			commenter := ids[(i+len(ids)-1)%len(ids)]
			if _, err := r.CreateComment(ctx, commenter, post.Id, "Nice post!"); err != nil {
				return err
			}
		}
	}
	Log.WithField("users", len(ids)).Infof("database seeded, every demo user logs in with %q", seedPassword)
	return nil
}
