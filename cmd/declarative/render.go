package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/declarative/internal/config"
	"github.com/vango-dev/declarative/internal/errors"
	"github.com/vango-dev/declarative/internal/showcase"
	"github.com/vango-dev/declarative/pkg/render"
	"github.com/vango-dev/declarative/pkg/server"
	"github.com/vango-dev/declarative/pkg/snapshot"
	"github.com/vango-dev/declarative/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var (
		sets     []string
		pretty   bool
		fragment bool
		upload   bool
		key      string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the showcase page once",
		Long: `Render the showcase page after applying signal values.

Signals are set with --set name=value and applied in order, each followed
by the update passes it triggers. With --upload the page is published to
the snapshot destination from declarative.json instead of printed.

Examples:
  declarative render
  declarative render --set loggedIn=true --set fruit=blueberry
  declarative render --set admin=true --set loggedIn=true --upload`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Render.Pretty = pretty
			}
			if key != "" {
				cfg.Snapshot.Key = key
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg)
			renderer := render.NewRenderer(render.RendererConfig{
				Pretty: cfg.Render.Pretty,
				Indent: cfg.Render.Indent,
			})

			tree := server.Mount(showcase.New(showcase.WithLogger(logger)), renderer)
			defer tree.Dispose()

			if err := applySets(tree, sets); err != nil {
				return err
			}
			if passes, ok := tree.Settle(); !ok {
				logger.Warn("tree did not settle", "passes", passes)
			}
			body, err := tree.HTML()
			if err != nil {
				return err
			}

			page := render.PageOptions{Title: cfg.Name}
			if upload {
				store, storeKey, err := snapshotStore(cfg)
				if err != nil {
					return err
				}
				if c, ok := store.(io.Closer); ok {
					defer c.Close()
				}
				pub := snapshot.NewPublisher(store,
					snapshot.WithRenderer(renderer),
					snapshot.WithLogger(logger),
				)
				res, err := pub.Publish(cmd.Context(), storeKey, page, vdom.Raw(body))
				if err != nil {
					return err
				}
				success(cmd, "Published %d bytes to %s", res.Bytes, res.Location)
				return nil
			}

			out := cmd.OutOrStdout()
			if fragment {
				_, err := fmt.Fprintln(out, body)
				return err
			}
			return renderer.RenderPage(out, page, vdom.Raw(body))
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a signal before rendering (name=value, repeatable)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output (default from declarative.json)")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Print only the body fragment")
	cmd.Flags().BoolVar(&upload, "upload", false, "Publish to the configured snapshot destination")
	cmd.Flags().StringVar(&key, "key", "", "Snapshot object key (default from declarative.json)")

	return cmd
}

// applySets writes each name=value pair and settles the tree after it, so
// later values observe the effects of earlier ones.
func applySets(tree *server.Tree, sets []string) error {
	for _, kv := range sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return errors.New("D011").WithDetailf("--set %q is not name=value", kv)
		}
		if err := tree.Set(name, value); err != nil {
			return err
		}
		tree.Settle()
	}
	return nil
}

// snapshotStore picks the first configured destination: S3, Redis, then a
// local directory.
func snapshotStore(cfg *config.Config) (snapshot.Store, string, error) {
	s := cfg.Snapshot
	switch {
	case s.Bucket != "":
		client := snapshot.NewS3Client(snapshot.S3Config{
			Region:    s.Region,
			Endpoint:  s.Endpoint,
			PathStyle: s.PathStyle,
		})
		return snapshot.NewS3Store(client, s.Bucket, s.Prefix), s.Key, nil
	case s.Redis.Addr != "":
		store := snapshot.NewRedisStore(s.Redis.Addr, s.Redis.Password, s.Redis.DB,
			snapshot.WithRedisTTL(cfg.RedisTTL()),
		)
		return store, cfg.SnapshotObjectKey(), nil
	case s.Dir != "":
		dir := s.Dir
		if !filepath.IsAbs(dir) && cfg.Path() != "" {
			dir = filepath.Join(filepath.Dir(cfg.Path()), dir)
		}
		store, err := snapshot.NewDirStore(dir)
		if err != nil {
			return nil, "", err
		}
		return store, cfg.SnapshotObjectKey(), nil
	default:
		return nil, "", errors.New("D020").
			WithDetail("snapshot.bucket, snapshot.redis.addr or snapshot.dir is required for --upload")
	}
}
