package main

import (
	"context"
	"errors"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
	"github.com/raphi011/hk/internal/log"
)

// resolveRepo locates the enclosing git repository starting at dir
// ("" = current directory) and returns it together with the effective
// config: the global config merged with the repo's .hk.toml. Outside a
// repository the repo is nil and the global config applies as-is.
func resolveRepo(ctx context.Context, dir string) (*git.Repo, *config.Config, error) {
	global := config.FromContext(ctx)
	if dir == "" {
		dir = config.WorkDirFromContext(ctx)
	}

	repo, err := git.Find(dir)
	if err != nil {
		if errors.Is(err, git.ErrNotFound) {
			log.FromContext(ctx).Debugf("not inside a git repository, using global config only")
			return nil, global, nil
		}
		return nil, nil, err
	}

	local, err := config.LoadLocal(repo.Root)
	if err != nil {
		return nil, nil, err
	}
	return repo, config.MergeLocal(global, local), nil
}

// suggestEvent returns the closest known event name for a typo'd one.
func suggestEvent(cfg *config.Config, event string) string {
	matches := fuzzy.Find(event, cfg.Events())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
