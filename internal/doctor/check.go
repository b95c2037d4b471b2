package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
)

// checkConfigIssues inspects hook declarations.
func checkConfigIssues(cfg *config.Config) (issues []Issue, valid int) {
	for _, name := range cfg.Names() {
		hook, _ := cfg.Lookup(name)

		if hook.Command == "" {
			desc := "has no command"
			if len(hook.Events) > 0 {
				// This one breaks runs, not just this hook
				desc = fmt.Sprintf("bound to %s but has no command; every run of these events aborts",
					strings.Join(hook.Events, ", "))
			}
			issues = append(issues, Issue{
				Key:         name,
				Description: desc,
				Category:    CategoryConfig,
			})
			continue
		}

		if len(hook.Events) == 0 {
			issues = append(issues, Issue{
				Key:         name,
				Description: "has a command but no events, so it never runs",
				Category:    CategoryConfig,
			})
			continue
		}

		valid++
	}
	return issues, valid
}

// checkHookDirIssues probes the repo's hook directory for files that
// would be silently skipped at run time.
func checkHookDirIssues(repo *git.Repo) (issues []Issue, healthy int) {
	hooksDir := filepath.Join(repo.GitDir, "hooks")
	entries, err := os.ReadDir(hooksDir)
	if err != nil {
		return nil, 0
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".sample") {
			continue
		}
		path := filepath.Join(hooksDir, entry.Name())
		if git.IsExecutable(path) {
			healthy++
			continue
		}
		issues = append(issues, Issue{
			Key:         entry.Name(),
			Description: "hook file is not executable and will be ignored",
			FixAction:   "chmod",
			Category:    CategoryHookDir,
			Path:        path,
		})
	}
	return issues, healthy
}
