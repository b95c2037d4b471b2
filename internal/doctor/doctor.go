package doctor

import (
	"context"
	"fmt"

	"github.com/raphi011/hk/internal/config"
	"github.com/raphi011/hk/internal/git"
	"github.com/raphi011/hk/internal/output"
	"github.com/raphi011/hk/internal/ui/styles"
)

// Run performs diagnostic checks on the hook setup and optionally fixes
// issues. repo may be nil when not inside a repository; hook-dir checks
// are skipped then.
func Run(ctx context.Context, cfg *config.Config, repo *git.Repo, fix bool) error {
	printer := output.FromContext(ctx)

	var stats IssueStats
	var allIssues []Issue

	printer.Println("Checking hook declarations...")
	configIssues, valid := checkConfigIssues(cfg)
	allIssues = append(allIssues, configIssues...)
	stats.ConfigIssues = len(configIssues)
	stats.ConfigValid = valid

	if repo != nil {
		printer.Println("Checking hook directory...")
		dirIssues, healthy := checkHookDirIssues(repo)
		allIssues = append(allIssues, dirIssues...)
		stats.HookDirIgnored = len(dirIssues)
		stats.HookDirHealthy = healthy
	}

	printSummary(ctx, stats)

	if len(allIssues) == 0 {
		printer.Println("\n" + styles.OK("No issues found"))
		return nil
	}

	printer.Printf("\nFound %d issues:\n", len(allIssues))
	printIssuesByCategory(ctx, allIssues)

	if fix {
		return fixAllIssues(ctx, allIssues)
	}

	printer.Println("\nRun 'hk doctor --fix' to repair.")
	return nil
}

// printSummary prints a categorized summary.
func printSummary(ctx context.Context, stats IssueStats) {
	printer := output.FromContext(ctx)

	printer.Println()
	printer.Println("  " + styles.OK(plural(stats.ConfigValid, "hook declared correctly", "hooks declared correctly")))
	if stats.ConfigIssues > 0 {
		printer.Println("  " + styles.Advisory(plural(stats.ConfigIssues, "broken declaration", "broken declarations")))
	}
	if stats.HookDirHealthy > 0 {
		printer.Println("  " + styles.OK(plural(stats.HookDirHealthy, "hook file executable", "hook files executable")))
	}
	if stats.HookDirIgnored > 0 {
		printer.Println("  " + styles.Advisory(plural(stats.HookDirIgnored, "hook file ignored (not executable)", "hook files ignored (not executable)")))
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(ctx context.Context, issues []Issue) {
	printer := output.FromContext(ctx)

	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryConfig:  "Declaration issues",
		CategoryHookDir: "Hook directory issues",
	}

	for _, cat := range []IssueCategory{CategoryConfig, CategoryHookDir} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		printer.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			printer.Printf("  • %s: %s\n", issue.Key, issue.Description)
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
