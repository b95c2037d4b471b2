package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/raphi011/hk/internal/output"
	"github.com/raphi011/hk/internal/ui/styles"
)

// fixAllIssues applies the fix action of every fixable issue.
// Declaration issues have no automatic fix; they need a config edit.
func fixAllIssues(ctx context.Context, issues []Issue) error {
	printer := output.FromContext(ctx)

	var fixed, skipped, failed int
	for _, issue := range issues {
		switch issue.FixAction {
		case "chmod":
			if err := markExecutable(issue.Path); err != nil {
				printer.Println("  " + styles.Failed(fmt.Sprintf("%s: %v", issue.Key, err)))
				failed++
				continue
			}
			printer.Println("  " + styles.OK(fmt.Sprintf("%s: marked executable", issue.Key)))
			fixed++
		default:
			skipped++
		}
	}

	printer.Printf("\nFixed %d, skipped %d (edit your config to resolve declaration issues)\n", fixed, skipped)
	if failed > 0 {
		return fmt.Errorf("%d fixes failed", failed)
	}
	return nil
}

// markExecutable adds the user/group/other executable bits.
func markExecutable(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, fi.Mode()|0o111)
}
