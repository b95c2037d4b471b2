package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryConfig represents problems with hook declarations.
	CategoryConfig IssueCategory = "config"
	// CategoryHookDir represents problems with hook-dir hook files.
	CategoryHookDir IssueCategory = "hookdir"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // hook name or file path
	Description string        // human-readable description
	FixAction   string        // what --fix would do ("" = not fixable)
	Category    IssueCategory // issue category
	Path        string        // file path for hook-dir repairs
}

// IssueStats tracks counts by category.
type IssueStats struct {
	ConfigValid    int // hooks declared correctly
	ConfigIssues   int // hooks with broken or incomplete declarations
	HookDirHealthy int // executable hook-dir files
	HookDirIgnored int // hook-dir files that are skipped (not executable)
}
