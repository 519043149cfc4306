package buildinfo

// Set via -ldflags "-X github.com/etsledger/etsledger/internal/buildinfo.Version=..." at release time.
var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the source revision.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
