package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etsledger/etsledger/internal/config"
	"github.com/etsledger/etsledger/internal/ledger"
)

// ErrExists is returned by Init when root already holds a workspace.
var ErrExists = errors.New("workspace already initialized")

// Init creates the directory layout and config of a new workspace.
func Init(root string, cfg *config.Config) (*Workspace, error) {
	if _, err := os.Stat(config.Path(root)); err == nil {
		return nil, fmt.Errorf("%s: %w", root, ErrExists)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Join(root, "logs"), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory logs: %w", err)
	}
	if err := config.Save(config.Path(root), cfg); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	gitignore := ".env\nreports/\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return nil, fmt.Errorf("writing .gitignore: %w", err)
	}

	return &Workspace{Root: root, Config: cfg, Ledger: ledger.NewService(root)}, nil
}
