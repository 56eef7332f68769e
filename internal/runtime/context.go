package runtime

import (
	"context"
	"errors"
	"path/filepath"

	"mergecheck.dev/mergecheck/internal/config"
	mcerrors "mergecheck.dev/mergecheck/internal/errors"
	"mergecheck.dev/mergecheck/internal/git"
	"mergecheck.dev/mergecheck/internal/output"
)

// Context provides access to the git client and output for commands
type Context struct {
	Client   *git.Client
	Splog    *output.Splog
	RepoRoot string
	// GitDir is the git directory shared by all worktrees; the config lives here
	GitDir string
	Config *config.RepoConfig
}

// Options selects the repository and per-invocation overrides
type Options struct {
	// Dir is any directory inside the repository; empty means the working directory
	Dir string
	// Trunk overrides the configured trunk branch
	Trunk string
	// Remote overrides the configured remote
	Remote string
}

// NewContext locates the repository containing opts.Dir and builds a client
// configured from its repo config.
func NewContext(ctx context.Context, splog *output.Splog, opts Options) (*Context, error) {
	repoRoot, gitDir, cfg, err := discover(ctx, splog, opts.Dir)
	if err != nil {
		return nil, err
	}

	trunk := cfg.TrunkName()
	if opts.Trunk != "" {
		trunk = opts.Trunk
	}
	remote := cfg.RemoteName()
	if opts.Remote != "" {
		remote = opts.Remote
	}

	splog.Debug("repository %s (git dir %s, trunk %s, remote %s)", repoRoot, gitDir, trunk, remote)

	return &Context{
		Client:   git.NewClient(newRunner(splog, repoRoot, cfg), git.WithTrunk(trunk), git.WithRemote(remote)),
		Splog:    splog,
		RepoRoot: repoRoot,
		GitDir:   gitDir,
		Config:   cfg,
	}, nil
}

// NewWorkingDirClient returns a client that runs git in dir as given, without
// moving to the repository root. Inside a repository its binary and timeout
// settings apply; elsewhere the defaults do.
func NewWorkingDirClient(ctx context.Context, splog *output.Splog, dir string) *git.Client {
	_, _, cfg, err := discover(ctx, splog, dir)
	if err != nil {
		splog.Debug("no repository config for %q: %v", dir, err)
		cfg = &config.RepoConfig{}
	}
	return git.NewClient(newRunner(splog, dir, cfg))
}

// NewStandaloneClient returns a client that runs outside any repository,
// for commands such as version that do not need one.
func NewStandaloneClient(splog *output.Splog) *git.Client {
	return git.NewClient(git.NewCommandRunner("", git.WithLogger(splog.Logger())))
}

func newRunner(splog *output.Splog, dir string, cfg *config.RepoConfig) *git.CommandRunner {
	return git.NewCommandRunner(dir,
		git.WithBinary(cfg.GitBinaryPath()),
		git.WithTimeout(cfg.CommandTimeout()),
		git.WithLogger(splog.Logger()),
	)
}

// discover finds the worktree root and common git directory containing dir,
// then loads the repo config from the latter.
func discover(ctx context.Context, splog *output.Splog, dir string) (string, string, *config.RepoConfig, error) {
	repoRoot, err := git.RepoRoot(dir)
	if err != nil {
		return "", "", nil, err
	}

	// The configured binary is unknown until the config is read, so the
	// common dir is asked of the default one
	gitDir, err := git.NewClient(git.NewCommandRunner(repoRoot, git.WithLogger(splog.Logger()))).GitCommonDir(ctx)
	if errors.Is(err, mcerrors.ErrSpawn) {
		splog.Debug("cannot run %s to find the git dir, assuming %s/.git: %v", git.DefaultBinary, repoRoot, err)
		gitDir, err = filepath.Join(repoRoot, ".git"), nil
	}
	if err != nil {
		return "", "", nil, err
	}

	cfg, err := config.GetRepoConfig(gitDir)
	if err != nil {
		return "", "", nil, err
	}
	return repoRoot, gitDir, cfg, nil
}
