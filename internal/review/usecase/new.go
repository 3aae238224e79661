package usecase

import (
	"codeguard/internal/review"
	"codeguard/internal/review/repository"
	"codeguard/pkg/log"
)

// Options tunes which changed files a run analyzes.
type Options struct {
	// FileExtension selects which changed files are analyzed, e.g. ".py".
	FileExtension string
	// MaxFiles caps how many files one run analyzes.
	MaxFiles int
}

type implUseCase struct {
	l        log.Logger
	git      review.GitClient
	analyzer review.FileAnalyzer
	renderer review.Renderer
	tracker  repository.Tracker
	opts     Options
}

// New builds the review use case.
func New(l log.Logger, git review.GitClient, analyzer review.FileAnalyzer, renderer review.Renderer, tracker repository.Tracker, opts Options) review.UseCase {
	if opts.FileExtension == "" {
		opts.FileExtension = ".py"
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 10
	}
	return &implUseCase{
		l:        l,
		git:      git,
		analyzer: analyzer,
		renderer: renderer,
		tracker:  tracker,
		opts:     opts,
	}
}
