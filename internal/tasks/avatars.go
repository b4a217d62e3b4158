package tasks

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/randusr/internal/formatter"
	"github.com/desertthunder/randusr/internal/models"
	"golang.org/x/time/rate"
)

// AvatarSyncOpts contains configuration for avatar downloads.
type AvatarSyncOpts struct {
	OutputDir  string       // Destination directory (default: avatars_{epoch})
	NumWorkers int          // Concurrent workers (default: 4, max: 10)
	RateLimit  float64      // Downloads per second (default: 5)
	Client     *http.Client // HTTP client for downloads (default: 30s timeout)
}

// AvatarResult describes the download of a single avatar.
type AvatarResult struct {
	UserID  string `json:"user_id"`
	URL     string `json:"url"`
	Path    string `json:"path,omitempty"`
	Bytes   int    `json:"bytes"`
	Success bool   `json:"success"`
	Error   error  `json:"-"`
	Message string `json:"error,omitempty"`
}

// AvatarSyncResult summarizes an avatar sync and is written as avatars_manifest.json.
type AvatarSyncResult struct {
	Total           int            `json:"total"`
	Downloaded      int            `json:"downloaded"`
	Failed          int            `json:"failed"`
	OutputDirectory string         `json:"output_directory"`
	Results         []AvatarResult `json:"results"`
	ManifestPath    string         `json:"-"`
}

type avatarJob struct {
	user models.User
}

// SyncAvatars downloads each user's avatar into opts.OutputDir.
//
// Downloads run on a bounded worker pool fed through a rate limiter. Individual failures
// are recorded in the result rather than aborting the sync. Cancelling ctx stops queuing
// new downloads.
func (e *UserEngine) SyncAvatars(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	users []models.User,
	opts AvatarSyncOpts,
) (*AvatarSyncResult, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("avatars_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &AvatarSyncResult{
		Total:           len(users),
		OutputDirectory: opts.OutputDir,
		Results:         make([]AvatarResult, 0, len(users)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan avatarJob, len(users))
	results := make(chan AvatarResult, len(users))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.avatarWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, user := range users {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			jobs <- avatarJob{user: user}
			e.sendProgress(prog, avatarQueuedUpdate(i+1, len(users), user))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Success {
			result.Downloaded++
			e.sendProgress(prog, avatarCompletedUpdate(completed, len(users), res))
		} else {
			result.Failed++
			res.Message = res.Error.Error()
			e.sendProgress(prog, avatarFailedUpdate(completed, len(users), res))
		}
		result.Results = append(result.Results, res)
	}

	manifestPath := filepath.Join(opts.OutputDir, "avatars_manifest.json")
	if err := formatter.WriteManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("sync completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// avatarWorker downloads avatars from the jobs channel until it is closed.
func (e *UserEngine) avatarWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan avatarJob,
	results chan<- AvatarResult,
	opts AvatarSyncOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- downloadAvatar(ctx, job.user, opts)
	}
}

func downloadAvatar(ctx context.Context, user models.User, opts AvatarSyncOpts) AvatarResult {
	res := AvatarResult{UserID: user.ID, URL: user.Thumbnail}
	if user.Thumbnail == "" {
		res.Error = fmt.Errorf("no avatar URL")
		return res
	}

	path := filepath.Join(opts.OutputDir, formatter.AvatarFilename(user.ID, user.Thumbnail))
	n, err := formatter.SaveImage(ctx, opts.Client, user.Thumbnail, path)
	if err != nil {
		res.Error = err
		return res
	}

	res.Path = path
	res.Bytes = n
	res.Success = true
	return res
}
