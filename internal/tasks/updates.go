package tasks

import (
	"fmt"

	"github.com/desertthunder/randusr/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchUsers Phase = iota
	SaveUsers
	LoadCached
	DownloadAvatars
)

func (p Phase) String() string {
	switch p {
	case FetchUsers:
		return "fetch_users"
	case SaveUsers:
		return "save_users"
	case LoadCached:
		return "load_cached"
	case DownloadAvatars:
		return "download_avatars"
	default:
		return ""
	}
}

func fetchUsersUpdate(size int, source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchUsers,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching %d users from %s...", size, source),
	}
}

func saveUsersUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveUsers,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Caching %d users...", count),
	}
}

func loadCachedUpdate(users []models.User) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadCached,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loaded %d users", len(users)),
		Data:    users,
	}
}

func avatarQueuedUpdate(step, total int, user models.User) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadAvatars,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Downloading: %s...", step, total, user.FullName()),
	}
}

func avatarCompletedUpdate(step, total int, res AvatarResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadAvatars,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d bytes)", step, total, res.UserID, res.Bytes),
		Data:    res,
	}
}

func avatarFailedUpdate(step, total int, res AvatarResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadAvatars,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.UserID, res.Error),
		Data:    res,
	}
}
