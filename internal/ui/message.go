package ui

import (
	"github.com/desertthunder/randusr/internal/models"
)

// usersLoadedMsg carries the outcome of a list load. seq identifies the request
// so results of superseded loads can be dropped.
type usersLoadedMsg struct {
	seq   int
	users []models.User
	err   error
}

// detailLoadedMsg carries the outcome of a detail load.
type detailLoadedMsg struct {
	seq    int
	detail *models.UserDetail
	err    error
}
