package storage

import "errors"

var ErrParticipantNotFound = errors.New("participant not found in storage")
var ErrVisitorAlreadyVoted = errors.New("visitor has already voted")
var ErrItemWithIDAlreadyExists = errors.New("item with this id already exists")
var ErrSettingNotFound = errors.New("setting not found in storage")
