package tui

import "errors"

// ErrMissingProjectSession is returned when the project session is not provided.
var ErrMissingProjectSession = errors.New("tui: project session is required")

// ErrMissingReviewer is returned when the reviewer is not provided.
var ErrMissingReviewer = errors.New("tui: reviewer is required")

// ErrMissingSweepPipeline is returned when the sweep pipeline is not provided.
var ErrMissingSweepPipeline = errors.New("tui: sweep pipeline is required")
