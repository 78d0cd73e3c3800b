package shell

import "errors"

var ErrNoLauncher = errors.New("no launcher command for this platform")
var ErrNotLoaded = errors.New("target page not loaded")
