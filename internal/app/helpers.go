package app

import (
	"errors"
	"time"
)

// actionTimeout bounds every user-triggered API call.
const actionTimeout = 30 * time.Second

// sessionExpiredNotice is shown on the sign-in form after any
// authentication failure forces a sign-out.
const sessionExpiredNotice = "your session has expired, please sign in again"

var errNoAddress = errors.New("add a shipping address to your profile before checking out")
