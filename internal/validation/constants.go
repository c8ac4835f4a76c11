package validation

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// MaxFeedbackLength caps reviewer feedback; anything longer is almost
// certainly a paste mistake.
const MaxFeedbackLength = 4000

const MaxTitleLength = 255
