package repo

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const idSuffixLen = 9

// ID prefixes of the generated record identifiers.
const (
	SessionPrefix     = "session"
	FlowerPrefix      = "flower"
	UserPrefix        = "user"
	ConsecutivePrefix = "consecutive"
)

// NewID returns an identifier of the form <prefix>_<epoch-millis>_<random>.
// IDs created within the same millisecond are unique but not ordered.
func NewID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:idSuffixLen]

	return prefix + "_" + strconv.FormatInt(now.UnixMilli(), 10) + "_" + suffix
}
