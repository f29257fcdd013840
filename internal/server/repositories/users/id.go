package users

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"time"
)

// NewUserID builds "user_<unix millis>_<8 hex chars>" where the suffix is
// taken from md5(username + millis). Two creates of the same username in the
// same millisecond would collide.
func NewUserID(userName string, now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	sum := md5.Sum([]byte(userName + ts))
	return "user_" + ts + "_" + hex.EncodeToString(sum[:])[:8]
}
