package ratelimit

import (
	"math"
	"strconv"
	"time"
)

// retryAfterSeconds arredonda para cima: Retry-After só aceita segundos inteiros
// e "0" faria o cliente tentar de novo na hora.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(max(int(math.Ceil(d.Seconds())), 1))
}
