package lib

import (
	"math/rand"
	"time"
)

func JitterMs(baseMs, maxMs, attempts int) int {
	// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter/
	// sleep = random_between(0, min(cap, base * 2 ** attempt))
	// 2 ** x == 1 << x
	ceiling := min(maxMs, baseMs*(1<<attempts))
	if ceiling <= 0 {
		return 0
	}
	return rand.Intn(ceiling)
}

func Jitter(baseMs, maxMs, attempts int) time.Duration {
	return time.Duration(JitterMs(baseMs, maxMs, attempts)) * time.Millisecond
}
